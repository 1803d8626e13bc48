package handler

import (
	"errors"
	"net/http"
	"reflect"

	"repairsuite/internal/apierror"
	"repairsuite/internal/lifecycle"
	"repairsuite/internal/middleware"
	"repairsuite/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseIDParam parses a path parameter as UUID, writing the 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// actorDesdeClaims builds the service-layer actor from the JWT claims that the
// auth middleware stashed in the context.
func actorDesdeClaims(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	return service.Actor{
		ID:     id,
		Nombre: claims.Nombre,
		Rol:    lifecycle.Rol(claims.Rol),
	}
}

// respondServiceError translates the typed engine errors to HTTP statuses.
// String inspection is never used: the mapping is exhaustive over the error
// types the lifecycle package exposes.
func respondServiceError(c *gin.Context, err error) {
	var (
		transErr   *lifecycle.TransicionInvalidaError
		permErr    *lifecycle.PermisoDenegadoError
		precondErr *lifecycle.PrecondicionError
	)

	switch {
	case errors.Is(err, lifecycle.ErrNoEncontrada),
		errors.Is(err, lifecycle.ErrSolicitudNoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))

	case errors.Is(err, lifecycle.ErrConflictoConcurrencia):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))

	case errors.Is(err, lifecycle.ErrPermisoDenegado):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))

	case errors.As(err, &permErr):
		c.JSON(http.StatusForbidden, gin.H{
			"detail": permErr.Error(),
			"de":     permErr.De,
			"a":      permErr.A,
			"rol":    permErr.Rol,
		})

	case errors.As(err, &transErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail": transErr.Error(),
			"de":     transErr.De,
			"a":      transErr.A,
		})

	case errors.As(err, &precondErr):
		body := gin.H{
			"detail": precondErr.Mensaje,
			"codigo": precondErr.Codigo,
		}
		if !precondErr.Esperado.IsZero() || !precondErr.Saldo.IsZero() {
			body["esperado"] = precondErr.Esperado.StringFixed(2)
			body["saldo"] = precondErr.Saldo.StringFixed(2)
		}
		c.JSON(http.StatusUnprocessableEntity, body)

	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
