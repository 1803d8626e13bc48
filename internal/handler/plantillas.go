package handler

import (
	"net/http"

	"repairsuite/internal/apierror"
	"repairsuite/internal/dto"
	"repairsuite/internal/service"

	"github.com/gin-gonic/gin"
)

// PlantillasHandler administra las plantillas de notificación por evento.
type PlantillasHandler struct{ svc service.PlantillaService }

func NewPlantillasHandler(svc service.PlantillaService) *PlantillasHandler {
	return &PlantillasHandler{svc: svc}
}

// Guardar godoc
// @Summary      Crear o actualizar plantilla de notificación
// @Description  Upsert por (evento, canal). Los placeholders disponibles son {{cliente}}, {{folio}}, {{equipo}}, {{estado}}, {{monto}}, {{saldo}}.
// @Tags         notificaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.GuardarPlantillaRequest true "Plantilla"
// @Success      200  {object} dto.PlantillaResponse
// @Router       /v1/plantillas [put]
func (h *PlantillasHandler) Guardar(c *gin.Context) {
	var req dto.GuardarPlantillaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarPlantilla(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlantillasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarPlantillas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar plantillas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
