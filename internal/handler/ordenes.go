package handler

import (
	"net/http"

	"repairsuite/internal/apierror"
	"repairsuite/internal/dto"
	"repairsuite/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdenesHandler struct{ svc service.OrdenService }

func NewOrdenesHandler(svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear orden de servicio
// @Description  Registra la recepción de un equipo: asigna folio, estado inicial y primera entrada de historial. Garantía implica diagnóstico sin cargo.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearOrdenRequest true "Datos de recepción"
// @Success      201  {object} dto.OrdenResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearOrden(c.Request.Context(), actorDesdeClaims(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar órdenes
// @Description  Lista paginada, filtrable por estado canónico y cliente.
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        estado     query string false "Etiqueta canónica de estado"
// @Param        cliente_id query string false "UUID del cliente"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.OrdenListResponse
// @Router       /v1/ordenes [get]
func (h *OrdenesHandler) Listar(c *gin.Context) {
	var filter dto.OrdenFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarOrdenes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar órdenes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener orden por ID
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la orden"
// @Success      200 {object} dto.OrdenResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ordenes/{id} [get]
func (h *OrdenesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerOrden(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorFolio godoc
// @Summary      Obtener orden por folio
// @Description  Búsqueda por el folio legible ("OS-000123") que figura en el comprobante impreso.
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        folio path string true "Folio"
// @Success      200 {object} dto.OrdenResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ordenes/folio/{folio} [get]
func (h *OrdenesHandler) ObtenerPorFolio(c *gin.Context) {
	resp, err := h.svc.ObtenerPorFolio(c.Request.Context(), c.Param("folio"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary      Aplicar transición de estado
// @Description  Valida arista, permiso del rol y reglas de negocio; encadena transiciones automáticas y asienta todo el historial en una transacción.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "UUID de la orden"
// @Param        body body dto.CambiarEstadoRequest true "Estado destino"
// @Success      200  {object} dto.OrdenResponse
// @Failure      403  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes/{id}/estado [post]
func (h *OrdenesHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AplicarTransicion(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarDiagnostico godoc
// @Summary      Registrar diagnóstico y cotización
// @Description  Escribe el hallazgo técnico una sola vez y fija el costo estimado de reparación (salvo garantía).
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                        true "UUID de la orden"
// @Param        body body dto.RegistrarDiagnosticoRequest true "Diagnóstico"
// @Success      200  {object} dto.OrdenResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes/{id}/diagnostico [post]
func (h *OrdenesHandler) RegistrarDiagnostico(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarDiagnosticoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarDiagnostico(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AprobarCotizacion godoc
// @Summary      Registrar aprobación del cliente
// @Description  Marca la cotización como aprobada por el cliente. Idempotente.
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la orden"
// @Success      200 {object} dto.OrdenResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/ordenes/{id}/aprobar [post]
func (h *OrdenesHandler) AprobarCotizacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.AprobarCotizacion(c.Request.Context(), actorDesdeClaims(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AsignarTecnico godoc
// @Summary      Asignar técnico responsable
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                   true "UUID de la orden"
// @Param        body body dto.AsignarTecnicoRequest true "Técnico"
// @Success      200  {object} dto.OrdenResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes/{id}/tecnico [post]
func (h *OrdenesHandler) AsignarTecnico(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AsignarTecnicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarTecnico(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarReparacion godoc
// @Summary      Registrar el cierre técnico del trabajo
// @Description  Escribe el detalle de la reparación (una sola vez). Requiere que la orden esté en reparación.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID de la orden"
// @Param        body body dto.RegistrarReparacionRequest true "Trabajo realizado"
// @Success      200  {object} dto.OrdenResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes/{id}/reparacion [post]
func (h *OrdenesHandler) RegistrarReparacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarReparacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarReparacion(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
