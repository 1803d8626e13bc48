package handler

import (
	"net/http"
	"strconv"

	"repairsuite/internal/apierror"
	"repairsuite/internal/dto"
	"repairsuite/internal/repository"
	"repairsuite/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventarioHandler maneja el sub-flujo de solicitudes de repuestos y los
// movimientos/ajustes de stock del catálogo.
type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// SolicitarRepuesto godoc
// @Summary      Solicitar repuesto para una orden
// @Description  Abre una solicitud pendiente de aprobación administrativa. No bloquea la máquina de estados de la orden.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "UUID de la orden"
// @Param        body body dto.SolicitarRepuestoRequest true "Repuesto y cantidad"
// @Success      201  {object} dto.SolicitudResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes/{id}/solicitudes [post]
func (h *InventarioHandler) SolicitarRepuesto(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SolicitarRepuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SolicitarRepuesto(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AprobarSolicitud godoc
// @Summary      Aprobar solicitud de repuesto
// @Description  Aprueba y descuenta stock en una sola transacción; deja el movimiento de salida asentado.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la solicitud"
// @Success      200 {object} dto.SolicitudResponse
// @Failure      409 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /v1/solicitudes/{id}/aprobar [post]
func (h *InventarioHandler) AprobarSolicitud(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.AprobarSolicitud(c.Request.Context(), actorDesdeClaims(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RechazarSolicitud godoc
// @Summary      Rechazar solicitud de repuesto
// @Description  Rechaza con justificación obligatoria. El stock no se toca.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID de la solicitud"
// @Param        body body dto.RechazarSolicitudRequest true "Justificación"
// @Success      200  {object} dto.SolicitudResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/solicitudes/{id}/rechazar [post]
func (h *InventarioHandler) RechazarSolicitud(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RechazarSolicitudRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RechazarSolicitud(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjustarStock godoc
// @Summary      Ajustar stock de un producto
// @Description  Aplica un delta manual (positivo o negativo) y asienta el movimiento correspondiente.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "UUID del producto"
// @Param        body body dto.AjustarStockRequest true "Delta y motivo"
// @Success      200  {object} dto.MovimientoStockResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/productos/{id}/stock [patch]
func (h *InventarioHandler) AjustarStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMovimientos godoc
// @Summary      Listar movimientos de stock
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        producto_id query string false "UUID del producto"
// @Param        tipo        query string false "ingreso_compra | salida_reparacion | ajuste_manual"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} map[string]interface{}
// @Router       /v1/inventario/movimientos [get]
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	filter := repository.MovimientoStockFilter{
		Tipo:  c.Query("tipo"),
		Page:  1,
		Limit: 50,
	}
	if raw := c.Query("producto_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
			return
		}
		filter.ProductoID = &id
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && limit > 0 && limit <= 200 {
		filter.Limit = limit
	}

	movimientos, total, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"movimientos": movimientos, "total": total})
}
