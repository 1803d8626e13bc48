package handler

import (
	"net/http"

	"repairsuite/internal/apierror"
	"repairsuite/internal/dto"
	"repairsuite/internal/service"

	"github.com/gin-gonic/gin"
)

// ── Clientes ─────────────────────────────────────────────────────────────────

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Crear godoc
// @Summary      Alta de cliente
// @Tags         directorio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearClienteRequest true "Datos del cliente"
// @Success      201  {object} dto.ClienteResponse
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCliente(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCliente(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar admite búsqueda por nombre parcial (?nombre=).
func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarClientes(c.Request.Context(), c.Query("nombre"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCliente(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactivarCliente(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Equipos ──────────────────────────────────────────────────────────────────

type EquiposHandler struct{ svc service.EquipoService }

func NewEquiposHandler(svc service.EquipoService) *EquiposHandler {
	return &EquiposHandler{svc: svc}
}

// Registrar godoc
// @Summary      Alta de equipo
// @Description  Registra un equipo asociado a un cliente existente.
// @Tags         directorio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearEquipoRequest true "Datos del equipo"
// @Success      201  {object} dto.EquipoResponse
// @Router       /v1/equipos [post]
func (h *EquiposHandler) Registrar(c *gin.Context) {
	var req dto.CrearEquipoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEquipo(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EquiposHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerEquipo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Equipo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorCliente devuelve los equipos registrados de un cliente.
func (h *EquiposHandler) ListarPorCliente(c *gin.Context) {
	clienteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorCliente(c.Request.Context(), clienteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar equipos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
