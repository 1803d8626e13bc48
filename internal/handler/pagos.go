package handler

import (
	"fmt"
	"net/http"

	"repairsuite/internal/apierror"
	"repairsuite/internal/dto"
	"repairsuite/internal/infra"
	"repairsuite/internal/repository"
	"repairsuite/internal/service"
	"repairsuite/internal/worker"

	"github.com/gin-gonic/gin"
)

// PagosHandler cubre el libro de pagos y el comprobante imprimible de la orden.
type PagosHandler struct {
	svc        service.PagoService
	ordenes    repository.OrdenRepository
	clientes   repository.ClienteRepository
	dispatcher *worker.Dispatcher
	pdfPath    string
}

func NewPagosHandler(
	svc service.PagoService,
	ordenes repository.OrdenRepository,
	clientes repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
	pdfPath string,
) *PagosHandler {
	return &PagosHandler{
		svc:        svc,
		ordenes:    ordenes,
		clientes:   clientes,
		dispatcher: dispatcher,
		pdfPath:    pdfPath,
	}
}

// RegistrarPago godoc
// @Summary      Registrar un pago
// @Description  Asienta un cobro inmutable contra la orden. Rechaza montos mayores al saldo pendiente.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "UUID de la orden"
// @Param        body body dto.RegistrarPagoRequest true "Pago"
// @Success      201  {object} dto.OrdenResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes/{id}/pagos [post]
func (h *PagosHandler) RegistrarPago(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarPagoMixto godoc
// @Summary      Registrar un pago mixto
// @Description  Asienta un cobro repartido en varios métodos. El desglose debe sumar exactamente el monto.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID de la orden"
// @Param        body body dto.RegistrarPagoMixtoRequest true "Pago mixto"
// @Success      201  {object} dto.OrdenResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ordenes/{id}/pagos/mixto [post]
func (h *PagosHandler) RegistrarPagoMixto(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarPagoMixtoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPagoMixto(c.Request.Context(), actorDesdeClaims(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EstadoCuenta godoc
// @Summary      Estado de cuenta de la orden
// @Description  Costo total, pagos asentados y saldo pendiente, siempre recalculados desde los componentes.
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la orden"
// @Success      200 {object} dto.EstadoCuentaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ordenes/{id}/cuenta [get]
func (h *PagosHandler) EstadoCuenta(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.EstadoCuenta(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarComprobante godoc
// @Summary      Descargar comprobante PDF
// @Description  Genera (o regenera) el comprobante media carta de la orden y lo devuelve como archivo.
// @Tags         pagos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la orden"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/ordenes/{id}/comprobante [get]
func (h *PagosHandler) DescargarComprobante(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	orden, err := h.ordenes.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	path, err := infra.GenerateComprobantePDF(orden, h.pdfPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el comprobante"))
		return
	}
	c.FileAttachment(path, fmt.Sprintf("comprobante_%s.pdf", orden.Folio))
}

// EnviarComprobante godoc
// @Summary      Enviar comprobante por email
// @Description  Genera el comprobante y lo despacha por email al cliente en segundo plano.
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la orden"
// @Success      202 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Failure      422 {object} apierror.APIError
// @Router       /v1/ordenes/{id}/comprobante/enviar [post]
func (h *PagosHandler) EnviarComprobante(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	orden, err := h.ordenes.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	cliente, err := h.clientes.FindByID(c.Request.Context(), orden.ClienteID)
	if err != nil || cliente.Email == nil || *cliente.Email == "" {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("El cliente no tiene email registrado"))
		return
	}

	path, err := infra.GenerateComprobantePDF(orden, h.pdfPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el comprobante"))
		return
	}

	payload := worker.EmailJobPayload{
		ToEmail: *cliente.Email,
		Subject: fmt.Sprintf("Comprobante de orden %s", orden.Folio),
		Body: fmt.Sprintf(
			"Hola %s,\n\nAdjuntamos el comprobante de la orden %s (%s).\nSaldo pendiente: $%s.\n\nGracias.",
			orden.ClienteNombre, orden.Folio, orden.EquipoEtiqueta, orden.SaldoPendiente().StringFixed(2),
		),
		PDFPath: path,
	}
	if err := h.dispatcher.EnqueueEmail(c.Request.Context(), payload); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al encolar el envío"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Comprobante encolado para envío"})
}
