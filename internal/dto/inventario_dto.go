package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SolicitarRepuestoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

// RechazarSolicitudRequest: la justificación es obligatoria en la frontera de
// entrada — una solicitud rechazada sin notas se refuta acá, no en el motor.
type RechazarSolicitudRequest struct {
	Notas string `json:"notas" validate:"required,min=5,max=500"`
}

type AjustarStockRequest struct {
	Cantidad int    `json:"cantidad" validate:"required"` // positivo = entrada, negativo = salida
	Motivo   string `json:"motivo"   validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SolicitudResponse struct {
	ID              string  `json:"id"`
	OrdenID         string  `json:"orden_id"`
	ProductoID      string  `json:"producto_id"`
	ProductoNombre  string  `json:"producto_nombre"`
	Cantidad        int     `json:"cantidad"`
	SolicitadoPor   string  `json:"solicitado_por"`
	Estado          string  `json:"estado"`
	AprobadoPor     *string `json:"aprobado_por"`
	FechaAprobacion *string `json:"fecha_aprobacion"`
	Justificacion   *string `json:"justificacion"`
	Fecha           string  `json:"fecha"`
}

type MovimientoStockResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo"`
	Fecha         string `json:"fecha"`
}
