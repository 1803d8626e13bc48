package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearOrdenRequest struct {
	ClienteID        string          `json:"cliente_id"        validate:"required,uuid"`
	EquipoID         string          `json:"equipo_id"         validate:"required,uuid"`
	FallaReportada   string          `json:"falla_reportada"   validate:"required,min=5"`
	Prioridad        string          `json:"prioridad"         validate:"omitempty,oneof=normal alta urgente"`
	EsGarantia       bool            `json:"es_garantia"`
	CostoDiagnostico decimal.Decimal `json:"costo_diagnostico" validate:"required"`
	// MetodoPago del cobro del diagnóstico, que acompaña la creación.
	MetodoPago string `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia mercado_pago deposito"`
}

// CambiarEstadoRequest dispara el ejecutor de transiciones.
type CambiarEstadoRequest struct {
	Estado string  `json:"estado" validate:"required"`
	Notas  *string `json:"notas"  validate:"omitempty,max=500"`
}

type RegistrarDiagnosticoRequest struct {
	Descripcion        string          `json:"descripcion"          validate:"required,min=5"`
	CostoEstimado      decimal.Decimal `json:"costo_estimado"       validate:"required"`
	TiempoEstimadoDias int             `json:"tiempo_estimado_dias" validate:"omitempty,min=1,max=365"`
}

type RegistrarReparacionRequest struct {
	TrabajoRealizado    string  `json:"trabajo_realizado"    validate:"required,min=5"`
	RepuestosUtilizados *string `json:"repuestos_utilizados" validate:"omitempty,max=1000"`
}

type AsignarTecnicoRequest struct {
	TecnicoID string `json:"tecnico_id" validate:"required,uuid"`
}

// OrdenFilter is bound from query string of GET /v1/ordenes.
type OrdenFilter struct {
	Estado    string `form:"estado"`     // etiqueta canónica; empty = todas
	ClienteID string `form:"cliente_id"` // uuid; empty = todos
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DiagnosticoResponse struct {
	Descripcion        string          `json:"descripcion"`
	CostoEstimado      decimal.Decimal `json:"costo_estimado"`
	TiempoEstimadoDias int             `json:"tiempo_estimado_dias"`
	Fecha              string          `json:"fecha"`
}

type ReparacionResponse struct {
	TrabajoRealizado    string  `json:"trabajo_realizado"`
	RepuestosUtilizados *string `json:"repuestos_utilizados"`
	Fecha               string  `json:"fecha"`
}

type HistorialResponse struct {
	EstadoAnterior *string `json:"estado_anterior"`
	EstadoNuevo    string  `json:"estado_nuevo"`
	Usuario        string  `json:"usuario"`
	Notas          *string `json:"notas"`
	Fecha          string  `json:"fecha"`
}

type OrdenResponse struct {
	ID                string               `json:"id"`
	Folio             string               `json:"folio"`
	ClienteID         string               `json:"cliente_id"`
	ClienteNombre     string               `json:"cliente_nombre"`
	ClienteTelefono   string               `json:"cliente_telefono"`
	EquipoID          string               `json:"equipo_id"`
	EquipoEtiqueta    string               `json:"equipo_etiqueta"`
	TecnicoAsignadoID *string              `json:"tecnico_asignado_id"`
	Estado            string               `json:"estado"`
	EstadosSiguientes []string             `json:"estados_siguientes"`
	Prioridad         string               `json:"prioridad"`
	EsGarantia        bool                 `json:"es_garantia"`
	ClienteAprobado   bool                 `json:"cliente_aprobado"`
	CostoDiagnostico  decimal.Decimal      `json:"costo_diagnostico"`
	CostoReparacion   decimal.Decimal      `json:"costo_reparacion"`
	TotalPagado       decimal.Decimal      `json:"total_pagado"`
	SaldoPendiente    decimal.Decimal      `json:"saldo_pendiente"`
	Diagnostico       *DiagnosticoResponse `json:"diagnostico"`
	Reparacion        *ReparacionResponse  `json:"reparacion"`
	Pagos             []PagoResponse       `json:"pagos"`
	Solicitudes       []SolicitudResponse  `json:"solicitudes_inventario"`
	Historial         []HistorialResponse  `json:"historial"`
	CreatedAt         string               `json:"created_at"`
}

type OrdenListItem struct {
	ID             string          `json:"id"`
	Folio          string          `json:"folio"`
	ClienteNombre  string          `json:"cliente_nombre"`
	EquipoEtiqueta string          `json:"equipo_etiqueta"`
	Estado         string          `json:"estado"`
	Prioridad      string          `json:"prioridad"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	CreatedAt      string          `json:"created_at"`
}

type OrdenListResponse struct {
	Data  []OrdenListItem `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
