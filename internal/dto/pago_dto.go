package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarPagoRequest es un pago simple: un solo método.
type RegistrarPagoRequest struct {
	Tipo   string          `json:"tipo"   validate:"required,oneof=diagnostico anticipo pago_final"`
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo tarjeta transferencia mercado_pago deposito"`
	Monto  decimal.Decimal `json:"monto"  validate:"required"`
	// Referencia externa: nro de transferencia o id de pago de Mercado Pago.
	Referencia *string `json:"referencia" validate:"omitempty,max=100"`
}

// DesgloseRequest reparte un pago mixto. La suma de los cinco cubos debe
// igualar el monto declarado EXACTAMENTE — sin tolerancia de redondeo.
type DesgloseRequest struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Tarjeta       decimal.Decimal `json:"tarjeta"`
	Transferencia decimal.Decimal `json:"transferencia"`
	MercadoPago   decimal.Decimal `json:"mercado_pago"`
	Deposito      decimal.Decimal `json:"deposito"`
}

type RegistrarPagoMixtoRequest struct {
	Tipo     string          `json:"tipo"     validate:"required,oneof=anticipo pago_final"`
	Monto    decimal.Decimal `json:"monto"    validate:"required"`
	Desglose DesgloseRequest `json:"desglose" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DesgloseResponse struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Tarjeta       decimal.Decimal `json:"tarjeta"`
	Transferencia decimal.Decimal `json:"transferencia"`
	MercadoPago   decimal.Decimal `json:"mercado_pago"`
	Deposito      decimal.Decimal `json:"deposito"`
}

type PagoResponse struct {
	ID          string            `json:"id"`
	Tipo        string            `json:"tipo"`
	Metodo      string            `json:"metodo"`
	Monto       decimal.Decimal   `json:"monto"`
	RecibidoPor string            `json:"recibido_por"`
	Referencia  *string           `json:"referencia"`
	Desglose    *DesgloseResponse `json:"desglose,omitempty"`
	Fecha       string            `json:"fecha"`
}

// EstadoCuentaResponse resume la reconciliación de pagos de una orden.
type EstadoCuentaResponse struct {
	OrdenID          string          `json:"orden_id"`
	Folio            string          `json:"folio"`
	CostoDiagnostico decimal.Decimal `json:"costo_diagnostico"`
	CostoReparacion  decimal.Decimal `json:"costo_reparacion"`
	CostoTotal       decimal.Decimal `json:"costo_total"`
	TotalPagado      decimal.Decimal `json:"total_pagado"`
	SaldoPendiente   decimal.Decimal `json:"saldo_pendiente"`
	Pagos            []PagoResponse  `json:"pagos"`
}
