package dto

import "github.com/shopspring/decimal"

// DTOs del catálogo (productos, proveedores, plantillas de notificación).

// ─── Productos ───────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	SKU         string          `json:"sku"          validate:"required,min=2,max=60"`
	Precio      decimal.Decimal `json:"precio"       validate:"required"`
	StockActual int             `json:"stock_actual" validate:"min=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
	ProveedorID *string         `json:"proveedor_id" validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Precio      decimal.Decimal `json:"precio"       validate:"omitempty"`
	StockMinimo *int            `json:"stock_minimo" validate:"omitempty,min=0"`
	ProveedorID *string         `json:"proveedor_id" validate:"omitempty,uuid"`
}

type ProductoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	SKU         string          `json:"sku"`
	Precio      decimal.Decimal `json:"precio"`
	StockActual int             `json:"stock_actual"`
	StockMinimo int             `json:"stock_minimo"`
	ProveedorID *string         `json:"proveedor_id"`
	Activo      bool            `json:"activo"`
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=2,max=150"`
	Telefono    *string `json:"telefono"     validate:"omitempty,max=30"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"    validate:"omitempty,max=200"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Direccion   *string `json:"direccion"`
	Activo      bool    `json:"activo"`
}

// ─── Plantillas de notificación ──────────────────────────────────────────────

type GuardarPlantillaRequest struct {
	Evento string `json:"evento" validate:"required,oneof=os_creada listo_para_entrega cotizacion pago_recibido recordatorio"`
	Canal  string `json:"canal"  validate:"required,oneof=whatsapp email sms"`
	Asunto string `json:"asunto" validate:"omitempty,max=150"`
	Cuerpo string `json:"cuerpo" validate:"required,min=5,max=2000"`
	Activa *bool  `json:"activa"`
}

type PlantillaResponse struct {
	ID     string `json:"id"`
	Evento string `json:"evento"`
	Canal  string `json:"canal"`
	Asunto string `json:"asunto"`
	Cuerpo string `json:"cuerpo"`
	Activa bool   `json:"activa"`
}
