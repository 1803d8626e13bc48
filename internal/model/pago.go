package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago es una entrada inmutable en el libro de pagos de una orden.
// Tipo: "diagnostico" | "anticipo" | "pago_final"
// Metodo: "efectivo" | "tarjeta" | "transferencia" | "mercado_pago" | "deposito" | "mixto"
// Los pagos NUNCA se modifican ni borran; una corrección es un pago nuevo.
type Pago struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo        string          `gorm:"type:varchar(20);not null"`
	Metodo      string          `gorm:"type:varchar(20);not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RecibidoPor string          `gorm:"not null"`
	// Referencia externa: nro de transferencia, id de pago de Mercado Pago, etc.
	Referencia *string
	// Desglose solo aplica a metodo="mixto"; la suma de los cinco cubos debe
	// igualar Monto exactamente (se valida antes de persistir).
	Desglose  *DesglosePago `gorm:"embedded;embeddedPrefix:desglose_"`
	CreatedAt time.Time
}

func (Pago) TableName() string { return "pagos" }

// DesglosePago reparte un pago mixto entre los cinco métodos.
type DesglosePago struct {
	Efectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Tarjeta       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Transferencia decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MercadoPago   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Deposito      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// Suma devuelve el total de los cinco cubos.
func (d DesglosePago) Suma() decimal.Decimal {
	return d.Efectivo.Add(d.Tarjeta).Add(d.Transferencia).Add(d.MercadoPago).Add(d.Deposito)
}
