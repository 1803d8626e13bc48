package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"repairsuite/internal/lifecycle"
)

// OrdenServicio es la raíz de agregado del taller: estado actual, pagos,
// solicitudes de inventario, diagnóstico/reparación e historial viajan juntos
// y se cargan/guardan como unidad.
type OrdenServicio struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Folio string    `gorm:"uniqueIndex;not null"` // "OS-000123", inmutable una vez asignado

	// Referencias a los directorios externos (no ownership)
	ClienteID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	EquipoID          uuid.UUID  `gorm:"type:uuid;not null"`
	TecnicoAsignadoID *uuid.UUID `gorm:"type:uuid"`

	// Cache de lectura poblado desde los directorios al crear la orden.
	// NO es fuente de verdad; sirve para listar sin joins a los directorios.
	ClienteNombre   string `gorm:"not null"`
	ClienteTelefono string
	EquipoEtiqueta  string `gorm:"not null"` // "tipo marca modelo"

	FallaReportada string `gorm:"not null"` // lo que el cliente dice que no anda

	Estado    lifecycle.Estado `gorm:"type:varchar(40);not null;index"`
	Prioridad string           `gorm:"type:varchar(20);not null;default:'normal'"` // "normal" | "alta" | "urgente" — no afecta la máquina de estados

	EsGarantia      bool `gorm:"not null;default:false"`
	ClienteAprobado bool `gorm:"not null;default:false"`

	CostoDiagnostico decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CostoReparacion se fija una sola vez, al completar el diagnóstico.
	CostoReparacion decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Version respalda el chequeo optimista por orden: el UPDATE condiciona
	// sobre este valor y cero filas afectadas es un conflicto de concurrencia.
	Version int `gorm:"not null;default:1"`

	Diagnostico *Diagnostico `gorm:"foreignKey:OrdenID"`
	Reparacion  *Reparacion  `gorm:"foreignKey:OrdenID"`

	// Canales append-only. Nunca se actualizan ni borran filas existentes;
	// siguen abiertos incluso en estados terminales para fines registrales.
	Pagos       []Pago                `gorm:"foreignKey:OrdenID"`
	Solicitudes []SolicitudInventario `gorm:"foreignKey:OrdenID"`
	Historial   []HistorialOrden      `gorm:"foreignKey:OrdenID"`

	CreatedAt           time.Time
	UltimaActualizacion time.Time `gorm:"autoUpdateTime"`
}

func (OrdenServicio) TableName() string { return "ordenes_servicio" }

// TotalPagado es SIEMPRE el pliegue sobre Pagos — jamás una columna aparte,
// para que no pueda divergir de sus componentes.
func (o *OrdenServicio) TotalPagado() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Pagos {
		total = total.Add(p.Monto)
	}
	return total
}

// CostoTotal es lo que el cliente debe para retirar el equipo.
func (o *OrdenServicio) CostoTotal() decimal.Decimal {
	return o.CostoDiagnostico.Add(o.CostoReparacion)
}

// SaldoPendiente nunca es negativo: los sobrepagos quedan en cero.
func (o *OrdenServicio) SaldoPendiente() decimal.Decimal {
	saldo := o.CostoTotal().Sub(o.TotalPagado())
	if saldo.IsNegative() {
		return decimal.Zero
	}
	return saldo
}

// ContextoReglas arma el contexto puro que consume el validador de reglas.
func (o *OrdenServicio) ContextoReglas() lifecycle.Contexto {
	return lifecycle.Contexto{
		TieneDiagnostico: o.Diagnostico != nil,
		ClienteAprobado:  o.ClienteAprobado,
		TecnicoAsignado:  o.TecnicoAsignadoID != nil,
		TotalPagado:      o.TotalPagado(),
		CostoTotal:       o.CostoTotal(),
	}
}

// Diagnostico registra el hallazgo del técnico y la cotización. Se escribe una
// sola vez por orden; un re-diagnóstico se modela como orden nueva.
type Diagnostico struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	TecnicoID          uuid.UUID       `gorm:"type:uuid;not null"`
	Descripcion        string          `gorm:"not null"`
	CostoEstimado      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TiempoEstimadoDias int             `gorm:"not null;default:1"`
	CreatedAt          time.Time
}

func (Diagnostico) TableName() string { return "diagnosticos" }

// Reparacion registra el cierre técnico del trabajo. Inmutable tras crearse.
type Reparacion struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TecnicoID           uuid.UUID `gorm:"type:uuid;not null"`
	TrabajoRealizado    string    `gorm:"not null"`
	RepuestosUtilizados *string
	CreatedAt           time.Time
}

func (Reparacion) TableName() string { return "reparaciones" }
