package model

import (
	"time"

	"github.com/google/uuid"
)

// SolicitudInventario es el sub-flujo de 3 estados adjunto a una orden:
// "pendiente" → {"aprobada", "rechazada"}. Aprobada/rechazada son terminales,
// no hay reapertura. Vive desacoplada de la máquina principal: una solicitud
// pendiente no bloquea las transiciones de la orden.
type SolicitudInventario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null"`
	ProductoNombre string    `gorm:"not null"`
	Cantidad       int       `gorm:"not null"`
	SolicitadoPor  string    `gorm:"not null"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	AprobadoPor    *string
	FechaAprobacion *time.Time
	// Justificacion es obligatoria al rechazar (se exige en el DTO, no en la máquina).
	Justificacion *string
	CreatedAt     time.Time
}

func (SolicitudInventario) TableName() string { return "solicitudes_inventario" }

const (
	SolicitudPendiente = "pendiente"
	SolicitudAprobada  = "aprobada"
	SolicitudRechazada = "rechazada"
)

// Resuelta indica que la solicitud llegó a un estado terminal.
func (s *SolicitudInventario) Resuelta() bool {
	return s.Estado == SolicitudAprobada || s.Estado == SolicitudRechazada
}
