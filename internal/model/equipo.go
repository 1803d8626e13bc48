package model

import (
	"time"

	"github.com/google/uuid"
)

// Equipo es un aparato registrado de un cliente (lo que entra al taller).
type Equipo struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"not null"` // "laptop", "celular", "impresora", …
	Marca         string    `gorm:"not null"`
	Modelo        string    `gorm:"not null"`
	NumeroSerie   *string
	Observaciones *string
	CreatedAt     time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (Equipo) TableName() string { return "equipos" }

// Etiqueta arma la descripción corta que se denormaliza en la orden.
func (e *Equipo) Etiqueta() string {
	return e.Tipo + " " + e.Marca + " " + e.Modelo
}
