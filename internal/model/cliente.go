package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente es el directorio de clientes del taller. El motor de órdenes lo lee
// una sola vez al crear la orden para poblar el cache denormalizado.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Telefono  string    `gorm:"not null"`
	Email     *string
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
