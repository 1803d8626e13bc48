package model

import (
	"time"

	"github.com/google/uuid"

	"repairsuite/internal/lifecycle"
)

// HistorialOrden es la bitácora append-only de transiciones: la única fuente
// de verdad sobre "cómo llegamos acá". Las filas jamás se mutan ni borran, y
// Fecha es monótonamente no decreciente dentro de una orden.
type HistorialOrden struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID uuid.UUID `gorm:"type:uuid;not null;index"`
	// EstadoAnterior es nil solo en la entrada de creación.
	EstadoAnterior *lifecycle.Estado `gorm:"type:varchar(40)"`
	EstadoNuevo    lifecycle.Estado  `gorm:"type:varchar(40);not null"`
	// Usuario es el nombre humano del actor, o "Sistema" en saltos automáticos.
	Usuario string `gorm:"not null"`
	Notas   *string
	Fecha   time.Time `gorm:"not null"`
}

func (HistorialOrden) TableName() string { return "historial_ordenes" }

// UsuarioSistema firma las entradas de transiciones encadenadas por el resolver.
const UsuarioSistema = "Sistema"
