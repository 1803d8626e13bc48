package model

import (
	"time"

	"github.com/google/uuid"
)

// PlantillaNotificacion es configuración cosmética: texto y canal por evento.
// Nunca altera el grafo de transiciones — solo cómo se comunica cada hito.
// Evento: "os_creada" | "listo_para_entrega" | "cotizacion" | "pago_recibido" | "recordatorio"
// Canal:  "whatsapp" | "email" | "sms"
type PlantillaNotificacion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Evento string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_evento_canal"`
	Canal  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_evento_canal"`
	Asunto string
	// Cuerpo admite los placeholders {{cliente}}, {{folio}}, {{estado}},
	// {{equipo}}, {{monto}} y {{saldo}}.
	Cuerpo    string `gorm:"not null"`
	Activa    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PlantillaNotificacion) TableName() string { return "plantillas_notificacion" }

const (
	EventoOSCreada         = "os_creada"
	EventoListoParaEntrega = "listo_para_entrega"
	EventoCotizacion       = "cotizacion"
	EventoPagoRecibido     = "pago_recibido"
	EventoRecordatorio     = "recordatorio"
)
