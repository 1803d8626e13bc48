package worker

// notificacion_worker.go
// Procesa eventos de QueueNotificacion: resuelve la plantilla configurada por
// (evento, canal), la renderiza con los datos de la orden y la entrega por el
// canal correspondiente. La entrega es best-effort: un canal caído se loguea
// y no afecta a los demás ni a la transición que originó el evento.

import (
	"context"
	"encoding/json"
	"strings"

	"repairsuite/internal/infra"
	"repairsuite/internal/model"
	"repairsuite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var canales = []string{"whatsapp", "email", "sms"}

// NotificacionWorker entrega notificaciones multicanal a partir de las
// plantillas configuradas en la base.
type NotificacionWorker struct {
	plantillas repository.PlantillaRepository
	clientes   repository.ClienteRepository
	mailer     *infra.Mailer
	whatsapp   *infra.WhatsAppClient
	cb         *infra.CircuitBreaker
}

func NewNotificacionWorker(
	plantillas repository.PlantillaRepository,
	clientes repository.ClienteRepository,
	mailer *infra.Mailer,
	whatsapp *infra.WhatsAppClient,
	cb *infra.CircuitBreaker,
) *NotificacionWorker {
	return &NotificacionWorker{
		plantillas: plantillas,
		clientes:   clientes,
		mailer:     mailer,
		whatsapp:   whatsapp,
		cb:         cb,
	}
}

// Process renders and delivers one notification event on every active channel.
func (w *NotificacionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificacionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacion_worker: invalid payload")
		return
	}

	// Email del cliente: no viaja denormalizado en la orden, se resuelve acá.
	var clienteEmail string
	if id, err := uuid.Parse(payload.ClienteID); err == nil {
		if cliente, err := w.clientes.FindByID(ctx, id); err == nil && cliente.Email != nil {
			clienteEmail = *cliente.Email
		}
	}

	for _, canal := range canales {
		plantilla, err := w.plantillas.FindActiva(ctx, payload.Evento, canal)
		if err != nil {
			continue // sin plantilla activa para este canal
		}
		cuerpo := renderPlantilla(plantilla.Cuerpo, payload)
		asunto := renderPlantilla(plantilla.Asunto, payload)

		switch canal {
		case "whatsapp":
			w.enviarWhatsApp(ctx, payload, cuerpo)
		case "email":
			w.enviarEmail(payload, clienteEmail, asunto, cuerpo)
		case "sms":
			// Sin proveedor de SMS configurado: queda registrado para el tablero.
			log.Info().
				Str("folio", payload.Folio).
				Str("telefono", payload.ClienteTelefono).
				Str("evento", payload.Evento).
				Msg("notificacion_worker: sms registrado (sin proveedor)")
		}
	}
}

func (w *NotificacionWorker) enviarWhatsApp(ctx context.Context, payload NotificacionPayload, cuerpo string) {
	if w.whatsapp == nil || payload.ClienteTelefono == "" {
		return
	}
	err := w.cb.Execute(func() error {
		return w.whatsapp.EnviarMensaje(ctx, payload.ClienteTelefono, cuerpo)
	})
	if err != nil {
		log.Error().Err(err).
			Str("folio", payload.Folio).
			Str("evento", payload.Evento).
			Msg("notificacion_worker: fallo envío whatsapp")
		return
	}
	log.Info().Str("folio", payload.Folio).Str("evento", payload.Evento).Msg("notificacion_worker: whatsapp enviado")
}

func (w *NotificacionWorker) enviarEmail(payload NotificacionPayload, to, asunto, cuerpo string) {
	if w.mailer == nil || to == "" {
		return
	}
	if asunto == "" {
		asunto = "Taller — " + payload.Folio
	}
	if err := w.mailer.Send(to, asunto, cuerpo, ""); err != nil {
		log.Error().Err(err).Str("to", to).Str("folio", payload.Folio).Msg("notificacion_worker: fallo envío email")
		return
	}
	log.Info().Str("to", to).Str("folio", payload.Folio).Msg("notificacion_worker: email enviado")
}

// renderPlantilla reemplaza los placeholders soportados por los datos del evento.
func renderPlantilla(cuerpo string, p NotificacionPayload) string {
	r := strings.NewReplacer(
		"{{cliente}}", p.ClienteNombre,
		"{{folio}}", p.Folio,
		"{{estado}}", p.Estado,
		"{{equipo}}", p.EquipoEtiqueta,
		"{{monto}}", p.Monto,
		"{{saldo}}", p.Saldo,
	)
	return r.Replace(cuerpo)
}

// eventoValido evita encolar eventos que ninguna plantilla va a resolver.
func eventoValido(evento string) bool {
	switch evento {
	case model.EventoOSCreada, model.EventoListoParaEntrega, model.EventoCotizacion,
		model.EventoPagoRecibido, model.EventoRecordatorio:
		return true
	}
	return false
}
