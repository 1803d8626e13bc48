package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueNotificacion = "jobs:notificacion"
	QueueEmail        = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NotificacionPayload es el evento "ocurrió una transición/hito" que el motor
// emite. El worker resuelve plantilla y contactos; el motor nunca espera por
// la entrega.
type NotificacionPayload struct {
	Evento          string `json:"evento"` // os_creada | listo_para_entrega | cotizacion | pago_recibido | recordatorio
	OrdenID         string `json:"orden_id"`
	Folio           string `json:"folio"`
	ClienteID       string `json:"cliente_id"`
	ClienteNombre   string `json:"cliente_nombre"`
	ClienteTelefono string `json:"cliente_telefono"`
	EquipoEtiqueta  string `json:"equipo_etiqueta"`
	Estado          string `json:"estado"`
	Monto           string `json:"monto,omitempty"` // decimal con 2 posiciones, cuando aplica
	Saldo           string `json:"saldo,omitempty"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// EnqueueNotificacion pushes a notification event to Redis.
// Best-effort: con rdb nil (modo test) es un no-op.
func (d *Dispatcher) EnqueueNotificacion(ctx context.Context, payload NotificacionPayload) error {
	if d == nil || d.rdb == nil {
		return nil
	}
	if !eventoValido(payload.Evento) {
		log.Warn().Str("evento", payload.Evento).Msg("dispatcher: evento de notificación desconocido — descartado")
		return nil
	}
	return d.enqueue(ctx, QueueNotificacion, "notificacion", payload)
}

// EnqueueEmail pushes a raw email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	if d == nil || d.rdb == nil {
		return nil
	}
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers agrupa los procesadores concretos que el pool invoca.
type WorkerHandlers struct {
	Notificacion *NotificacionWorker
	Email        *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueNotificacion, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "notificacion":
		if handlers.Notificacion != nil {
			handlers.Notificacion.Process(ctx, job.Payload)
			return
		}
	case "email":
		if handlers.Email != nil {
			handlers.Email.Process(ctx, job.Payload)
			return
		}
	}

	SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "no handler registered", 0)
}
