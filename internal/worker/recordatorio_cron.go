package worker

// recordatorio_cron.go
// Goroutine de fondo que busca órdenes en "Lista para entrega" sin movimiento
// y encola un recordatorio al cliente. Un SETNX por orden y por día evita
// duplicar avisos aunque el tick corra en varias instancias.

import (
	"context"
	"time"

	"repairsuite/internal/model"
	"repairsuite/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	recordatorioTickInterval = 1 * time.Hour
	recordatorioBatchSize    = 50
	recordatorioDedupeTTL    = 24 * time.Hour
)

// RecordatorioCronConfig holds all dependencies for the reminder goroutine.
type RecordatorioCronConfig struct {
	OrdenRepo  repository.OrdenRepository
	Dispatcher *Dispatcher
	RDB        *redis.Client
	// DiasEnEspera: antigüedad mínima en "Lista para entrega" antes de recordar.
	DiasEnEspera int
}

// StartRecordatorioCron launches a background goroutine that ticks hourly,
// queries stale ready-for-pickup orders and enqueues reminder notifications.
// It respects the context for graceful shutdown.
func StartRecordatorioCron(ctx context.Context, cfg RecordatorioCronConfig) {
	if cfg.DiasEnEspera <= 0 {
		cfg.DiasEnEspera = 2
	}
	go func() {
		ticker := time.NewTicker(recordatorioTickInterval)
		defer ticker.Stop()

		log.Info().Int("dias_en_espera", cfg.DiasEnEspera).Msg("recordatorio_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("recordatorio_cron: shutting down")
				return
			case <-ticker.C:
				processRecordatorios(ctx, cfg)
			}
		}
	}()
}

func processRecordatorios(ctx context.Context, cfg RecordatorioCronConfig) {
	corte := time.Now().AddDate(0, 0, -cfg.DiasEnEspera)
	ordenes, err := cfg.OrdenRepo.ListParaRecordatorio(ctx, corte, recordatorioBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("recordatorio_cron: failed to query stale orders")
		return
	}
	if len(ordenes) == 0 {
		return
	}

	log.Info().Int("count", len(ordenes)).Msg("recordatorio_cron: processing stale orders")

	for i := range ordenes {
		orden := &ordenes[i]

		if cfg.RDB != nil {
			// Una sola instancia gana el derecho a recordar esta orden hoy.
			key := "recordatorio:" + orden.ID.String() + ":" + time.Now().Format("2006-01-02")
			ok, err := cfg.RDB.SetNX(ctx, key, 1, recordatorioDedupeTTL).Result()
			if err != nil {
				log.Error().Err(err).Str("folio", orden.Folio).Msg("recordatorio_cron: dedupe check failed")
				continue
			}
			if !ok {
				continue // ya recordada hoy
			}
		}

		payload := NotificacionPayload{
			Evento:          model.EventoRecordatorio,
			OrdenID:         orden.ID.String(),
			Folio:           orden.Folio,
			ClienteID:       orden.ClienteID.String(),
			ClienteNombre:   orden.ClienteNombre,
			ClienteTelefono: orden.ClienteTelefono,
			EquipoEtiqueta:  orden.EquipoEtiqueta,
			Estado:          string(orden.Estado),
			Saldo:           orden.SaldoPendiente().StringFixed(2),
		}
		if err := cfg.Dispatcher.EnqueueNotificacion(ctx, payload); err != nil {
			log.Error().Err(err).Str("folio", orden.Folio).Msg("recordatorio_cron: enqueue failed")
			continue
		}
		log.Info().Str("folio", orden.Folio).Msg("recordatorio_cron: reminder enqueued")
	}
}
