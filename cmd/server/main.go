package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repairsuite/internal/config"
	"repairsuite/internal/infra"
	"repairsuite/internal/repository"
	"repairsuite/internal/router"
	"repairsuite/internal/service"
	"repairsuite/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Infrastructure clients shared by workers and HTTP layer
	whatsapp := infra.NewWhatsAppClient(cfg.WhatsAppGatewayURL)
	gatewayCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)

	// Referencias de Mercado Pago solo se verifican si hay token configurado
	var verificador service.VerificadorPagos
	if cfg.MPAccessToken != "" {
		mp, err := infra.NewMercadoPagoVerifier(cfg.MPAccessToken)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init mercado pago client")
		}
		verificador = mp
	}

	// Async workers: notificaciones multicanal + emails con adjuntos.
	// Wired here (composition root) so the pool sees all infrastructure.
	plantillaRepo := repository.NewPlantillaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Notificacion: worker.NewNotificacionWorker(plantillaRepo, clienteRepo, mailer, whatsapp, gatewayCB),
		Email:        worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Recordatorios de retiro para órdenes listas para entrega
	worker.StartRecordatorioCron(ctx, worker.RecordatorioCronConfig{
		OrdenRepo:    ordenRepo,
		Dispatcher:   dispatcher,
		RDB:          rdb,
		DiasEnEspera: cfg.RecordatorioDias,
	})

	r := router.New(cfg, db, rdb, gatewayCB, verificador, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("RepairSuite backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
