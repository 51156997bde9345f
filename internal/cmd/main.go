package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/keeperleague/internal/api"
	"github.com/mcdev12/keeperleague/internal/config"
	"github.com/mcdev12/keeperleague/internal/dbconfig"
	"github.com/mcdev12/keeperleague/internal/draft/outbox"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := dbconfig.NewConfigFromEnv()
	pool, err := setupPool(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup database pool")
	}
	defer pool.Close()

	outboxDB, err := setupOutboxDB(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup outbox database connection")
	}
	defer outboxDB.Close()

	services := setupServices(pool, cfg)

	router := api.NewRouter(api.RouterDeps{
		KeeperApp:       services.Keeper,
		DraftApp:        services.Draft,
		AvailabilityApp: services.Availability,
		DBPinger:        pool,
		Version:         version,
	})

	// Outbox relay: JetStream publisher plus the LISTEN/NOTIFY listener.
	jsCfg := outbox.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NATS.URL
	if url := os.Getenv("NATS_URL"); url != "" {
		jsCfg.URL = url
	}
	publisher, err := outbox.NewJetStreamPublisher(jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create JetStream publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close publisher")
		}
	}()

	ltCfg := outbox.DefaultListenerConfig()
	ltCfg.DatabaseURL = dbCfg.DSN()
	if cfg.Outbox.FallbackInterval != "" {
		if d, err := time.ParseDuration(cfg.Outbox.FallbackInterval); err == nil {
			ltCfg.FallbackInterval = d
		}
	}

	listener, err := outbox.NewListener(outbox.NewRepository(outboxDB), publisher, ltCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create outbox listener")
	}

	listenerErr := make(chan error, 1)
	go func() {
		log.Info().Msg("starting outbox listener")
		listenerErr <- listener.Start(ctx)
	}()

	server := setupServer(router, cfg.Server.Port)
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting http server")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-listenerErr:
		log.Error().Err(err).Msg("outbox listener exited unexpectedly")
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server exited unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	log.Info().Msg("graceful shutdown complete")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
