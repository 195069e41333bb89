package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/backend"
	"github.com/kingdavid103/Tracking-payment6/internal/config"
	"github.com/kingdavid103/Tracking-payment6/internal/logger"
	"github.com/kingdavid103/Tracking-payment6/internal/metrics"
	"github.com/kingdavid103/Tracking-payment6/internal/router"
	"github.com/kingdavid103/Tracking-payment6/internal/templates"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.LogLevel)
	log.Info().Str("backend", cfg.BackendURL).Msg("Starting CBL Dispatch web")
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(registry)

	tc := templates.NewTemplateCache(log)
	if err := tc.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, log)

	// Cancelled when shutdown begins so chat streams end.
	baseCtx, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(cfg, client, tc, registry, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(stopStreams)

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
