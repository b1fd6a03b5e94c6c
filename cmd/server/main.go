package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	httpapi "ocean-server/internal/api/http"
	"ocean-server/internal/api/ws"
	"ocean-server/internal/config"
	"ocean-server/internal/dispatcher"
	"ocean-server/internal/logging"
	"ocean-server/internal/ocean"
	"ocean-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid logging configuration")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events, err := dispatcher.New(logging.NewEventLogger(logger.With().Str("component", "dispatcher").Logger()), cfg.Tuning.EventQueueSize)
	if err != nil {
		return err
	}

	hub := ws.NewHub(events, ws.Options{
		SendBuffer:     cfg.Tuning.SendBuffer,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, logger)
	mgr := ocean.NewManager(store.NewMemoryStore(), hub, logger)
	ws.RegisterRoutes(events, mgr, hub)

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		events.Run(ctx)
	}()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: httpapi.NewRouter(mgr, hub.HandleWS, logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-serveErr:
		stop()
		<-dispatched
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not tracked by Shutdown
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-dispatched

	logger.Info().Msg("server stopped")
	return nil
}
