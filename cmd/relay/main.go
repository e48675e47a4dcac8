package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/config"
	"github.com/estateline/estateline/internal/service"
	"github.com/estateline/estateline/internal/ws"
)

// The relay topology: this process owns only the live connections. Every
// inbound message is forwarded to the persistence service over a short
// synchronous call, and fan-out happens here whether or not that call
// succeeded.
func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	registry := ws.NewRegistry(logger)
	forwarder := service.NewHTTPForwarder(cfg.APIBase, logger)
	dispatcher := service.NewRemoteMessageService(forwarder, logger)
	chat := ws.NewSessionHandler(registry, dispatcher, logger)

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Relay server is running."))
	}).Methods(http.MethodGet)
	r.Handle("/ws/private", chat)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:        cfg.RelayAddr,
		Handler:     r,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.RelayAddr).Str("api_base", cfg.APIBase).Msg("starting relay")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("relay failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("relay stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
