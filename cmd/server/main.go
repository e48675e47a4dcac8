package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/estateline/estateline/internal/config"
	"github.com/estateline/estateline/internal/handler"
	"github.com/estateline/estateline/internal/legal"
	"github.com/estateline/estateline/internal/repository"
	"github.com/estateline/estateline/internal/service"
	"github.com/estateline/estateline/internal/ws"
)

// The combined topology: entity store, message log, HTTP API, and the
// websocket chat all in one process.
func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("creating data directory failed")
	}

	users := repository.NewSnapshotUserRepository(cfg.SnapshotPath("users.gob"), logger)
	groups := repository.NewSnapshotGroupRepository(cfg.SnapshotPath("groups.gob"), logger)
	posts := repository.NewSnapshotPostRepository(cfg.SnapshotPath("posts.gob"), logger)
	messages := repository.NewSnapshotMessageLog(
		cfg.SnapshotPath("personal_messages.gob"),
		cfg.SnapshotPath("group_messages.gob"),
		logger,
	)

	snapshots := repository.NewSnapshots(users, groups, posts, messages, logger)
	snapshots.LoadAll()

	policy := service.MessagePolicy{RequireMembership: cfg.RequireGroupMembership}
	messageService := service.NewLocalMessageService(users, groups, messages, policy, logger)

	registry := ws.NewRegistry(logger)
	chat := ws.NewSessionHandler(registry, messageService, logger)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionKey))
	register := legal.NewRegister(cfg.LawRegisterPath, logger)
	advice := legal.NewAdviceClient(cfg.AdviceURL, cfg.AdviceModel, logger)

	router := handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(users, logger), cookieStore, logger),
		User:     handler.NewUserHandler(service.NewUserService(users, logger), logger),
		Group:    handler.NewGroupHandler(service.NewGroupService(groups, users, logger), logger),
		Message:  handler.NewMessageHandler(messageService, logger),
		Post:     handler.NewPostHandler(service.NewPostService(posts, users, logger), logger),
		Legal:    handler.NewLegalHandler(register, advice, logger),
		Snapshot: handler.NewSnapshotHandler(snapshots, logger),
		Chat:     chat,
	}, logger)

	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.Env).Msg("starting combined server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
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

	snapshots.FlushOnExit()
	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
