package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/advisor"
	"github.com/hosteldesk/backend/internal/api"
	"github.com/hosteldesk/backend/internal/auth"
	"github.com/hosteldesk/backend/internal/complaints"
	"github.com/hosteldesk/backend/internal/config"
	"github.com/hosteldesk/backend/internal/events"
	"github.com/hosteldesk/backend/internal/notify"
	"github.com/hosteldesk/backend/internal/observ"
	"github.com/hosteldesk/backend/internal/snapshot"
	"github.com/hosteldesk/backend/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup uses Background(): there is no request deadline yet and
	// connecting to the snapshot backend takes as long as it takes.
	snaps, closeSnaps, err := newSnapshotStore(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("open snapshot backend: %w", err)
	}
	defer closeSnaps()

	recordStore := store.New(context.Background(), snaps, logger)

	gate := auth.NewGate(recordStore, logger)
	gate.HashPasswords = cfg.HashPasswords

	guard := complaints.NewGuard(cfg.StrictComplaints)
	complaintSvc := complaints.NewService(recordStore, guard, logger)

	advisorClient := advisor.NewClient(cfg.AdvisorBaseURL, cfg.AdvisorAPIKey, cfg.AdvisorModel, logger)
	if cfg.AdvisorAPIKey == "" {
		logger.Warn("ADVISOR_API_KEY not set, advisory functions will return fallbacks")
	}

	hub := events.NewHub(logger)
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChat != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChat, logger)
		if err != nil {
			return fmt.Errorf("start telegram notifier: %w", err)
		}
		hub.AddSink(tg.Sink())
	}
	go hub.Run()

	router := api.NewRouter(api.Handlers{
		Auth:       api.NewAuthHandler(gate, cfg.JWTSecret, logger),
		Complaints: api.NewComplaintsHandler(complaintSvc, recordStore, hub, logger),
		Dashboard:  api.NewDashboardHandler(recordStore, logger),
		Advisor:    api.NewAdvisorHandler(advisorClient, recordStore),
		WS:         api.NewWSHandler(hub, cfg.JWTSecret, logger),
		JWTSecret:  cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	logger.Info("starting hosteldesk",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("snapshot_backend", cfg.SnapshotBackend),
		zap.Bool("strict_complaints", cfg.StrictComplaints),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// newSnapshotStore opens the configured persistence backend. The second
// return value closes it; for the file backend there is nothing to
// close.
func newSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (snapshot.Store, func(), error) {
	switch cfg.SnapshotBackend {
	case "redis":
		s, err := snapshot.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "postgres":
		s, err := snapshot.NewPostgresStore(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := snapshot.NewFileStore(cfg.SnapshotDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}
