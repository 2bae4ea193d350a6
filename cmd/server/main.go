package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/sbvanyo/expense-tracker-server/internal/config"
	"github.com/sbvanyo/expense-tracker-server/internal/events"
	apphttp "github.com/sbvanyo/expense-tracker-server/internal/http"
	applog "github.com/sbvanyo/expense-tracker-server/internal/log"
	"github.com/sbvanyo/expense-tracker-server/internal/services"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

func main() {
	// Load .env for local development; in containers the environment is
	// already populated.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	applog.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func run(cfg *config.Config) error {
	store, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Opened database", "path", cfg.SQLiteDBPath)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Event publishing is best-effort; a down broker must not block
			// the API from serving.
			slog.Warn("AMQP unavailable, entity events disabled", "error", err)
		} else {
			publisher = client
			slog.Info("Connected to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}
	defer publisher.Close()

	handlers := apphttp.NewHandlers(
		services.NewUserService(store, publisher),
		services.NewTripService(store, publisher),
		services.NewExpenseService(store, publisher),
		services.NewCategoryService(store, publisher),
		services.NewExpenseCategoryService(store, publisher),
		store,
	)

	srv := apphttp.NewServer(":"+cfg.Port, handlers)
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
