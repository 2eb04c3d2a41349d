// Package cli provides the initialization helpers and terminal prompts shared
// by cmd/moneyapp and cmd/activity-worker.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"moneyapp/internal/amqp"
	"moneyapp/internal/backend"
	"moneyapp/internal/config"
	"moneyapp/internal/core"
	"moneyapp/internal/log"
	"moneyapp/internal/services"
)

// SetupLogger builds the process logger at the given LOG_LEVEL and makes it
// the slog default. Unknown levels fall back to info.
func SetupLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	logger := log.New(log.Config{
		Level:     lvl,
		Component: log.ComponentApp,
		Output:    os.Stderr,
	})
	if err != nil {
		logger.Warn("Unknown log level, using info", log.FieldError, err)
	}
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig loads configuration from the environment and validates it.
func LoadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg, err := LoadConfig()
	if err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore creates the store selected by DATA_BACKEND.
func OpenStore(ctx context.Context, logger *log.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	return backend.NewFactory(logger).CreateBackend(ctx, bcfg)
}

// NewActivityNotifier connects to AMQP when configured. A broker that cannot
// be reached only disables activity events.
func NewActivityNotifier(logger *log.Logger, cfg *config.Config) *services.ActivityService {
	if !cfg.AMQPEnabled() {
		return services.NewActivityService(nil)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without activity events",
			log.FieldError, err)
		return services.NewActivityService(nil)
	}

	logger.Info("Initialized AMQP client",
		log.FieldExchange, cfg.AMQPExchange,
		log.FieldQueue, cfg.AMQPQueue)
	return services.NewActivityService(client)
}

// Fail writes the short user-facing message for err to w and logs the full
// error at debug level.
func Fail(logger *log.Logger, w io.Writer, err error) {
	logger.Debug("Command failed", log.FieldError, err)
	fmt.Fprintln(w, core.UserMessage(err))
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		cancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup()
			}
			close(finished)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-finished:
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}
