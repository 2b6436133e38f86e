// Package cli provides common CLI initialization utilities shared by
// cmd/gagyebu and cmd/gagyebu-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"gagyebu/internal/config"
	"gagyebu/internal/storage"
	"gagyebu/internal/storage/file"
	"gagyebu/internal/storage/memory"
	"gagyebu/internal/storage/sqlite"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend builds the storage backend selected by DATA_BACKEND.
// Returns the store and a close function, or exits the process on failure.
func OpenBackend(logger *slog.Logger, cfg *config.Config) (storage.KV, func()) {
	switch cfg.DataBackend {
	case "memory":
		return memory.New(), func() {}
	case "file":
		kv, err := file.New(cfg.DataDir)
		if err != nil {
			logger.Error("Failed to initialize file backend", "error", err, "dir", cfg.DataDir)
			os.Exit(1)
		}
		return kv, func() {}
	case "sqlite":
		kv, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize sqlite backend", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		return kv, func() { _ = kv.Close() }
	default:
		logger.Error("Unknown data backend", "backend", cfg.DataBackend)
		os.Exit(1)
		return nil, nil
	}
}

