package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gagyebu/internal/amqp"
	"gagyebu/internal/backup"
	backupgoogle "gagyebu/internal/backup/google"
	backupmem "gagyebu/internal/backup/memory"
	"gagyebu/internal/cli"
	"gagyebu/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger()
	logger.Info("Starting gagyebu-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	kv, closeBackend := cli.OpenBackend(logger, cfg)
	defer closeBackend()

	// Backup target. Without a configured spreadsheet the worker mirrors to
	// memory, which keeps the pipeline runnable in local development.
	var mirror backup.Mirror
	if cfg.BackupConfigured() {
		client, err := backupgoogle.New(context.Background(), backupgoogle.Config{
			SpreadsheetID: cfg.GoogleSpreadsheetID,
			SheetName:     cfg.GoogleSheetName,
			KeyJSON:       cfg.GoogleSAKeyJSON,
			KeyFile:       cfg.GoogleSAKeyFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets mirror", "error", err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		mirror = backupmem.New()
		logger.Info("Sheets backup disabled - mirroring to memory")
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the backup worker")
		os.Exit(1)
	}
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backupWorker := worker.NewBackupWorker(kv, mirror)

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- backupWorker.Run(ctx, amqpClient, cfg.BackupInterval)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	workerDone := false
	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case err := <-workerErr:
		workerDone = true
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Backup worker failed", "error", err)
		}
	}

	logger.Info("Shutting down worker...")
	cancel()

	if !workerDone {
		select {
		case <-workerErr:
			logger.Info("Worker shutdown complete")
		case <-time.After(5 * time.Second):
			logger.Warn("Shutdown timeout reached")
		}
	}
}
