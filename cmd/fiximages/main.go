package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/fiximages/internal/config"
	"github.com/vbonduro/fiximages/internal/db"
	"github.com/vbonduro/fiximages/internal/docstore"
	firestorestore "github.com/vbonduro/fiximages/internal/docstore/firestore"
	sqlitestore "github.com/vbonduro/fiximages/internal/docstore/sqlite"
	"github.com/vbonduro/fiximages/internal/logging"
	"github.com/vbonduro/fiximages/internal/reconcile"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Printf("failed to initialize logger: %v", err)
		return 1
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newDocumentStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize document store", "backend", cfg.StoreBackend, "error", err)
		fmt.Printf("Failed to initialize %s store: %v\n", cfg.StoreBackend, err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close document store", "error", err)
		}
	}()

	reconciler := reconcile.NewReconciler(store, cfg.Collection, os.Stdout, logger, reconcile.WithDryRun(cfg.DryRun))
	if _, err := reconciler.Run(ctx); err != nil {
		logger.Error("reconciliation failed", "collection", cfg.Collection, "error", err)
		fmt.Printf("Error during data fixing: %v\n", err)
		return 1
	}
	return 0
}

func newDocumentStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (docstore.DocumentStore, error) {
	switch cfg.StoreBackend {
	case "firestore":
		logger.Info("using Firestore document store", "project", cfg.FirestoreProjectID)
		return firestorestore.NewFirestoreDocumentStore(ctx, cfg.FirestoreProjectID, cfg.CredentialsFile)
	case "sqlite":
		logger.Info("using SQLite document store", "path", cfg.DBPath)
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return sqlitestore.NewSQLiteDocumentStore(database), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
