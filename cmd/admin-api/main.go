package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/example/airlink-admin/internal/config"
	httpapi "github.com/example/airlink-admin/internal/http"
	"github.com/example/airlink-admin/internal/logging"
	"github.com/example/airlink-admin/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewLogger(cfg.LogLevel)

	db, err := storage.Open(cfg.PGDSN)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// optional migration: apply migrations/001_create_schema.sql if requested
	if cfg.RunMigrations {
		b, err := os.ReadFile(filepath.Join("migrations", "001_create_schema.sql"))
		if err != nil {
			logger.Error("migration read", "error", err)
			os.Exit(1)
		}
		if _, err := db.Exec(string(b)); err != nil {
			logger.Error("migration exec", "error", err)
			os.Exit(1)
		}
		logger.Info("migration applied", "file", "001_create_schema.sql")
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewServer(cfg, logger, db),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Info("airlink admin api listening", "addr", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
