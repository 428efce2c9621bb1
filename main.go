package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"storelite/ims/internal/api"
	"storelite/ims/internal/billing"
	"storelite/ims/internal/catalog"
	"storelite/ims/internal/config"
	"storelite/ims/internal/database"
	"storelite/ims/internal/migrations"
	"storelite/ims/internal/seed"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime)

	cfg := config.Load()
	db := database.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	if cfg.SeedPath != "" {
		seed.LoadItems(db, cfg.SeedPath)
	}

	billingSvc := billing.NewService(logger, db, catalog.NewStore(db))
	handler := api.New(db, billingSvc, cfg.Secret)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler.Router(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     logger,
	}

	errChan := make(chan error)
	go func() {
		logger.Printf("StoreLite IMS server starting on :%s (driver %s)", cfg.HTTPPort, cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Fatalf("server error: %v", err)
	case sig := <-quit:
		logger.Printf("received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Println("server stopped")
	}
}
