// Package main implements the entry point for the Taskly API server,
// a two-resource REST API over tasks and users backed by MongoDB.
package main

import (
	"context"
	"log"

	"github.com/taskly/taskly-api/internal/config"
	"github.com/taskly/taskly-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.Setup(cfg.Server)

	app, err := newApplication(context.Background(), cfg, logr)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	logr.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name)

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
