package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskly/taskly-api/internal/config"
	"github.com/taskly/taskly-api/internal/platform/mongodb"
	"github.com/taskly/taskly-api/internal/service/assignment"
	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// application holds the wired dependencies shared by the HTTP handlers.
type application struct {
	config *config.Config
	logger *slog.Logger

	client *mongo.Client

	taskStore store.TaskStore
	userStore store.UserStore
	sync      *assignment.Synchronizer
}

// newApplication connects to the database, bootstraps indexes and wires the
// stores and the assignment synchronizer.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := mongodb.Connect(ctx, cfg.Database.URI)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	db := client.Database(cfg.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("index bootstrap failed: %w", err)
	}

	taskStore := mongodb.NewMongoTaskStore(db, logger)
	userStore := mongodb.NewMongoUserStore(db, logger)

	return &application{
		config:    cfg,
		logger:    logger,
		client:    client,
		taskStore: taskStore,
		userStore: userStore,
		sync:      assignment.NewSynchronizer(taskStore, userStore, logger),
	}, nil
}

// cleanup releases resources held by the application during shutdown.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.client.Disconnect(ctx); err != nil {
		app.logger.Error("Failed to disconnect from database", "error", err)
	}
}
