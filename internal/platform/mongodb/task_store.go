package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaskStore implements the store.TaskStore interface
// using a MongoDB collection as the storage backend.
type MongoTaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoTaskStore creates a new MongoDB implementation of the TaskStore
// interface. If logger is nil, the default logger is used.
func NewMongoTaskStore(db *mongo.Database, logger *slog.Logger) *MongoTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoTaskStore{
		coll:   db.Collection(tasksCollection),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure MongoTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MongoTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	res, err := s.coll.InsertOne(ctx, task)
	if err != nil {
		return store.NewStoreError("task", "create", "insert failed", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *MongoTaskStore) GetByID(
	ctx context.Context,
	id primitive.ObjectID,
	sel store.FieldSelection,
) (*domain.Task, error) {
	opts := options.FindOne()
	if len(sel) > 0 {
		opts.SetProjection(projectionDocument(sel))
	}

	var task domain.Task
	err := s.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "find failed", err)
	}
	return &task, nil
}

// List implements store.TaskStore.List
func (s *MongoTaskStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Task, error) {
	cursor, err := s.coll.Find(ctx, filterDocument(q.Filter), findOptions(q))
	if err != nil {
		return nil, store.NewStoreError("task", "list", "find failed", err)
	}

	tasks := []*domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, store.NewStoreError("task", "list", "cursor decode failed", err)
	}
	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *MongoTaskStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, filterDocument(filter))
	if err != nil {
		return 0, store.NewStoreError("task", "count", "count failed", err)
	}
	return count, nil
}

// Update implements store.TaskStore.Update
// It replaces the stored record wholesale, matching the PUT semantics of
// the task endpoint.
func (s *MongoTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return store.NewStoreError("task", "update", "replace failed", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *MongoTaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return store.NewStoreError("task", "delete", "delete failed", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// UnassignMany implements store.TaskStore.UnassignMany
func (s *MongoTaskStore) UnassignMany(ctx context.Context, ids []string) error {
	oids := objectIDsFromHex(ids)
	if len(oids) == 0 {
		return nil
	}

	_, err := s.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{
			"assignedUser":     "",
			"assignedUserName": domain.UnassignedUserName,
		}},
	)
	if err != nil {
		return store.NewStoreError("task", "unassign_many", "bulk update failed", err)
	}
	return nil
}

// AssignMany implements store.TaskStore.AssignMany
func (s *MongoTaskStore) AssignMany(ctx context.Context, ids []string, userID, userName string) error {
	oids := objectIDsFromHex(ids)
	if len(oids) == 0 {
		return nil
	}

	_, err := s.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{
			"assignedUser":     userID,
			"assignedUserName": userName,
		}},
	)
	if err != nil {
		return store.NewStoreError("task", "assign_many", "bulk update failed", err)
	}
	return nil
}
