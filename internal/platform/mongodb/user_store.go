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

// MongoUserStore implements the store.UserStore interface
// using a MongoDB collection as the storage backend.
type MongoUserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoUserStore creates a new MongoDB implementation of the UserStore
// interface. If logger is nil, the default logger is used.
func NewMongoUserStore(db *mongo.Database, logger *slog.Logger) *MongoUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoUserStore{
		coll:   db.Collection(usersCollection),
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure MongoUserStore implements store.UserStore interface
var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create
// Email uniqueness is enforced by the unique index created in EnsureIndexes;
// a duplicate key error surfaces as store.ErrEmailExists.
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "create", "insert failed", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(
	ctx context.Context,
	id primitive.ObjectID,
	sel store.FieldSelection,
) (*domain.User, error) {
	opts := options.FindOne()
	if len(sel) > 0 {
		opts.SetProjection(projectionDocument(sel))
	}

	var user domain.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "find failed", err)
	}
	return &user, nil
}

// List implements store.UserStore.List
func (s *MongoUserStore) List(ctx context.Context, q store.ListQuery) ([]*domain.User, error) {
	cursor, err := s.coll.Find(ctx, filterDocument(q.Filter), findOptions(q))
	if err != nil {
		return nil, store.NewStoreError("user", "list", "find failed", err)
	}

	users := []*domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, store.NewStoreError("user", "list", "cursor decode failed", err)
	}
	return users, nil
}

// Count implements store.UserStore.Count
func (s *MongoUserStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, filterDocument(filter))
	if err != nil {
		return 0, store.NewStoreError("user", "count", "count failed", err)
	}
	return count, nil
}

// Update implements store.UserStore.Update
func (s *MongoUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "update", "replace failed", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// Delete implements store.UserStore.Delete
func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return store.NewStoreError("user", "delete", "delete failed", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// AddPendingTask implements store.UserStore.AddPendingTask
// $addToSet provides the idempotent insert: re-adding a task id the user
// already has modifies nothing.
func (s *MongoUserStore) AddPendingTask(ctx context.Context, userID, taskID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrUserNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"pendingTasks": taskID}},
	)
	if err != nil {
		return store.NewStoreError("user", "add_pending_task", "update failed", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// RemovePendingTask implements store.UserStore.RemovePendingTask
func (s *MongoUserStore) RemovePendingTask(ctx context.Context, userID, taskID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrUserNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"pendingTasks": taskID}},
	)
	if err != nil {
		return store.NewStoreError("user", "remove_pending_task", "update failed", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
