package store

import (
	"context"

	"github.com/taskly/taskly-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and fills in its generated ID.
	// Returns ErrEmailExists if the email is already taken.
	// Returns ErrInvalidEntity (wrapped) if the user fails domain validation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, applying the optional
	// field selection. Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID, sel FieldSelection) (*domain.User, error)

	// List retrieves users matching the given query, honoring its filter,
	// sort, selection, skip and limit.
	List(ctx context.Context, q ListQuery) ([]*domain.User, error)

	// Count returns the number of users matching the given filter,
	// ignoring any skip/limit/selection settings.
	Count(ctx context.Context, filter map[string]any) (int64, error)

	// Update replaces an existing user's record wholesale.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AddPendingTask inserts taskID into the user's pendingTasks set if it
	// is not already present. The insert is idempotent: adding an id twice
	// never duplicates it. Returns ErrUserNotFound if the user does not exist.
	AddPendingTask(ctx context.Context, userID, taskID string) error

	// RemovePendingTask removes taskID from the user's pendingTasks set if
	// present. Returns ErrUserNotFound if the user does not exist.
	RemovePendingTask(ctx context.Context, userID, taskID string) error
}
