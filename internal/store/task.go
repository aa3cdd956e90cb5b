package store

import (
	"context"

	"github.com/taskly/taskly-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and fills in its generated ID.
	// Returns ErrInvalidEntity (wrapped) if the task fails domain validation.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, applying the optional
	// field selection. Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID, sel FieldSelection) (*domain.Task, error)

	// List retrieves tasks matching the given query, honoring its filter,
	// sort, selection, skip and limit.
	List(ctx context.Context, q ListQuery) ([]*domain.Task, error)

	// Count returns the number of tasks matching the given filter,
	// ignoring any skip/limit/selection settings.
	Count(ctx context.Context, filter map[string]any) (int64, error)

	// Update replaces an existing task's record wholesale.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// UnassignMany resets assignedUser/assignedUserName to the unassigned
	// sentinel values on every task in ids. Missing ids are skipped, not
	// errors. A nil or empty slice is a no-op.
	UnassignMany(ctx context.Context, ids []string) error

	// AssignMany points every task in ids at the given user, setting both
	// assignedUser and the denormalized assignedUserName. Missing ids are
	// skipped, not errors. A nil or empty slice is a no-op.
	AssignMany(ctx context.Context, ids []string, userID, userName string) error
}
