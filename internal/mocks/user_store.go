package mocks

import (
	"context"
	"sync"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Custom behavior functions
	CreateFn            func(ctx context.Context, user *domain.User) error
	GetByIDFn           func(ctx context.Context, id primitive.ObjectID, sel store.FieldSelection) (*domain.User, error)
	ListFn              func(ctx context.Context, q store.ListQuery) ([]*domain.User, error)
	CountFn             func(ctx context.Context, filter map[string]any) (int64, error)
	UpdateFn            func(ctx context.Context, user *domain.User) error
	DeleteFn            func(ctx context.Context, id primitive.ObjectID) error
	AddPendingTaskFn    func(ctx context.Context, userID, taskID string) error
	RemovePendingTaskFn func(ctx context.Context, userID, taskID string) error

	// Call tracking for verification
	mu sync.Mutex

	CreateCalls  []*domain.User
	GetByIDCalls []primitive.ObjectID
	ListCalls    []store.ListQuery
	CountCalls   []map[string]any
	UpdateCalls  []*domain.User
	DeleteCalls  []primitive.ObjectID

	AddPendingTaskCalls    []PendingTaskCall
	RemovePendingTaskCalls []PendingTaskCall
}

// PendingTaskCall records one AddPendingTask/RemovePendingTask invocation.
type PendingTaskCall struct {
	UserID string
	TaskID string
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, user)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByID(
	ctx context.Context,
	id primitive.ObjectID,
	sel store.FieldSelection,
) (*domain.User, error) {
	m.mu.Lock()
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, sel)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) List(ctx context.Context, q store.ListQuery) ([]*domain.User, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, q)
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return []*domain.User{}, nil
}

func (m *MockUserStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	m.mu.Lock()
	m.CountCalls = append(m.CountCalls, filter)
	m.mu.Unlock()

	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, user)
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockUserStore) AddPendingTask(ctx context.Context, userID, taskID string) error {
	m.mu.Lock()
	m.AddPendingTaskCalls = append(m.AddPendingTaskCalls, PendingTaskCall{UserID: userID, TaskID: taskID})
	m.mu.Unlock()

	if m.AddPendingTaskFn != nil {
		return m.AddPendingTaskFn(ctx, userID, taskID)
	}
	return nil
}

func (m *MockUserStore) RemovePendingTask(ctx context.Context, userID, taskID string) error {
	m.mu.Lock()
	m.RemovePendingTaskCalls = append(m.RemovePendingTaskCalls, PendingTaskCall{UserID: userID, TaskID: taskID})
	m.mu.Unlock()

	if m.RemovePendingTaskFn != nil {
		return m.RemovePendingTaskFn(ctx, userID, taskID)
	}
	return nil
}
