package mocks

import (
	"context"
	"sync"

	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// Custom behavior functions
	CreateFn       func(ctx context.Context, task *domain.Task) error
	GetByIDFn      func(ctx context.Context, id primitive.ObjectID, sel store.FieldSelection) (*domain.Task, error)
	ListFn         func(ctx context.Context, q store.ListQuery) ([]*domain.Task, error)
	CountFn        func(ctx context.Context, filter map[string]any) (int64, error)
	UpdateFn       func(ctx context.Context, task *domain.Task) error
	DeleteFn       func(ctx context.Context, id primitive.ObjectID) error
	UnassignManyFn func(ctx context.Context, ids []string) error
	AssignManyFn   func(ctx context.Context, ids []string, userID, userName string) error

	// Call tracking for verification
	mu sync.Mutex

	CreateCalls  []*domain.Task
	GetByIDCalls []primitive.ObjectID
	ListCalls    []store.ListQuery
	CountCalls   []map[string]any
	UpdateCalls  []*domain.Task
	DeleteCalls  []primitive.ObjectID

	UnassignManyCalls [][]string
	AssignManyCalls   []AssignManyCall
}

// AssignManyCall records one AssignMany invocation.
type AssignManyCall struct {
	IDs      []string
	UserID   string
	UserName string
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, task)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) GetByID(
	ctx context.Context,
	id primitive.ObjectID,
	sel store.FieldSelection,
) (*domain.Task, error) {
	m.mu.Lock()
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, sel)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskStore) List(ctx context.Context, q store.ListQuery) ([]*domain.Task, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, q)
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskStore) Count(ctx context.Context, filter map[string]any) (int64, error) {
	m.mu.Lock()
	m.CountCalls = append(m.CountCalls, filter)
	m.mu.Unlock()

	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, task)
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockTaskStore) UnassignMany(ctx context.Context, ids []string) error {
	m.mu.Lock()
	m.UnassignManyCalls = append(m.UnassignManyCalls, ids)
	m.mu.Unlock()

	if m.UnassignManyFn != nil {
		return m.UnassignManyFn(ctx, ids)
	}
	return nil
}

func (m *MockTaskStore) AssignMany(ctx context.Context, ids []string, userID, userName string) error {
	m.mu.Lock()
	m.AssignManyCalls = append(m.AssignManyCalls, AssignManyCall{IDs: ids, UserID: userID, UserName: userName})
	m.mu.Unlock()

	if m.AssignManyFn != nil {
		return m.AssignManyFn(ctx, ids, userID, userName)
	}
	return nil
}
