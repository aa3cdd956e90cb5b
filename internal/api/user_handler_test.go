package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/mocks"
	"github.com/taskly/taskly-api/internal/service/assignment"
	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserRouter(tasks *mocks.MockTaskStore, users *mocks.MockUserStore) http.Handler {
	sync := assignment.NewSynchronizer(tasks, users, nil)
	h := NewUserHandler(users, sync, nil)

	r := chi.NewRouter()
	r.Get("/api/users", h.ListUsers)
	r.Post("/api/users", h.CreateUser)
	r.Get("/api/users/{id}", h.GetUser)
	r.Put("/api/users/{id}", h.UpdateUser)
	r.Delete("/api/users/{id}", h.DeleteUser)
	return r
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("creates_user", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users", taskBody(t, map[string]any{
			"name":  "Ann",
			"email": "ann@example.com",
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		message, data := decodeEnvelope(t, rec)
		assert.Equal(t, "User created successfully", message)

		var created domain.User
		require.NoError(t, json.Unmarshal(data, &created))
		assert.Equal(t, "Ann", created.Name)
		assert.NotNil(t, created.PendingTasks)
		assert.Empty(t, created.PendingTasks)
	})

	t.Run("initial_pending_tasks_accepted_as_is", func(t *testing.T) {
		// Deliberately not reconciled against the referenced tasks'
		// assignedUser field; see DESIGN.md.
		users := &mocks.MockUserStore{}
		tasks := &mocks.MockTaskStore{}
		router := newUserRouter(tasks, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users", taskBody(t, map[string]any{
			"name":         "Ann",
			"email":        "ann@example.com",
			"pendingTasks": []string{"t1", "t2"},
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, users.CreateCalls, 1)
		assert.Equal(t, []string{"t1", "t2"}, users.CreateCalls[0].PendingTasks)
		assert.Empty(t, tasks.AssignManyCalls)
	})

	t.Run("missing_email_is_rejected_before_store", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users", taskBody(t, map[string]any{
			"name": "Ann",
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		message, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "Name and email are required", message)
		assert.Empty(t, users.CreateCalls)
	})

	t.Run("duplicate_email_is_400_with_distinct_message", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		users.CreateFn = func(ctx context.Context, user *domain.User) error {
			return store.ErrEmailExists
		}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/users", taskBody(t, map[string]any{
			"name":  "Ann",
			"email": "ann@example.com",
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		message, data := decodeEnvelope(t, rec)
		assert.Equal(t, "User with this email already exists", message)
		assert.Equal(t, "null", string(data))
	})
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("no_default_limit", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, users.ListCalls, 1)
		assert.False(t, users.ListCalls[0].HasLimit)
	})

	t.Run("count_mode_returns_integer", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		users.CountFn = func(ctx context.Context, filter map[string]any) (int64, error) {
			return 3, nil
		}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users?count=true", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		message, data := decodeEnvelope(t, rec)
		assert.Equal(t, "OK", message)
		assert.Equal(t, "3", string(data))
	})

	t.Run("malformed_sort_is_rejected", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users?sort=[1,2]", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, users.ListCalls)
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Run("returns_user", func(t *testing.T) {
		id := primitive.NewObjectID()
		users := &mocks.MockUserStore{}
		users.GetByIDFn = func(ctx context.Context, got primitive.ObjectID, sel store.FieldSelection) (*domain.User, error) {
			assert.Equal(t, id, got)
			return &domain.User{ID: id, Name: "Ann", Email: "ann@example.com", PendingTasks: []string{}}, nil
		}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/"+id.Hex(), nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		message, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "OK", message)
	})

	t.Run("unknown_id_is_404", func(t *testing.T) {
		router := newUserRouter(&mocks.MockTaskStore{}, &mocks.MockUserStore{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/"+primitive.NewObjectID().Hex(), nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		message, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "User not found", message)
	})

	t.Run("malformed_select_is_400_even_with_malformed_id", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-hex-id?select={not-json", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		message, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "Invalid query parameters", message)
		assert.Empty(t, users.GetByIDCalls)
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	userID := primitive.NewObjectID()

	existingUser := func(pending []string) *domain.User {
		return &domain.User{
			ID:           userID,
			Name:         "Ann",
			Email:        "ann@example.com",
			PendingTasks: pending,
		}
	}

	t.Run("pending_tasks_replacement_reconciles_task_side", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		users.GetByIDFn = func(ctx context.Context, id primitive.ObjectID, sel store.FieldSelection) (*domain.User, error) {
			return existingUser([]string{"t1", "t2"}), nil
		}
		tasks := &mocks.MockTaskStore{}
		router := newUserRouter(tasks, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/users/"+userID.Hex(), taskBody(t, map[string]any{
			"name":         "Ann",
			"email":        "ann@example.com",
			"pendingTasks": []string{"t2", "t3"},
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		message, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "User updated successfully", message)

		// T1 unassigned, T3 assigned to Ann, T2 untouched.
		require.Len(t, tasks.UnassignManyCalls, 1)
		assert.Equal(t, []string{"t1"}, tasks.UnassignManyCalls[0])
		require.Len(t, tasks.AssignManyCalls, 1)
		assert.Equal(t, mocks.AssignManyCall{
			IDs:      []string{"t3"},
			UserID:   userID.Hex(),
			UserName: "Ann",
		}, tasks.AssignManyCalls[0])
	})

	t.Run("omitted_pending_tasks_clears_the_set", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		users.GetByIDFn = func(ctx context.Context, id primitive.ObjectID, sel store.FieldSelection) (*domain.User, error) {
			return existingUser([]string{"t1"}), nil
		}
		tasks := &mocks.MockTaskStore{}
		router := newUserRouter(tasks, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/users/"+userID.Hex(), taskBody(t, map[string]any{
			"name":  "Ann",
			"email": "ann@example.com",
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, users.UpdateCalls, 1)
		assert.Empty(t, users.UpdateCalls[0].PendingTasks)
		require.Len(t, tasks.UnassignManyCalls, 1)
		assert.Equal(t, []string{"t1"}, tasks.UnassignManyCalls[0])
	})

	t.Run("duplicate_email_is_400", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		users.GetByIDFn = func(ctx context.Context, id primitive.ObjectID, sel store.FieldSelection) (*domain.User, error) {
			return existingUser(nil), nil
		}
		users.UpdateFn = func(ctx context.Context, user *domain.User) error {
			return store.ErrEmailExists
		}
		tasks := &mocks.MockTaskStore{}
		router := newUserRouter(tasks, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/users/"+userID.Hex(), taskBody(t, map[string]any{
			"name":  "Ann",
			"email": "taken@example.com",
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		message, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "User with this email already exists", message)
		// The primary write failed, so the task side must not be touched.
		assert.Empty(t, tasks.UnassignManyCalls)
		assert.Empty(t, tasks.AssignManyCalls)
	})

	t.Run("missing_user_is_404", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/users/"+userID.Hex(), taskBody(t, map[string]any{
			"name":  "Ann",
			"email": "ann@example.com",
		}))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, users.UpdateCalls)
	})
}

func TestUserHandler_DeleteUser(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("pending_tasks_unassigned_before_delete", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		users.GetByIDFn = func(ctx context.Context, id primitive.ObjectID, sel store.FieldSelection) (*domain.User, error) {
			return &domain.User{
				ID:           userID,
				Name:         "Ann",
				Email:        "ann@example.com",
				PendingTasks: []string{"t1", "t2"},
			}, nil
		}
		tasks := &mocks.MockTaskStore{}
		router := newUserRouter(tasks, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.Hex(), nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		message, data := decodeEnvelope(t, rec)
		assert.Equal(t, "User deleted successfully", message)
		assert.Equal(t, "null", string(data))

		require.Len(t, tasks.UnassignManyCalls, 1)
		assert.Equal(t, []string{"t1", "t2"}, tasks.UnassignManyCalls[0])
		require.Len(t, users.DeleteCalls, 1)
	})

	t.Run("bulk_unassign_failure_does_not_block_delete", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		users.GetByIDFn = func(ctx context.Context, id primitive.ObjectID, sel store.FieldSelection) (*domain.User, error) {
			return &domain.User{
				ID:           userID,
				Name:         "Ann",
				Email:        "ann@example.com",
				PendingTasks: []string{"t1"},
			}, nil
		}
		tasks := &mocks.MockTaskStore{}
		tasks.UnassignManyFn = func(ctx context.Context, ids []string) error {
			return store.NewStoreError("task", "unassign_many", "bulk update failed", context.DeadlineExceeded)
		}
		router := newUserRouter(tasks, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.Hex(), nil)
		router.ServeHTTP(rec, req)

		// Secondary-write failures are logged and swallowed.
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.Len(t, users.DeleteCalls, 1)
	})

	t.Run("missing_user_is_404", func(t *testing.T) {
		users := &mocks.MockUserStore{}
		router := newUserRouter(&mocks.MockTaskStore{}, users)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID.Hex(), nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, users.DeleteCalls)
	})
}
