package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskly/taskly-api/internal/api/shared"
	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/service/assignment"
	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRequest represents the request body for creating or updating a user.
// On update, PendingTasks replaces the stored set wholesale.
type UserRequest struct {
	Name         string   `json:"name"         validate:"required"`
	Email        string   `json:"email"        validate:"required"`
	PendingTasks []string `json:"pendingTasks"`
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	users  store.UserStore
	sync   *assignment.Synchronizer
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
// If logger is nil, the default logger is used.
func NewUserHandler(users store.UserStore, sync *assignment.Synchronizer, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		sync:   sync,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /api/users requests with the same generic query
// surface as tasks but no default limit, plus count=true.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q, countOnly, err := parseListQuery(r)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving users")
		return
	}

	if countOnly {
		count, err := h.users.Count(r.Context(), q.Filter)
		if err != nil {
			respondWithMappedError(w, r, err, "Error counting users")
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, "OK", count)
		return
	}

	users, err := h.users.List(r.Context(), q)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving users")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, "OK", users)
}

// CreateUser handles POST /api/users requests. Name and email are required;
// email uniqueness is enforced by the store and surfaced as a 400 with a
// distinct message. An initial pendingTasks list is accepted as-is, without
// reconciling the referenced tasks' assignedUser field.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and email are required")
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.PendingTasks)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and email are required")
		return
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		respondWithMappedError(w, r, err, "Error creating user")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, "User created successfully", user)
}

// GetUser handles GET /api/users/{id} requests, supporting the select
// parameter on the single record. Query parameters are validated before the
// id, so a malformed select reports 400 even alongside an unusable id.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	sel, err := parseFieldSelection(r)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving user")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.users.GetByID(r.Context(), id, sel)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving user")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, "OK", user)
}

// UpdateUser handles PUT /api/users/{id} requests. The pendingTasks set is
// replaced wholesale; the prior set is captured before the write so the
// synchronizer can reconcile the task side afterwards (removed tasks are
// unassigned, added tasks are pointed at this user, the intersection is
// untouched).
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}

	var req UserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and email are required")
		return
	}

	existing, err := h.users.GetByID(r.Context(), id, nil)
	if err != nil {
		respondWithMappedError(w, r, err, "Error finding user")
		return
	}

	oldPendingTasks := existing.PendingTasks

	user := &domain.User{
		ID:           existing.ID,
		Name:         req.Name,
		Email:        req.Email,
		PendingTasks: req.PendingTasks,
	}
	if user.PendingTasks == nil {
		user.PendingTasks = []string{}
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		respondWithMappedError(w, r, err, "Error updating user")
		return
	}

	h.sync.PendingTasksReplaced(r.Context(), oldPendingTasks, user.PendingTasks, user.ID.Hex(), user.Name)

	shared.RespondWithData(w, r, http.StatusOK, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/users/{id} requests. Every task in the
// user's pendingTasks is reset to the unassigned sentinel before the user
// record is removed; there is no read-repair to catch dangling assignees
// afterwards.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.users.GetByID(r.Context(), id, nil)
	if err != nil {
		respondWithMappedError(w, r, err, "Error finding user")
		return
	}

	h.sync.UserDeleted(r.Context(), user.PendingTasks)

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err, "Error deleting user")
		return
	}

	shared.RespondWithData(w, r, http.StatusNoContent, "User deleted successfully", nil)
}
