package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskly/taskly-api/internal/api/shared"
	"github.com/taskly/taskly-api/internal/domain"
	"github.com/taskly/taskly-api/internal/service/assignment"
	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// defaultTaskListLimit caps task list responses when the client does not
// supply a limit. Count mode ignores it.
const defaultTaskListLimit = 100

// TaskRequest represents the request body for creating or updating a task.
// Completed is a pointer so an update can distinguish "not sent" (keep the
// stored value) from an explicit false.
type TaskRequest struct {
	Name             string     `json:"name"             validate:"required"`
	Description      string     `json:"description"`
	Deadline         *time.Time `json:"deadline"         validate:"required"`
	Completed        *bool      `json:"completed"`
	AssignedUser     string     `json:"assignedUser"`
	AssignedUserName string     `json:"assignedUserName"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks  store.TaskStore
	sync   *assignment.Synchronizer
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, the default logger is used.
func NewTaskHandler(tasks store.TaskStore, sync *assignment.Synchronizer, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		sync:   sync,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks requests. It supports the generic
// where/sort/select/skip/limit query surface with a default limit of 100,
// and count=true, which returns the number of matching tasks instead of the
// records (honoring where, ignoring skip/limit/select).
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q, countOnly, err := parseListQuery(r)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving tasks")
		return
	}

	if countOnly {
		count, err := h.tasks.Count(r.Context(), q.Filter)
		if err != nil {
			respondWithMappedError(w, r, err, "Error counting tasks")
			return
		}
		shared.RespondWithData(w, r, http.StatusOK, "OK", count)
		return
	}

	if !q.HasLimit {
		q.Limit = defaultTaskListLimit
		q.HasLimit = true
	}

	tasks, err := h.tasks.List(r.Context(), q)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving tasks")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, "OK", tasks)
}

// CreateTask handles POST /api/tasks requests. Name and deadline are
// required; everything else takes the documented defaults. When the request
// pre-assigns the task, the assignee's pendingTasks is updated through the
// synchronizer's add-only path after the task record is committed.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and deadline are required")
		return
	}

	task, err := domain.NewTask(req.Name, req.Description, *req.Deadline)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and deadline are required")
		return
	}
	applyAssignment(task, &req)
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := h.tasks.Create(r.Context(), task); err != nil {
		respondWithMappedError(w, r, err, "Error creating task")
		return
	}

	if task.Assigned() {
		h.sync.TaskAssigned(r.Context(), task.AssignedUser, task.ID.Hex())
	}

	shared.RespondWithData(w, r, http.StatusCreated, "Task created successfully", task)
}

// GetTask handles GET /api/tasks/{id} requests, supporting the select
// parameter on the single record. Query parameters are validated before the
// id, so a malformed select reports 400 even alongside an unusable id.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	sel, err := parseFieldSelection(r)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving task")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id, sel)
	if err != nil {
		respondWithMappedError(w, r, err, "Error retrieving task")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, "OK", task)
}

// UpdateTask handles PUT /api/tasks/{id} requests. The stored record is
// replaced wholesale (dateCreated is preserved). The prior assignedUser is
// captured before the write so the synchronizer can reconcile both users'
// pendingTasks afterwards; a reassignment to the same user performs no
// secondary write.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Name and deadline are required")
		return
	}

	existing, err := h.tasks.GetByID(r.Context(), id, nil)
	if err != nil {
		respondWithMappedError(w, r, err, "Error finding task")
		return
	}

	oldAssignedUser := existing.AssignedUser
	task := updatedTask(&req, existing)

	if err := h.tasks.Update(r.Context(), task); err != nil {
		respondWithMappedError(w, r, err, "Error updating task")
		return
	}

	h.sync.TaskAssignmentChanged(r.Context(), oldAssignedUser, task.AssignedUser, task.ID.Hex())

	shared.RespondWithData(w, r, http.StatusOK, "Task updated successfully", task)
}

// DeleteTask handles DELETE /api/tasks/{id} requests. If the task is
// assigned, it is removed from the assignee's pendingTasks before the
// record is deleted.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id, nil)
	if err != nil {
		respondWithMappedError(w, r, err, "Error finding task")
		return
	}

	if task.Assigned() {
		h.sync.TaskDeleted(r.Context(), task.AssignedUser, task.ID.Hex())
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err, "Error deleting task")
		return
	}

	shared.RespondWithData(w, r, http.StatusNoContent, "Task deleted successfully", nil)
}

// applyAssignment copies the request's assignment fields onto the task. The
// client-supplied assignedUserName is trusted as-is, defaulting to the
// unassigned sentinel.
func applyAssignment(task *domain.Task, req *TaskRequest) {
	task.AssignedUser = req.AssignedUser
	if req.AssignedUserName != "" {
		task.AssignedUserName = req.AssignedUserName
	} else {
		task.AssignedUserName = domain.UnassignedUserName
	}
}

// updatedTask builds the replacement record written by an update: the id and
// dateCreated carry over from the stored record, and an omitted completed
// keeps the stored value.
func updatedTask(req *TaskRequest, existing *domain.Task) *domain.Task {
	task := &domain.Task{
		ID:          existing.ID,
		Name:        req.Name,
		Description: req.Description,
		Deadline:    *req.Deadline,
		Completed:   existing.Completed,
		DateCreated: existing.DateCreated,
	}
	applyAssignment(task, req)
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	return task
}
