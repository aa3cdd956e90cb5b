// Package assignment maintains the denormalized two-way reference between
// Task.assignedUser and User.pendingTasks.
//
// Task.assignedUser is the authoritative pointer; User.pendingTasks is a
// derived, advisory index. The two live in separate documents with no
// multi-document transaction, so synchronization is best-effort: every
// method here runs after the primary write has already committed, attempts
// the secondary writes, and reports their outcome in a Result. Secondary
// failures are logged and swallowed, never escalated to the caller, and the
// primary write is never rolled back. The index may therefore drift if a
// secondary write fails; there is no read-repair.
package assignment

import (
	"context"
	"log/slog"

	"github.com/taskly/taskly-api/internal/store"
)

// Result describes the outcome of the secondary (synchronization) writes
// triggered by one primary write. It is surfaced to logs only, never to the
// HTTP caller.
type Result struct {
	Attempted int // secondary writes attempted
	Skipped   int // writes skipped because the referenced record is gone
	Failed    int // writes that failed for any other reason
}

// Synchronizer applies the minimal set of secondary updates needed to keep
// both sides of the task/user assignment relationship consistent after a
// single-entity write.
type Synchronizer struct {
	tasks  store.TaskStore
	users  store.UserStore
	logger *slog.Logger
}

// NewSynchronizer creates a Synchronizer over the given stores.
// If logger is nil, the default logger is used.
func NewSynchronizer(tasks store.TaskStore, users store.UserStore, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		tasks:  tasks,
		users:  users,
		logger: logger.With(slog.String("component", "assignment_sync")),
	}
}

// TaskAssigned records a freshly created task on its assignee's
// pendingTasks. This is the add-only path used after task creation; there
// is no previous assignee to clean up. A missing user is skipped silently:
// the task's assignedUser pointer is accepted as-is even if dangling.
func (s *Synchronizer) TaskAssigned(ctx context.Context, userID, taskID string) Result {
	var res Result
	if userID == "" {
		return res
	}
	s.addPending(ctx, userID, taskID, &res)
	return res
}

// TaskAssignmentChanged reconciles both users' pendingTasks after a task's
// assignee changed from oldUserID to newUserID. Either side may be the
// empty unassigned sentinel. When the assignee did not change, no secondary
// write is performed at all.
func (s *Synchronizer) TaskAssignmentChanged(ctx context.Context, oldUserID, newUserID, taskID string) Result {
	var res Result
	if oldUserID == newUserID {
		return res
	}
	if oldUserID != "" {
		s.removePending(ctx, oldUserID, taskID, &res)
	}
	if newUserID != "" {
		s.addPending(ctx, newUserID, taskID, &res)
	}
	return res
}

// TaskDeleted removes a deleted task from its assignee's pendingTasks.
// No-op when the task was unassigned or the user is missing.
func (s *Synchronizer) TaskDeleted(ctx context.Context, userID, taskID string) Result {
	var res Result
	if userID == "" {
		return res
	}
	s.removePending(ctx, userID, taskID, &res)
	return res
}

// PendingTasksReplaced reconciles the task side after a user's pendingTasks
// set was replaced wholesale. Tasks dropped from the set are reset to the
// unassigned sentinel; tasks added to it are pointed at the user, including
// the denormalized display name. Tasks present in both sets are left
// untouched to avoid redundant writes.
func (s *Synchronizer) PendingTasksReplaced(
	ctx context.Context,
	oldTaskIDs, newTaskIDs []string,
	userID, userName string,
) Result {
	var res Result

	removed := difference(oldTaskIDs, newTaskIDs)
	added := difference(newTaskIDs, oldTaskIDs)

	if len(removed) > 0 {
		res.Attempted++
		if err := s.tasks.UnassignMany(ctx, removed); err != nil {
			res.Failed++
			s.logger.Error("failed to unassign removed pending tasks",
				"error", err,
				"user_id", userID,
				"task_ids", removed)
		}
	}

	if len(added) > 0 {
		res.Attempted++
		if err := s.tasks.AssignMany(ctx, added, userID, userName); err != nil {
			res.Failed++
			s.logger.Error("failed to assign added pending tasks",
				"error", err,
				"user_id", userID,
				"task_ids", added)
		}
	}

	return res
}

// UserDeleted resets every task in the deleted user's pendingTasks to the
// unassigned sentinel. It must be attempted before the user record is
// removed; there is no later read-repair to catch tasks pointing at a
// nonexistent user.
func (s *Synchronizer) UserDeleted(ctx context.Context, pendingTaskIDs []string) Result {
	var res Result
	if len(pendingTaskIDs) == 0 {
		return res
	}

	res.Attempted++
	if err := s.tasks.UnassignMany(ctx, pendingTaskIDs); err != nil {
		res.Failed++
		s.logger.Error("failed to unassign tasks of deleted user",
			"error", err,
			"task_ids", pendingTaskIDs)
	}
	return res
}

// addPending inserts taskID into the user's pendingTasks. The store insert
// is idempotent, so assigning the same task twice never duplicates the id.
func (s *Synchronizer) addPending(ctx context.Context, userID, taskID string, res *Result) {
	res.Attempted++
	err := s.users.AddPendingTask(ctx, userID, taskID)
	switch {
	case err == nil:
	case store.IsNotFoundError(err):
		res.Skipped++
		s.logger.Debug("skipping pending-task add, user missing",
			"user_id", userID,
			"task_id", taskID)
	default:
		res.Failed++
		s.logger.Error("failed to add task to user's pending tasks",
			"error", err,
			"user_id", userID,
			"task_id", taskID)
	}
}

func (s *Synchronizer) removePending(ctx context.Context, userID, taskID string, res *Result) {
	res.Attempted++
	err := s.users.RemovePendingTask(ctx, userID, taskID)
	switch {
	case err == nil:
	case store.IsNotFoundError(err):
		res.Skipped++
		s.logger.Debug("skipping pending-task remove, user missing",
			"user_id", userID,
			"task_id", taskID)
	default:
		res.Failed++
		s.logger.Error("failed to remove task from user's pending tasks",
			"error", err,
			"user_id", userID,
			"task_id", taskID)
	}
}

// difference returns the elements of a not present in b, preserving a's
// order and dropping duplicates.
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	var out []string
	for _, id := range a {
		if _, ok := inB[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
