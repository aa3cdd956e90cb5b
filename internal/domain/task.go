package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnassignedUserName is the display name stored on a task with no assignee.
// The matching AssignedUser value is the empty string.
const UnassignedUserName = "unassigned"

// Task represents a single unit of work. A task may be assigned to at most
// one user at a time; AssignedUser holds that user's id (hex string) or the
// empty string when unassigned. AssignedUserName is a denormalized display
// copy of the assignee's name and is not authoritative.
type Task struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	Description      string             `bson:"description" json:"description"`
	Deadline         time.Time          `bson:"deadline" json:"deadline"`
	Completed        bool               `bson:"completed" json:"completed"`
	AssignedUser     string             `bson:"assignedUser" json:"assignedUser"`
	AssignedUserName string             `bson:"assignedUserName" json:"assignedUserName"`
	DateCreated      time.Time          `bson:"dateCreated" json:"dateCreated"`
}

// NewTask creates a Task with the given fields, applying the documented
// defaults: empty description, completed false, unassigned sentinel values,
// and DateCreated set to the current time. The ID is assigned by the store
// on insert. Returns an error if validation fails.
func NewTask(name, description string, deadline time.Time) (*Task, error) {
	task := &Task{
		Name:             name,
		Description:      description,
		Deadline:         deadline,
		Completed:        false,
		AssignedUser:     "",
		AssignedUserName: UnassignedUserName,
		DateCreated:      time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any required field is missing.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	if t.Deadline.IsZero() {
		return ErrZeroDeadline
	}
	return nil
}

// Assigned reports whether the task currently points at a user.
func (t *Task) Assigned() bool {
	return t.AssignedUser != ""
}
