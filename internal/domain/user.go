package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user who can be assigned tasks.
//
// PendingTasks holds the ids (hex strings) of tasks currently assigned to
// the user. It is stored as an ordered sequence but treated as a set: ids
// are never duplicated. The field is a derived index over Task.AssignedUser,
// which remains the authoritative side of the relationship, and may drift
// if a synchronization write fails.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PendingTasks []string           `bson:"pendingTasks" json:"pendingTasks"`
}

// NewUser creates a User with the given name, email and optional initial
// pendingTasks list. A nil list is normalized to an empty slice so the
// stored document always carries the field. Returns an error if validation
// fails.
//
// NOTE: the initial pendingTasks list is accepted as-is and is not
// reconciled against the referenced tasks' assignedUser field. See the
// user creation notes in DESIGN.md.
func NewUser(name, email string, pendingTasks []string) (*User, error) {
	if pendingTasks == nil {
		pendingTasks = []string{}
	}

	user := &User{
		Name:         name,
		Email:        email,
		PendingTasks: pendingTasks,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any required field is missing.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	return nil
}
