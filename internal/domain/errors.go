package domain

import "errors"

// Common validation errors returned by entity constructors and Validate methods.
var (
	// ErrEmptyTaskName is returned when a task has no name.
	ErrEmptyTaskName = errors.New("task name cannot be empty")

	// ErrZeroDeadline is returned when a task has no deadline set.
	ErrZeroDeadline = errors.New("task deadline cannot be empty")

	// ErrEmptyUserName is returned when a user has no name.
	ErrEmptyUserName = errors.New("user name cannot be empty")

	// ErrEmptyEmail is returned when a user has no email address.
	ErrEmptyEmail = errors.New("user email cannot be empty")
)
