package assignment

import "errors"

var (
	// ErrAlreadyAssigned is returned when the user already holds the role.
	ErrAlreadyAssigned = errors.New("user already has this role")
	// ErrAssignmentNotFound is returned when no assignment matched.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrUserIDEmpty is returned when an assignment names no user.
	ErrUserIDEmpty = errors.New("user id can not be empty")
)
