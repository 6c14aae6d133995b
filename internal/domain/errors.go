package domain

import "errors"

var (
	// ErrTaskNotFound covers both a missing task and a task owned by
	// someone else. The two cases are indistinguishable to the caller.
	ErrTaskNotFound = errors.New("task not found")

	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when the normalized email already exists.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so login failures don't leak which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
