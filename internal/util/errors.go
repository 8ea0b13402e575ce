package util

import "errors"

// Engine error taxonomy. Controllers translate these to HTTP statuses;
// services never touch the response writer.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("permission denied")
	ErrConflict         = errors.New("already completed")
	ErrExpired          = errors.New("exam deadline has passed")
	ErrNotAssigned      = errors.New("exam not assigned to student")
	ErrNotEligible      = errors.New("score below passing threshold")
	ErrAlreadyRequested = errors.New("revision already requested")
	ErrValidation       = errors.New("validation failed")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrInvalidLogin     = errors.New("invalid credentials")
)
