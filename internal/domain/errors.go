package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when the request is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden is returned when the caller's role may not perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// Authorization errors. Each carries a human-readable reason suitable for the client.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account blocked")
	ErrNotInstitution     = errors.New("not an authorized institution account")
)
