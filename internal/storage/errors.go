package storage

import "errors"

// Common storage errors shared by all implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateKey is returned when inserting an entity whose key exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned for nil or structurally invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
