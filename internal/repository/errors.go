// Package repository holds the error vocabulary shared by store implementations.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an entity with the same key already exists
	ErrConflict = errors.New("conflict: entity already exists")

	// ErrInvalidInput is returned when the store rejects a value
	ErrInvalidInput = errors.New("invalid input")
)
