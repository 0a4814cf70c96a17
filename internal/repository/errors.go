package repository

import "errors"

var (
	// ErrNotFound is returned (wrapped) when no workout has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID is returned when a workout id is already stored.
	ErrDuplicateID = errors.New("duplicate id")
)
