package usecase

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflicting state")
	ErrResultsRecorded = errors.New("shooter has recorded results")
)
