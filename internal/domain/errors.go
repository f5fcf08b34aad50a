package domain

import "errors"

var (
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidBank indicates loaded bank content failed validation.
	ErrInvalidBank = errors.New("invalid question bank")
	// ErrModuleNotFound is returned for module IDs outside the catalog.
	ErrModuleNotFound = errors.New("module not found")
	// ErrActivityNotFound is returned for activity IDs outside a module.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrSessionNotFound is returned when a user acts on a quiz they have not started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSnapshotInvalid marks a persisted session snapshot that cannot be restored.
	ErrSnapshotInvalid = errors.New("session snapshot invalid")
)
