package domain

import "errors"

// Config errors - fatal at startup, before any filesystem mutation
var (
	// ErrInvalidConfig indicates an invalid or inconsistent configuration
	ErrInvalidConfig = errors.New("invalid config")

	// ErrConflictingInput indicates that both a directory list and an
	// external candidate source were given
	ErrConflictingInput = errors.New("conflicting input sources")

	// ErrActionRequired indicates a confirmation mode without an action
	ErrActionRequired = errors.New("confirmation mode requires a file action")
)

// Per-entity errors - recoverable, the run continues
var (
	// ErrFileChanged indicates a file was modified while it was being read
	ErrFileChanged = errors.New("file changed during processing")

	// ErrFileVanished indicates a file disappeared between discovery and use
	ErrFileVanished = errors.New("file vanished")

	// ErrInputClosed indicates the interactive input was closed mid-prompt
	ErrInputClosed = errors.New("interactive input closed")
)
