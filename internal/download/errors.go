package download

import "errors"

// Session errors
var (
	ErrEmptyURL         = errors.New("download URL is empty")
	ErrInvalidURL       = errors.New("download URL is not a supported transfer URL")
	ErrEmptyDestination = errors.New("destination directory is empty")
	ErrAlreadyRunning   = errors.New("session is already running")
	ErrSpawnFailed      = errors.New("failed to launch download helper")
)

// Registry errors
var (
	ErrCapacityExceeded = errors.New("session limit reached")
	ErrSessionBusy      = errors.New("session is busy")
	ErrSessionNotFound  = errors.New("session not found")
)
