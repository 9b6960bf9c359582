package model

// SessionState represents the lifecycle state of a download session
type SessionState string

const (
	// SessionIdle means no worker process is attached to the session
	SessionIdle SessionState = "Idle"

	// SessionRunning means the worker process is alive
	SessionRunning SessionState = "Running"

	// SessionStopping means a forced stop was requested and the worker has not exited yet
	SessionStopping SessionState = "Stopping"
)

// String returns the string representation of SessionState
func (s SessionState) String() string {
	return string(s)
}

// IsBusy returns true while a worker process is attached (running or stopping)
func (s SessionState) IsBusy() bool {
	return s == SessionRunning || s == SessionStopping
}

// IsIdle returns true if the session can be started or removed
func (s SessionState) IsIdle() bool {
	return s == SessionIdle
}
