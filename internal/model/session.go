package model

import (
	"fmt"
	"time"
)

// Connection count bounds passed to the helper as --split and
// --max-connection-per-server.
const (
	MinConnections     = 1
	MaxConnections     = 16
	DefaultConnections = 16
)

// MaxSessions is the fixed capacity of the session registry
const MaxSessions = 4

// ClampConnections limits n to [MinConnections, MaxConnections]
func ClampConnections(n int) int {
	if n < MinConnections {
		return MinConnections
	}
	if n > MaxConnections {
		return MaxConnections
	}
	return n
}

// SessionConfig holds the user-editable fields of a session
type SessionConfig struct {
	URL            string
	DestinationDir string
	Connections    int
}

// SessionSnapshot is a point-in-time copy of a session for display
type SessionSnapshot struct {
	ID        string
	Label     string
	Config    SessionConfig
	State     SessionState
	PID       int       // 0 when no worker is attached
	StartedAt time.Time // zero when idle
}

// Event is emitted by a session on every state transition
type Event struct {
	SessionID   string
	Seq         uint64 // increases with every transition of the same session
	From        SessionState
	To          SessionState
	PID         int
	ExitCode    int  // worker exit code on a transition to Idle, -1 if unknown
	Spontaneous bool // the worker exited without a Stop request
	At          time.Time
}

// String returns a compact description used in logs and tests
func (e Event) String() string {
	return fmt.Sprintf("%s: %s -> %s", e.SessionID, e.From, e.To)
}
