package download

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/aprit/internal/logging"
	"github.com/ytget/aprit/internal/model"
)

// Registry constants
const (
	SessionIDPrefix    = "session-"
	SessionLabelFormat = "Download %d"
)

// RegistryOptions configures sessions created by a Registry
type RegistryOptions struct {
	Launcher  Launcher
	Defaults  model.SessionConfig
	ExtraArgs []string
	// Capacity defaults to model.MaxSessions
	Capacity int
}

// Registry holds up to Capacity sessions in creation order
type Registry struct {
	mu        sync.RWMutex
	sessions  []*Session
	capacity  int
	launcher  Launcher
	defaults  model.SessionConfig
	extraArgs []string
	log       zerolog.Logger

	cbMu     sync.RWMutex
	onUpdate func(model.Event)
}

// NewRegistry creates an empty registry
func NewRegistry(opts RegistryOptions) *Registry {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = model.MaxSessions
	}
	opts.Defaults.Connections = model.ClampConnections(opts.Defaults.Connections)

	return &Registry{
		capacity:  capacity,
		launcher:  opts.Launcher,
		defaults:  opts.Defaults,
		extraArgs: opts.ExtraArgs,
		log:       logging.Get("registry"),
	}
}

// SetUpdateCallback sets the callback receiving events from every session
func (r *Registry) SetUpdateCallback(callback func(model.Event)) {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	r.onUpdate = callback
}

// SetDefaults changes the configuration given to sessions added later
func (r *Registry) SetDefaults(defaults model.SessionConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defaults.Connections = model.ClampConnections(defaults.Connections)
	r.defaults = defaults
}

// Capacity returns the maximum number of sessions
func (r *Registry) Capacity() int {
	return r.capacity
}

// Add creates a new idle session and appends it
func (r *Registry) Add() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.capacity {
		return nil, fmt.Errorf("%w: at most %d sessions", ErrCapacityExceeded, r.capacity)
	}

	label := fmt.Sprintf(SessionLabelFormat, len(r.sessions)+1)
	s := NewSession(generateSessionID(), label, r.defaults, r.launcher, r.extraArgs...)
	s.SetUpdateCallback(r.notifyUpdate)
	r.sessions = append(r.sessions, s)

	r.log.Debug().Str("session", s.ID()).Str("label", label).Int("count", len(r.sessions)).Msg("session added")
	return s, nil
}

// Remove deletes an idle session, keeping the order of the others
func (r *Registry) Remove(id string) error {
	s, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	// Checked outside r.mu: IsBusy may emit an event whose callback reads the registry.
	if s.IsBusy() {
		return fmt.Errorf("%w: %s", ErrSessionBusy, s.Label())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	r.sessions = append(r.sessions[:idx], r.sessions[idx+1:]...)
	r.log.Debug().Str("session", id).Int("count", len(r.sessions)).Msg("session removed")
	return nil
}

// Get returns a session by ID
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, false
	}
	return r.sessions[idx], true
}

// Sessions returns the sessions in creation order
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*Session, len(r.sessions))
	copy(sessions, r.sessions)
	return sessions
}

// Count returns the number of sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// AnyBusy returns true if any session has a live helper
func (r *Registry) AnyBusy() bool {
	for _, s := range r.Sessions() {
		if s.IsBusy() {
			return true
		}
	}
	return false
}

// StopBusy stops every busy session, one after another.
// Each Stop blocks until its helper has exited.
func (r *Registry) StopBusy() {
	for _, s := range r.Sessions() {
		if s.IsBusy() {
			r.log.Info().Str("session", s.ID()).Msg("stopping session")
			s.Stop()
		}
	}
}

func (r *Registry) indexLocked(id string) int {
	for i, s := range r.sessions {
		if s.ID() == id {
			return i
		}
	}
	return -1
}

// notifyUpdate forwards a session event to the registry callback
func (r *Registry) notifyUpdate(ev model.Event) {
	r.cbMu.RLock()
	callback := r.onUpdate
	r.cbMu.RUnlock()

	if callback != nil {
		callback(ev)
	}
}

// generateSessionID generates a time-ordered unique session ID
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(SessionIDPrefix+"%d", time.Now().UnixNano())
	}
	return SessionIDPrefix + id.String()
}
