package download

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/aprit/internal/logging"
	"github.com/ytget/aprit/internal/model"
	"github.com/ytget/aprit/internal/worker"
)

// Supported transfer URL schemes
var SupportedSchemes = []string{"http", "https", "ftp", "sftp"}

// Session is one download slot. It owns at most one helper process at a time.
type Session struct {
	id        string
	label     string
	launcher  Launcher
	extraArgs []string
	log       zerolog.Logger

	mu        sync.Mutex
	cfg       model.SessionConfig
	state     model.SessionState
	proc      Process
	startedAt time.Time
	seq       uint64
	// stopped is closed when the Stop in progress has reaped the helper
	stopped   chan struct{}

	// lastOutput is kept from the previous helper once it is detached
	lastOutput string

	cbMu     sync.RWMutex
	onUpdate func(model.Event)
}

// NewSession creates an idle session
func NewSession(id, label string, cfg model.SessionConfig, launcher Launcher, extraArgs ...string) *Session {
	cfg.Connections = model.ClampConnections(cfg.Connections)
	return &Session{
		id:        id,
		label:     label,
		launcher:  launcher,
		extraArgs: extraArgs,
		log:       logging.Get("session").With().Str("session", id).Logger(),
		cfg:       cfg,
		state:     model.SessionIdle,
	}
}

// SetUpdateCallback sets the callback invoked on every state transition.
// The callback runs outside the session lock, possibly on a watcher goroutine.
func (s *Session) SetUpdateCallback(callback func(model.Event)) {
	s.cbMu.Lock()
	defer s.cbMu.Unlock()
	s.onUpdate = callback
}

// ID returns the session identity
func (s *Session) ID() string {
	return s.id
}

// Label returns the display label, e.g. "Download 2"
func (s *Session) Label() string {
	return s.label
}

// Configure stores the user input. It never fails; validation happens in Start.
func (s *Session) Configure(rawURL, destinationDir string, connections int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = model.SessionConfig{
		URL:            rawURL,
		DestinationDir: destinationDir,
		Connections:    model.ClampConnections(connections),
	}
}

// Config returns the current configuration
func (s *Session) Config() model.SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Start validates the configuration and launches the helper.
// The session lock is held while the helper launches, so a concurrent Start
// cannot spawn a second helper. State queries wait for the launch, which the
// launcher bounds by its start timeout.
func (s *Session) Start() error {
	s.mu.Lock()
	reconciled, hasReconciled := s.reconcileLocked()
	proc, ev, err := s.startLocked()
	cfg := s.cfg
	s.mu.Unlock()

	if hasReconciled {
		s.emit(reconciled)
	}
	if err != nil {
		return err
	}

	s.log.Info().Int("pid", proc.PID()).Str("url", strings.TrimSpace(cfg.URL)).
		Str("dir", cfg.DestinationDir).Int("connections", cfg.Connections).Msg("download started")
	s.emit(ev)

	go s.watch(proc)
	return nil
}

func (s *Session) startLocked() (Process, model.Event, error) {
	if !s.state.IsIdle() {
		return nil, model.Event{}, ErrAlreadyRunning
	}

	rawURL := strings.TrimSpace(s.cfg.URL)
	if rawURL == "" {
		return nil, model.Event{}, ErrEmptyURL
	}
	if err := ValidateURL(rawURL); err != nil {
		return nil, model.Event{}, err
	}

	dir := strings.TrimSpace(s.cfg.DestinationDir)
	if dir == "" {
		return nil, model.Event{}, ErrEmptyDestination
	}

	args := worker.BuildArgs(dir, s.cfg.Connections, rawURL, s.extraArgs...)
	proc, err := s.launcher.Launch(args)
	if err != nil {
		s.log.Error().Err(err).Strs("args", args).Msg("helper launch failed")
		return nil, model.Event{}, fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}

	s.proc = proc
	s.lastOutput = ""
	s.state = model.SessionRunning
	s.startedAt = time.Now()
	return proc, s.eventLocked(model.SessionIdle, model.SessionRunning, proc.PID(), -1, false), nil
}

// Stop force-kills the helper and blocks until it has exited.
// While another Stop is in progress it waits for that one to finish.
// It is a no-op when the session is idle.
func (s *Session) Stop() {
	s.mu.Lock()
	if ev, ok := s.reconcileLocked(); ok {
		s.mu.Unlock()
		s.emit(ev)
		return
	}
	if s.state == model.SessionStopping {
		// Another Stop owns the kill; wait for it to finish
		stopped := s.stopped
		s.mu.Unlock()
		<-stopped
		return
	}
	if s.state != model.SessionRunning {
		s.mu.Unlock()
		return
	}

	proc := s.proc
	stopped := make(chan struct{})
	s.stopped = stopped
	s.state = model.SessionStopping
	stopping := s.eventLocked(model.SessionRunning, model.SessionStopping, proc.PID(), -1, false)
	s.mu.Unlock()
	s.emit(stopping)

	if err := proc.Kill(); err != nil {
		s.log.Warn().Err(err).Int("pid", proc.PID()).Msg("kill failed")
	}
	_ = proc.Wait()

	s.mu.Lock()
	s.proc = nil
	s.lastOutput = outputOf(proc)
	s.state = model.SessionIdle
	s.startedAt = time.Time{}
	s.stopped = nil
	idle := s.eventLocked(model.SessionStopping, model.SessionIdle, proc.PID(), proc.ExitCode(), false)
	s.mu.Unlock()
	close(stopped)

	s.log.Info().Int("pid", proc.PID()).Msg("download stopped")
	s.emit(idle)
}

// State returns the current state. A Running session whose helper has already
// exited is moved to Idle here, before the watcher gets to it.
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	ev, ok := s.reconcileLocked()
	state := s.state
	s.mu.Unlock()

	if ok {
		s.emit(ev)
	}
	return state
}

// IsBusy returns true while a helper process is attached
func (s *Session) IsBusy() bool {
	return s.State().IsBusy()
}

// Snapshot returns a copy of the session for display
func (s *Session) Snapshot() model.SessionSnapshot {
	state := s.State()

	s.mu.Lock()
	defer s.mu.Unlock()
	snap := model.SessionSnapshot{
		ID:        s.id,
		Label:     s.label,
		Config:    s.cfg,
		State:     state,
		StartedAt: s.startedAt,
	}
	if s.proc != nil {
		snap.PID = s.proc.PID()
	}
	return snap
}

// Usage samples the helper's resource use when the process supports it
func (s *Session) Usage() (worker.Usage, error) {
	s.mu.Lock()
	proc := s.proc
	s.mu.Unlock()

	if proc == nil {
		return worker.Usage{}, worker.ErrNotRunning
	}
	if u, ok := proc.(interface{ Usage() (worker.Usage, error) }); ok {
		return u.Usage()
	}
	return worker.Usage{}, nil
}

// LastOutput returns the last output line of the current or previous helper
func (s *Session) LastOutput() string {
	s.mu.Lock()
	proc, last := s.proc, s.lastOutput
	s.mu.Unlock()

	if proc == nil {
		return last
	}
	return outputOf(proc)
}

func outputOf(proc Process) string {
	if o, ok := proc.(interface{ LastOutput() string }); ok {
		return o.LastOutput()
	}
	return ""
}

// watch waits for the helper to exit on its own
func (s *Session) watch(proc Process) {
	<-proc.Done()

	s.mu.Lock()
	ev, ok := s.exitedLocked(proc)
	s.mu.Unlock()

	if ok {
		s.emit(ev)
	}
}

// reconcileLocked applies a pending spontaneous exit
func (s *Session) reconcileLocked() (model.Event, bool) {
	if s.state != model.SessionRunning || s.proc == nil {
		return model.Event{}, false
	}
	select {
	case <-s.proc.Done():
		return s.exitedLocked(s.proc)
	default:
		return model.Event{}, false
	}
}

// exitedLocked moves Running to Idle if proc is still the attached process.
// Stop owns the transition while the session is Stopping.
func (s *Session) exitedLocked(proc Process) (model.Event, bool) {
	if s.proc != proc || s.state != model.SessionRunning {
		return model.Event{}, false
	}

	s.proc = nil
	s.lastOutput = outputOf(proc)
	s.state = model.SessionIdle
	s.startedAt = time.Time{}
	ev := s.eventLocked(model.SessionRunning, model.SessionIdle, proc.PID(), proc.ExitCode(), true)

	s.log.Info().Int("pid", proc.PID()).Int("exit_code", ev.ExitCode).Msg("helper exited")
	return ev, true
}

func (s *Session) eventLocked(from, to model.SessionState, pid, exitCode int, spontaneous bool) model.Event {
	s.seq++
	return model.Event{
		SessionID:   s.id,
		Seq:         s.seq,
		From:        from,
		To:          to,
		PID:         pid,
		ExitCode:    exitCode,
		Spontaneous: spontaneous,
		At:          time.Now(),
	}
}

// emit calls the update callback if set
func (s *Session) emit(ev model.Event) {
	s.cbMu.RLock()
	callback := s.onUpdate
	s.cbMu.RUnlock()

	if callback != nil {
		callback(ev)
	}
}

// ValidateURL checks that rawURL is an absolute URL with a supported transfer scheme
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}

	scheme := strings.ToLower(parsed.Scheme)
	for _, s := range SupportedSchemes {
		if scheme == s {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
}
