package worker

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Defaults for the helper executable
const (
	DefaultHelper       = "aria2c"
	DefaultStartTimeout = 5 * time.Second

	// outputWaitDelay bounds Wait when a killed helper leaves its output pipe open
	outputWaitDelay = 2 * time.Second
)

// ErrStartTimeout is returned when the helper did not launch within the start timeout
var ErrStartTimeout = errors.New("helper did not start in time")

// Launcher starts helper processes
type Launcher struct {
	// Helper is the executable name or path, DefaultHelper if empty
	Helper string
	// Env is appended to the current environment of the helper
	Env []string
	// StartTimeout bounds the wait for the process to launch
	StartTimeout time.Duration
}

// NewLauncher creates a launcher for the given helper executable
func NewLauncher(helper string, startTimeout time.Duration) *Launcher {
	return &Launcher{Helper: helper, StartTimeout: startTimeout}
}

// Launch starts the helper with args and returns once the process is running.
// It never blocks longer than the start timeout.
func (l *Launcher) Launch(args []string) (*Handle, error) {
	helper := l.helper()
	cmd := exec.Command(helper, args...)
	if len(l.Env) > 0 {
		cmd.Env = append(os.Environ(), l.Env...)
	}

	tail := &tailWriter{}
	cmd.Stdout = tail
	cmd.Stderr = tail
	cmd.WaitDelay = outputWaitDelay

	started := make(chan error, 1)
	go func() {
		started <- cmd.Start()
	}()

	timeout := l.startTimeout()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-started:
		if err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", helper, err)
		}
	case <-timer.C:
		// Reap the process if it shows up late.
		go func() {
			if err := <-started; err == nil {
				_ = cmd.Process.Kill()
				_ = cmd.Wait()
			}
		}()
		return nil, fmt.Errorf("%w: %s after %s", ErrStartTimeout, helper, timeout)
	}

	h := newHandle(cmd, tail)
	go h.wait()
	return h, nil
}

func (l *Launcher) helper() string {
	if l.Helper == "" {
		return DefaultHelper
	}
	return l.Helper
}

func (l *Launcher) startTimeout() time.Duration {
	if l.StartTimeout <= 0 {
		return DefaultStartTimeout
	}
	return l.StartTimeout
}
