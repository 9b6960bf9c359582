package worker

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ErrNotRunning is returned by operations that need a live process
var ErrNotRunning = errors.New("helper process is not running")

// Usage is a resource sample of the helper process
type Usage struct {
	CPUPercent float64
	RSSBytes   uint64
}

// Handle wraps one launched helper process
type Handle struct {
	cmd       *exec.Cmd
	pid       int
	startedAt time.Time
	output    *tailWriter

	done     chan struct{}
	waitErr  error
	exitCode int
}

func newHandle(cmd *exec.Cmd, output *tailWriter) *Handle {
	return &Handle{
		cmd:       cmd,
		pid:       cmd.Process.Pid,
		startedAt: time.Now(),
		output:    output,
		done:      make(chan struct{}),
		exitCode:  -1,
	}
}

// wait reaps the process and closes done. Runs in its own goroutine.
func (h *Handle) wait() {
	err := h.cmd.Wait()
	if h.cmd.ProcessState != nil {
		h.exitCode = h.cmd.ProcessState.ExitCode()
	}
	h.waitErr = err
	close(h.done)
}

// PID returns the OS process id
func (h *Handle) PID() int {
	return h.pid
}

// StartedAt returns when the process was launched
func (h *Handle) StartedAt() time.Time {
	return h.startedAt
}

// Running reports whether the process has not exited yet
func (h *Handle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Done is closed once the process has exited and been reaped
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Kill requests forced termination. Killing an exited process is not an error.
func (h *Handle) Kill() error {
	if !h.Running() {
		return nil
	}
	if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to kill helper %d: %w", h.pid, err)
	}
	return nil
}

// Wait blocks until the process has exited and returns the wait error
func (h *Handle) Wait() error {
	<-h.done
	return h.waitErr
}

// ExitCode returns the exit code, or -1 while running or when killed by a signal
func (h *Handle) ExitCode() int {
	select {
	case <-h.done:
		return h.exitCode
	default:
		return -1
	}
}

// LastOutput returns the last non-empty line the helper printed
func (h *Handle) LastOutput() string {
	return h.output.Last()
}

// Usage samples CPU and resident memory of the helper process
func (h *Handle) Usage() (Usage, error) {
	if !h.Running() {
		return Usage{}, ErrNotRunning
	}

	p, err := process.NewProcess(int32(h.pid))
	if err != nil {
		return Usage{}, fmt.Errorf("failed to inspect helper %d: %w", h.pid, err)
	}

	cpu, err := p.CPUPercent()
	if err != nil {
		return Usage{}, fmt.Errorf("failed to read cpu of helper %d: %w", h.pid, err)
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return Usage{}, fmt.Errorf("failed to read memory of helper %d: %w", h.pid, err)
	}

	return Usage{CPUPercent: cpu, RSSBytes: mem.RSS}, nil
}
