package download

import (
	"github.com/ytget/aprit/internal/model"
	"github.com/ytget/aprit/internal/worker"
)

// Process is the session's view of a running helper
type Process interface {
	PID() int
	Done() <-chan struct{}
	Kill() error
	Wait() error
	ExitCode() int
}

// Launcher starts a helper process with the given arguments
type Launcher interface {
	Launch(args []string) (Process, error)
}

// LauncherFunc adapts a function to Launcher
type LauncherFunc func(args []string) (Process, error)

// Launch calls f(args)
func (f LauncherFunc) Launch(args []string) (Process, error) {
	return f(args)
}

// ExecLauncher adapts a worker.Launcher so sessions spawn real helper processes
func ExecLauncher(l *worker.Launcher) Launcher {
	return LauncherFunc(func(args []string) (Process, error) {
		h, err := l.Launch(args)
		if err != nil {
			return nil, err
		}
		return h, nil
	})
}

// Supervisor is the registry surface used by the UI and the shutdown path
type Supervisor interface {
	SetUpdateCallback(func(model.Event))
	SetDefaults(model.SessionConfig)
	Capacity() int
	Add() (*Session, error)
	Remove(id string) error
	Get(id string) (*Session, bool)
	Sessions() []*Session
	Count() int
	AnyBusy() bool
	StopBusy()
}
