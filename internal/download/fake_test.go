package download

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ytget/aprit/internal/model"
)

// fakeProcess is an in-memory helper process
type fakeProcess struct {
	pid      int
	done     chan struct{}
	once     sync.Once
	killed   atomic.Bool
	exitCode atomic.Int64
	// killGate, when set, holds Kill until it is closed
	killGate chan struct{}
}

func newFakeProcess(pid int) *fakeProcess {
	p := &fakeProcess{pid: pid, done: make(chan struct{})}
	p.exitCode.Store(-1)
	return p
}

func (p *fakeProcess) PID() int              { return p.pid }
func (p *fakeProcess) Done() <-chan struct{} { return p.done }
func (p *fakeProcess) Wait() error           { <-p.done; return nil }
func (p *fakeProcess) ExitCode() int         { return int(p.exitCode.Load()) }

func (p *fakeProcess) Kill() error {
	p.killed.Store(true)
	if p.killGate != nil {
		<-p.killGate
	}
	p.exit(-1)
	return nil
}

// exit simulates the helper terminating with code
func (p *fakeProcess) exit(code int) {
	p.once.Do(func() {
		p.exitCode.Store(int64(code))
		close(p.done)
	})
}

// fakeLauncher records launches and hands out fake processes
type fakeLauncher struct {
	mu        sync.Mutex
	err       error
	killGate  chan struct{}
	delay     time.Duration
	calls     [][]string
	processes []*fakeProcess
}

func (l *fakeLauncher) Launch(args []string) (Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, args)
	time.Sleep(l.delay)
	if l.err != nil {
		return nil, l.err
	}
	p := newFakeProcess(1000 + len(l.processes))
	p.killGate = l.killGate
	l.processes = append(l.processes, p)
	return p, nil
}

func (l *fakeLauncher) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func (l *fakeLauncher) last() *fakeProcess {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.processes) == 0 {
		return nil
	}
	return l.processes[len(l.processes)-1]
}

var errNoSuchHelper = errors.New("exec: \"aria2c\": executable file not found in $PATH")

// eventRecorder collects events from an update callback
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) record(ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev.String())
}

func (r *eventRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}
