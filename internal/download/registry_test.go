package download

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/aprit/internal/model"
)

func newTestRegistry(l Launcher) *Registry {
	return NewRegistry(RegistryOptions{
		Launcher: l,
		Defaults: model.SessionConfig{DestinationDir: "/tmp", Connections: model.DefaultConnections},
	})
}

func TestRegistry_CapacityScenario(t *testing.T) {
	r := newTestRegistry(&fakeLauncher{})

	// One default session exists at application start
	_, err := r.Add()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := r.Add()
		require.NoError(t, err)
	}
	assert.Equal(t, 4, r.Count())

	s, err := r.Add()
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, s)
	assert.Equal(t, 4, r.Count())
}

func TestRegistry_NewSessionsAreIdleWithDefaults(t *testing.T) {
	r := newTestRegistry(&fakeLauncher{})

	s, err := r.Add()
	require.NoError(t, err)

	assert.Equal(t, model.SessionIdle, s.State())
	assert.Equal(t, "/tmp", s.Config().DestinationDir)
	assert.Equal(t, model.DefaultConnections, s.Config().Connections)
	assert.Equal(t, "", s.Config().URL)
	assert.True(t, strings.HasPrefix(s.ID(), SessionIDPrefix))
}

func TestRegistry_LabelsAndOrder(t *testing.T) {
	r := newTestRegistry(&fakeLauncher{})

	a, _ := r.Add()
	b, _ := r.Add()
	c, _ := r.Add()

	assert.Equal(t, "Download 1", a.Label())
	assert.Equal(t, "Download 2", b.Label())
	assert.Equal(t, "Download 3", c.Label())
	assert.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, r.Remove(b.ID()))
	assert.Equal(t, []*Session{a, c}, r.Sessions())

	// Label follows the count at creation time
	d, _ := r.Add()
	assert.Equal(t, "Download 3", d.Label())
	assert.Equal(t, []*Session{a, c, d}, r.Sessions())
}

func TestRegistry_RemoveBusyRejected(t *testing.T) {
	l := &fakeLauncher{}
	r := newTestRegistry(l)

	s, _ := r.Add()
	other, _ := r.Add()
	s.Configure("http://x/file", "/tmp", 16)
	require.NoError(t, s.Start())

	err := r.Remove(s.ID())
	assert.ErrorIs(t, err, ErrSessionBusy)
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []*Session{s, other}, r.Sessions())
	assert.Equal(t, model.SessionRunning, s.State())

	s.Stop()
	require.NoError(t, r.Remove(s.ID()))
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_RemoveIdle(t *testing.T) {
	r := newTestRegistry(&fakeLauncher{})
	s, _ := r.Add()

	require.NoError(t, r.Remove(s.ID()))
	assert.Equal(t, 0, r.Count())

	_, ok := r.Get(s.ID())
	assert.False(t, ok)
}

func TestRegistry_RemoveUnknown(t *testing.T) {
	r := newTestRegistry(&fakeLauncher{})
	_, _ = r.Add()

	assert.ErrorIs(t, r.Remove("session-missing"), ErrSessionNotFound)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_AnyBusyAndStopBusy(t *testing.T) {
	l := &fakeLauncher{}
	r := newTestRegistry(l)

	a, _ := r.Add()
	b, _ := r.Add()
	c, _ := r.Add()
	assert.False(t, r.AnyBusy())

	a.Configure("http://x/a", "/tmp", 16)
	c.Configure("http://x/c", "/tmp", 16)
	require.NoError(t, a.Start())
	require.NoError(t, c.Start())
	assert.True(t, r.AnyBusy())

	r.StopBusy()

	assert.False(t, r.AnyBusy())
	for _, s := range []*Session{a, b, c} {
		assert.Equal(t, model.SessionIdle, s.State(), s.Label())
	}
	assert.Equal(t, 2, l.callCount())
	for _, p := range l.processes {
		assert.True(t, p.killed.Load())
	}
}

func TestRegistry_StopBusyWaitsForStopInProgress(t *testing.T) {
	gate := make(chan struct{})
	l := &fakeLauncher{killGate: gate}
	r := newTestRegistry(l)

	s, _ := r.Add()
	s.Configure("http://x/a", "/tmp", 16)
	require.NoError(t, s.Start())

	// A Stop from the tab is still killing the helper
	go s.Stop()
	require.Eventually(t, func() bool {
		return s.State() == model.SessionStopping
	}, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		r.StopBusy()
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("StopBusy returned while the helper was alive, state=%s", s.State())
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("StopBusy did not return after the helper exited")
	}
	assert.False(t, r.AnyBusy())
	assert.Equal(t, model.SessionIdle, s.State())
}

func TestRegistry_ForwardsEvents(t *testing.T) {
	r := newTestRegistry(&fakeLauncher{})
	rec := &eventRecorder{}
	r.SetUpdateCallback(rec.record)

	s, _ := r.Add()
	s.Configure("http://x/file", "/tmp", 16)
	require.NoError(t, s.Start())
	s.Stop()

	events := rec.all()
	require.Len(t, events, 3)
	assert.True(t, strings.HasSuffix(events[0], "Idle -> Running"))
	assert.True(t, strings.HasSuffix(events[2], "Stopping -> Idle"))
}

func TestRegistry_SetDefaults(t *testing.T) {
	r := newTestRegistry(&fakeLauncher{})
	r.SetDefaults(model.SessionConfig{DestinationDir: "/srv/dl", Connections: 40})

	s, _ := r.Add()
	assert.Equal(t, "/srv/dl", s.Config().DestinationDir)
	assert.Equal(t, model.MaxConnections, s.Config().Connections)
}

func TestGenerateSessionID(t *testing.T) {
	id1 := generateSessionID()
	id2 := generateSessionID()

	assert.NotEqual(t, id1, id2)
	assert.True(t, strings.HasPrefix(id1, SessionIDPrefix))
	assert.Len(t, id1, len(SessionIDPrefix)+36)
}
