package worker_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ytget/aprit/internal/worker"
	"github.com/ytget/aprit/internal/worker/workertest"
)

func TestMain(m *testing.M) {
	workertest.MaybeRunHelper()
	os.Exit(m.Run())
}

func TestBuildArgs(t *testing.T) {
	args := worker.BuildArgs("/tmp", 16, "http://x/file")
	expected := []string{
		"--dir=/tmp",
		"--split=16",
		"--max-connection-per-server=16",
		"http://x/file",
	}

	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d: %v", len(expected), len(args), args)
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestBuildArgs_ExtraBeforeURL(t *testing.T) {
	args := worker.BuildArgs("/data", 4, "ftp://host/f.iso", "--continue=true")

	if args[len(args)-1] != "ftp://host/f.iso" {
		t.Errorf("Expected URL last, got %v", args)
	}
	if args[3] != "--continue=true" {
		t.Errorf("Expected extra arg before URL, got %v", args)
	}
	if args[1] != "--split=4" || args[2] != "--max-connection-per-server=4" {
		t.Errorf("Unexpected connection args: %v", args)
	}
}

func TestLaunch_MissingHelper(t *testing.T) {
	l := worker.NewLauncher("/nonexistent/aria2c-missing", time.Second)

	h, err := l.Launch([]string{"http://x/file"})
	if err == nil {
		t.Fatal("Expected error for missing helper, got nil")
	}
	if h != nil {
		t.Error("Expected nil handle on failure")
	}
	if !strings.Contains(err.Error(), "failed to start") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLaunch_SpontaneousExit(t *testing.T) {
	h, err := workertest.Launcher().Launch(worker.BuildArgs(t.TempDir(), 2, workertest.URLExit))
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	select {
	case <-h.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("Helper did not exit")
	}

	if h.Running() {
		t.Error("Expected handle to report not running after exit")
	}
	if h.ExitCode() != 0 {
		t.Errorf("Expected exit code 0, got %d", h.ExitCode())
	}
	if !strings.Contains(h.LastOutput(), "Download complete") {
		t.Errorf("Expected helper output to be captured, got %q", h.LastOutput())
	}
	if _, err := h.Usage(); !errors.Is(err, worker.ErrNotRunning) {
		t.Errorf("Expected ErrNotRunning from Usage, got %v", err)
	}
}

func TestLaunch_FailureExitCode(t *testing.T) {
	h, err := workertest.Launcher().Launch(worker.BuildArgs(t.TempDir(), 1, workertest.URLFail))
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	if err := h.Wait(); err == nil {
		t.Error("Expected wait error for failing helper")
	}
	if h.ExitCode() != workertest.FailExitCode {
		t.Errorf("Expected exit code %d, got %d", workertest.FailExitCode, h.ExitCode())
	}
}

func TestKill_WaitsForExit(t *testing.T) {
	h, err := workertest.Launcher().Launch(worker.BuildArgs(t.TempDir(), 16, workertest.URLSleep))
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	if !h.Running() {
		t.Fatal("Expected helper to be running")
	}
	if h.PID() <= 0 {
		t.Errorf("Expected positive PID, got %d", h.PID())
	}
	if h.ExitCode() != -1 {
		t.Errorf("Expected exit code -1 while running, got %d", h.ExitCode())
	}

	if err := h.Kill(); err != nil {
		t.Fatalf("Kill failed: %v", err)
	}
	_ = h.Wait()

	if h.Running() {
		t.Error("Expected helper to be stopped after Kill and Wait")
	}

	// Second kill on an exited process is a no-op
	if err := h.Kill(); err != nil {
		t.Errorf("Expected nil from second Kill, got %v", err)
	}
}
