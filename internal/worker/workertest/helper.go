// Package workertest provides a fake download helper for tests. The test
// binary re-executes itself with EnvFakeHelper set and MaybeRunHelper, called
// from TestMain, turns that process into the helper.
package workertest

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ytget/aprit/internal/worker"
)

// EnvFakeHelper switches a re-executed test binary into helper mode
const EnvFakeHelper = "APRIT_FAKE_HELPER"

// URLs understood by the fake helper
const (
	URLSleep = "http://fake.test/sleep"
	URLExit  = "http://fake.test/exit"
	URLFail  = "http://fake.test/fail"
)

// FailExitCode is the exit code used for URLFail
const FailExitCode = 3

// Launcher returns a launcher that runs the current test binary as the helper
func Launcher() *worker.Launcher {
	return &worker.Launcher{
		Helper:       os.Args[0],
		Env:          []string{EnvFakeHelper + "=1"},
		StartTimeout: 10 * time.Second,
	}
}

// MaybeRunHelper acts as the helper and exits when EnvFakeHelper is set.
// Otherwise it returns immediately.
func MaybeRunHelper() {
	if os.Getenv(EnvFakeHelper) != "1" {
		return
	}

	args := os.Args[1:]
	if len(args) == 0 {
		os.Exit(2)
	}
	url := args[len(args)-1]

	switch {
	case strings.HasSuffix(url, "/exit"):
		fmt.Println("Download complete: " + url)
		os.Exit(0)
	case strings.HasSuffix(url, "/fail"):
		fmt.Fprintln(os.Stderr, "errorCode=1 download failed")
		os.Exit(FailExitCode)
	default:
		fmt.Printf("[#1 0B/0B(0%%) CN:%d]\n", len(args))
		time.Sleep(time.Minute)
		os.Exit(0)
	}
}
