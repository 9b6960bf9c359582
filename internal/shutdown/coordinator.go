// Package shutdown decides whether the application may exit while download
// sessions exist, and applies the user's choice.
package shutdown

import (
	"github.com/rs/zerolog"

	"github.com/ytget/aprit/internal/logging"
)

// Decision is the user's answer to the exit prompt
type Decision int

const (
	// DecisionCancel keeps the application running
	DecisionCancel Decision = iota
	// DecisionClose stops every busy session, then exits
	DecisionClose
	// DecisionDontAskAgain persists the skip flag and exits without stopping anything
	DecisionDontAskAgain
)

// String returns the decision name
func (d Decision) String() string {
	switch d {
	case DecisionCancel:
		return "cancel"
	case DecisionClose:
		return "close"
	case DecisionDontAskAgain:
		return "dont-ask-again"
	default:
		return "unknown"
	}
}

// Verdict is the result of evaluating an exit request
type Verdict int

const (
	// VerdictExitNow allows exit without asking
	VerdictExitNow Verdict = iota
	// VerdictNeedsDecision requires a Decision from the user
	VerdictNeedsDecision
)

// Preferences is the persisted exit-prompt flag
type Preferences interface {
	SkipExitPrompt() bool
	SetSkipExitPrompt(skip bool)
}

// Fleet is the aggregate session state consulted at exit
type Fleet interface {
	AnyBusy() bool
	Count() int
	StopBusy()
}

// Coordinator arbitrates application exit
type Coordinator struct {
	prefs Preferences
	fleet Fleet
	log   zerolog.Logger
}

// NewCoordinator creates a coordinator over the given preferences and sessions
func NewCoordinator(prefs Preferences, fleet Fleet) *Coordinator {
	return &Coordinator{
		prefs: prefs,
		fleet: fleet,
		log:   logging.Get("shutdown"),
	}
}

// Evaluate decides whether exit needs the user's decision.
// With the skip flag set no session is inspected or stopped.
func (c *Coordinator) Evaluate() Verdict {
	if c.prefs.SkipExitPrompt() {
		c.log.Debug().Msg("exit prompt disabled")
		return VerdictExitNow
	}

	hasDownloading := c.fleet.AnyBusy()
	hasMultiTabs := c.fleet.Count() > 1
	if !hasDownloading && !hasMultiTabs {
		return VerdictExitNow
	}

	c.log.Debug().Bool("downloading", hasDownloading).Bool("multiple_sessions", hasMultiTabs).Msg("exit needs confirmation")
	return VerdictNeedsDecision
}

// Resolve applies the decision and reports whether exit is allowed.
// Cancel changes nothing.
func (c *Coordinator) Resolve(decision Decision) bool {
	c.log.Info().Str("decision", decision.String()).Msg("exit decision")

	switch decision {
	case DecisionDontAskAgain:
		// Busy helpers keep running after exit.
		c.prefs.SetSkipExitPrompt(true)
		return true
	case DecisionClose:
		c.fleet.StopBusy()
		return true
	default:
		return false
	}
}

// Run evaluates the exit request and asks only when needed
func (c *Coordinator) Run(ask func() Decision) bool {
	if c.Evaluate() == VerdictExitNow {
		return true
	}
	return c.Resolve(ask())
}
