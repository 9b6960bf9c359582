package ui

import (
	"time"

	"fyne.io/fyne/v2"
)

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Text fragments
const (
	MiddleDotSeparator = " · "
	PIDLabelFormat     = "PID %d"
)

// Window sizing
var (
	WindowSize         = fyne.NewSize(640, 300)
	SettingsDialogSize = fyne.NewSize(480, 360)
	ExitDialogSize     = fyne.NewSize(420, 160)
)

// ConnectionSelectWidth is the width of the connection count selector
const ConnectionSelectWidth float32 = 80

// UsageRefreshInterval is how often a running tab samples its helper
const UsageRefreshInterval = 2 * time.Second
