package ui

// Package ui contains the Fyne-based desktop user interface. Each download
// session is shown as a closable tab and the window close request is routed
// through the shutdown coordinator. All UI strings are localized via Localization.
