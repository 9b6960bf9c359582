package model

// Package model defines domain data structures shared across the app: the
// session lifecycle state, connection bounds, and the typed events a session
// emits when its state changes.
