package download

// Package download implements the multi-slot download supervisor: a Session
// owns one helper process at a time and enforces the Idle/Running/Stopping
// lifecycle, and a Registry holds up to four Sessions in creation order.
// State changes are published as model.Event values through an update callback.
