package worker

// Package worker spawns and supervises the external download helper (aria2c).
// A Handle wraps exactly one helper process: it is created by a successful
// launch, reports liveness, accepts a forced kill, and closes its Done channel
// once the process has been reaped.
