package worker

import (
	"bytes"
	"strings"
	"sync"
)

// maxPendingOutput caps the unterminated tail kept between writes
const maxPendingOutput = 4096

// tailWriter remembers the last non-empty line written to it.
// aria2c redraws its readout with carriage returns, so both \r and \n end a line.
type tailWriter struct {
	mu      sync.Mutex
	pending []byte
	last    string
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexAny(w.pending, "\r\n")
		if i < 0 {
			break
		}
		if line := strings.TrimSpace(string(w.pending[:i])); line != "" {
			w.last = line
		}
		w.pending = w.pending[i+1:]
	}

	if len(w.pending) > maxPendingOutput {
		w.pending = w.pending[len(w.pending)-maxPendingOutput:]
	}
	return len(p), nil
}

// Last returns the last complete line, or the pending partial line if none
func (w *tailWriter) Last() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.last != "" {
		return w.last
	}
	return strings.TrimSpace(string(w.pending))
}
