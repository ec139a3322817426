package compdb

import (
	"sync/atomic"
)

// Holder publishes the current project snapshot to concurrent readers.
// Reloads build a fresh Project off to the side and swap it in atomically;
// readers always see a fully frozen snapshot, never a partial load.
type Holder struct {
	current atomic.Pointer[Project]
}

// NewHolder creates a holder with an initial snapshot.
func NewHolder(project *Project) *Holder {
	h := &Holder{}
	h.current.Store(project)
	return h
}

// Current returns the active snapshot.
func (h *Holder) Current() *Project {
	return h.current.Load()
}

// Replace swaps in a new snapshot. Readers holding the previous one keep
// a consistent view until they drop it.
func (h *Holder) Replace(project *Project) {
	h.current.Store(project)
}
