package watcher

import (
	"sort"
	"sync"
	"time"
)

const defaultQuietInterval = 500 * time.Millisecond

// Debouncer collapses bursts of change notifications into one batch per
// quiet period. Build systems rewrite the compilation database in many
// small writes; reloading once after the dust settles is enough.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	output   chan []string
}

// NewDebouncer creates a debouncer with the specified quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]struct{}),
		output:   make(chan []string, 4),
	}
}

// Output returns the channel that receives batched change sets.
func (d *Debouncer) Output() <-chan []string {
	return d.output
}

// Add records a changed path and restarts the quiet-period timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// flush emits the accumulated paths, sorted for stable consumers, and
// resets the buffer.
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}

	batch := make([]string, 0, len(d.pending))
	for path := range d.pending {
		batch = append(batch, path)
	}
	sort.Strings(batch)

	d.pending = make(map[string]struct{})
	d.output <- batch
}
