package watch

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered callback for a key once no new
// trigger for that key has arrived for the interval. Keys are debounced
// independently, so a burst across several files runs one callback per file.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	pending map[string]*pendingCall
	stopped bool
}

type pendingCall struct {
	timer    *time.Timer
	callback func()
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]*pendingCall),
	}
}

// Trigger schedules callback for key, replacing any callback still pending
// for the same key.
func (d *Debouncer) Trigger(key string, callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	call := &pendingCall{callback: callback}
	call.timer = time.AfterFunc(d.interval, func() { d.fire(key, call) })
	d.pending[key] = call
}

// Pending returns the number of keys with a callback waiting to run.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Debouncer) fire(key string, call *pendingCall) {
	d.mu.Lock()
	// A replaced call whose timer had already expired must not run.
	if d.stopped || d.pending[key] != call {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	call.callback()
}

// Stop cancels every pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, call := range d.pending {
		call.timer.Stop()
		delete(d.pending, key)
	}
}
