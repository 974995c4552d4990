package debounce

import (
	"sync"
	"time"
)

// Debouncer delays a callback until its key has been quiet for the
// configured window; every call resets the key's timer. Each scheduled
// callback receives a token, and only the latest token per key is ever
// current, so a slow response resolving after a newer request can be
// detected and dropped ("latest request wins").
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	timer *time.Timer
	token uint64
}

func New(wait time.Duration) *Debouncer {
	return &Debouncer{
		wait:    wait,
		entries: make(map[string]*entry),
	}
}

// Do schedules fn to run after the quiet window, cancelling any run
// still pending for the same key, and returns the token fn will be
// called with.
func (d *Debouncer) Do(key string, fn func(token uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[key]
	if !ok {
		e = &entry{}
		d.entries[key] = e
	}

	if e.timer != nil {
		e.timer.Stop()
	}

	e.token++
	token := e.token
	e.timer = time.AfterFunc(d.wait, func() { fn(token) })

	return token
}

// Current reports the latest token issued for key. A callback holding
// an older token is stale and must discard its result.
func (d *Debouncer) Current(key string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[key]
	if !ok {
		return 0
	}
	return e.token
}

// Cancel stops any pending run for key without issuing a new token.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[key]
	if !ok {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	// invalidate whatever may already be in flight
	e.token++
}
