// Package view holds the listing view-state logic: search debouncing, query
// clamping, sequence-tagged fetches, pagination windowing and roster
// statistics. It is independent of the router and of any template so it can
// be tested on its own.
package view

import (
	"sync"
	"time"
)

type debounceState int

const (
	debounceIdle debounceState = iota
	debouncePending
)

// Debouncer commits an input value only after it has been quiet for the
// configured delay. It is a two-state machine: Idle, or Pending with exactly
// one armed timer. A new input while Pending cancels and rearms the timer,
// so superseded values are never committed.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	commit  func(string)
	state   debounceState
	pending string
	timer   *time.Timer
}

// NewDebouncer constructs a debouncer that calls commit with the last value
// seen once input has been quiet for delay.
func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	return &Debouncer{delay: delay, commit: commit}
}

// Input records a new value and restarts the quiet-period timer.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = value
	if d.state == debouncePending {
		d.timer.Stop()
	}
	d.state = debouncePending
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop cancels any pending commit and returns to Idle.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == debouncePending {
		d.timer.Stop()
		d.state = debounceIdle
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.state != debouncePending {
		d.mu.Unlock()
		return
	}
	d.state = debounceIdle
	value := d.pending
	d.mu.Unlock()

	d.commit(value)
}
