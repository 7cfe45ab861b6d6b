package filters

import (
	"sync"
	"time"
)

// Debouncer delays propagation of a rapidly-changing value until it has
// been stable for the full delay window. Each Set cancels the previous
// pending emission, so intermediate values never reach the callback; the
// initial value is the starting output and is never re-emitted.
//
// Cancellation is tracked with a generation counter, not just
// timer.Stop: a callback that already fired and is waiting on the mutex
// re-checks its generation and bails if a later Set, Cancel, Reset or
// Stop superseded it. The callback runs on the timer goroutine while the
// internal mutex is held, which makes check-and-emit atomic with respect
// to cancellation; the callback must therefore not call back into the
// Debouncer. Stop must be called when the owner goes away so a pending
// timer cannot fire after disposal.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	value   T
	emit    func(T)
	stopped bool
}

// NewDebouncer creates a debouncer whose output starts at initial.
// A delay of zero still defers emission to the timer goroutine, it is
// never synchronous with Set.
func NewDebouncer[T any](initial T, delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		value: initial,
		emit:  emit,
	}
}

// Set schedules v to become the debounced value after the delay window.
// Any previously scheduled value that has not fired yet is discarded.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.stopped || gen != d.gen {
			// Superseded while this callback was pending or blocked
			return
		}
		d.value = v
		d.emit(v)
	})
}

// Value returns the current debounced output
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Cancel discards a pending emission without stopping the debouncer.
// Used when the owner overrides the value directly (reset).
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Reset cancels any pending emission and forces the debounced output to v
// immediately, without invoking the callback.
func (d *Debouncer[T]) Reset(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.value = v
}

// Stop cancels any pending emission and prevents all future ones.
// Safe to call more than once.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
