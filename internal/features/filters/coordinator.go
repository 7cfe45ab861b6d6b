package filters

import (
	"sync"
	"time"
)

// ApplyFunc receives the combined filter set on every emission. It is the
// hand-off point to whatever loads the report data. It runs while the
// coordinator's lock is held, so emissions are serialized in state order;
// it must not call back into the Coordinator.
type ApplyFunc func(FilterState)

// searchEdit is a search value tagged with the edit generation that
// produced it, so a debounced settle can be recognized as stale.
type searchEdit struct {
	value string
	gen   uint64
}

// Coordinator owns the filter field state of the report screen. The search
// field is routed through a Debouncer; every other field takes effect as
// soon as it is set. Whenever the visible state changes and differs from
// the initial baseline in at least one field, the combined filter set is
// emitted through the apply callback. Manual submit and reset always emit.
//
// Submit and Reset bump the search generation under the lock, which
// invalidates any debounced settle still in flight: once either returns,
// a superseded search value can no longer be applied.
type Coordinator struct {
	mu sync.Mutex

	initial FilterState // baseline for change detection
	live    FilterState // current field values, search included

	debouncedSearch string
	searchGen       uint64
	debouncer       *Debouncer[searchEdit]

	apply ApplyFunc
}

// NewCoordinator builds a coordinator seeded with the initial filters.
// The debounced search starts equal to the initial search value, there is
// no artificial delay on construction.
func NewCoordinator(initial FilterState, delay time.Duration, apply ApplyFunc) *Coordinator {
	c := &Coordinator{
		initial:         initial,
		live:            initial,
		debouncedSearch: initial.Search,
		apply:           apply,
	}
	c.debouncer = NewDebouncer(searchEdit{value: initial.Search}, delay, c.searchSettled)
	return c
}

// SetField updates a single filter field. The search field is debounced;
// all other fields become visible immediately and may trigger an
// auto-emission. Setting a field to the value it already holds is a no-op.
func (c *Coordinator) SetField(field, value string) error {
	if field == "search" {
		c.SetSearch(value)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.live
	if err := c.live.Set(field, value); err != nil {
		return err
	}
	if c.live == before {
		return nil
	}
	if combined, changed := c.combinedLocked(); changed {
		c.apply(combined)
	}
	return nil
}

// SetSearch feeds the free-text search field through the debounce window
func (c *Coordinator) SetSearch(value string) {
	c.mu.Lock()
	c.live.Search = value
	c.searchGen++
	edit := searchEdit{value: value, gen: c.searchGen}
	c.mu.Unlock()

	c.debouncer.Set(edit)
}

// searchSettled runs once the search value has been quiet for the full
// debounce window. An edit from an older generation was superseded by a
// submit or reset while its timer was in flight and is dropped.
func (c *Coordinator) searchSettled(edit searchEdit) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if edit.gen != c.searchGen {
		return
	}
	if edit.value == c.debouncedSearch {
		return
	}
	c.debouncedSearch = edit.value
	if combined, changed := c.combinedLocked(); changed {
		c.apply(combined)
	}
}

// combinedLocked returns the emittable filter set (live fields with the
// debounced search) and whether it differs from the baseline
func (c *Coordinator) combinedLocked() (FilterState, bool) {
	combined := c.live
	combined.Search = c.debouncedSearch
	return combined, combined != c.initial
}

// Submit emits the current filters unconditionally, using the live search
// value rather than waiting out the debounce window.
func (c *Coordinator) Submit() {
	c.mu.Lock()
	c.searchGen++
	c.debouncedSearch = c.live.Search
	c.apply(c.live)
	c.mu.Unlock()

	c.debouncer.Cancel()
}

// Reset clears every field and emits the empty filter set immediately,
// bypassing both the debounce window and change detection.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.searchGen++
	c.live = FilterState{}
	c.debouncedSearch = ""
	c.apply(FilterState{})
	c.mu.Unlock()

	c.debouncer.Cancel()
}

// State returns the currently visible filter set
func (c *Coordinator) State() FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	combined, _ := c.combinedLocked()
	return combined
}

// Stop cancels any pending debounced emission. Must be called when the
// owning session ends.
func (c *Coordinator) Stop() {
	c.debouncer.Stop()
}
