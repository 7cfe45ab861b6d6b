package filters

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) add(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncerInitialValue(t *testing.T) {
	d := NewDebouncer("hello", 50*time.Millisecond, func(string) {})
	defer d.Stop()

	// The initial value is the output immediately, no delay applies
	assert.Equal(t, "hello", d.Value())
}

func TestDebouncerSettlesOnLastValue(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer("", 30*time.Millisecond, rec.add)
	defer d.Stop()

	d.Set("a")
	d.Set("ab")
	d.Set("abc")

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) > 0
	}, time.Second, 5*time.Millisecond)

	// Only the final value of the burst ever comes through
	assert.Equal(t, []string{"abc"}, rec.snapshot())
	assert.Equal(t, "abc", d.Value())
}

func TestDebouncerSuppressesIntermediateValues(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer("", 300*time.Millisecond, rec.add)
	defer d.Stop()

	// Keep changing the value strictly within the window
	for _, v := range []string{"x", "xy", "xyz"} {
		d.Set(v)
		time.Sleep(20 * time.Millisecond)
	}

	// Still inside the window, nothing has been emitted
	assert.Empty(t, rec.snapshot())
	assert.Equal(t, "", d.Value())

	require.Eventually(t, func() bool {
		return d.Value() == "xyz"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"xyz"}, rec.snapshot())
}

func TestDebouncerZeroDelayIsNotSynchronous(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer("", 0, rec.add)
	defer d.Stop()

	d.Set("later")

	// The emission is deferred to the timer goroutine, so it has not
	// happened in this call frame even with a zero delay
	assert.Equal(t, "", d.Value())

	require.Eventually(t, func() bool {
		return d.Value() == "later"
	}, time.Second, time.Millisecond)
}

func TestDebouncerStopCancelsPendingEmission(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer("", 20*time.Millisecond, rec.add)

	d.Set("never")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	// Sets after Stop are ignored too
	d.Set("still never")
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncerSupersededValueNeverFiresAfterSet(t *testing.T) {
	// Race the delay window deliberately: the first timer is already due
	// (possibly mid-callback) when the second Set lands. Once Set returns,
	// the discarded value must be gone for good.
	for i := 0; i < 200; i++ {
		var replaced atomic.Bool
		var leaked atomic.Bool
		d := NewDebouncer("", time.Millisecond, func(v string) {
			if v == "old" && replaced.Load() {
				leaked.Store(true)
			}
		})

		d.Set("old")
		time.Sleep(time.Millisecond)
		d.Set("new")
		replaced.Store(true)

		require.Eventually(t, func() bool {
			return d.Value() == "new"
		}, time.Second, time.Millisecond)
		d.Stop()
		require.False(t, leaked.Load(), "discarded value fired after its replacement was set")
	}
}

func TestDebouncerPendingEmissionNeverFiresAfterReset(t *testing.T) {
	for i := 0; i < 200; i++ {
		var cancelled atomic.Bool
		var leaked atomic.Bool
		d := NewDebouncer("", time.Millisecond, func(string) {
			if cancelled.Load() {
				leaked.Store(true)
			}
		})

		d.Set("typed")
		time.Sleep(time.Millisecond)
		d.Reset("")
		cancelled.Store(true)

		time.Sleep(3 * time.Millisecond)
		d.Stop()
		require.False(t, leaked.Load(), "pending emission fired after the reset completed")
		require.Equal(t, "", d.Value())
	}
}

func TestDebouncerResetOverridesWithoutEmitting(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer("start", 20*time.Millisecond, rec.add)
	defer d.Stop()

	d.Set("pending")
	d.Reset("forced")

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.Equal(t, "forced", d.Value())
}
