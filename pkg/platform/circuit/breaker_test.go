package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fail(b *Breaker, n int) (useFallback bool, change StateChange) {
	for i := 0; i < n; i++ {
		useFallback, change = b.RecordFailure()
	}
	return useFallback, change
}

func succeed(b *Breaker, n int) (usePrimary bool, change StateChange) {
	for i := 0; i < n; i++ {
		usePrimary, change = b.RecordSuccess()
	}
	return usePrimary, change
}

func TestNewBreaker(t *testing.T) {
	b := New("entry-events")
	assert.Equal(t, "entry-events", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.True(t, b.Allow())
}

func TestBreakerOpening(t *testing.T) {
	t.Run("stays closed below the threshold", func(t *testing.T) {
		b := New("entry-events", WithFailureThreshold(3))
		useFallback, change := fail(b, 2)
		assert.False(t, useFallback)
		assert.Equal(t, StateChange{}, change)
		assert.False(t, b.IsOpen())
	})

	t.Run("opens on the threshold failure only once", func(t *testing.T) {
		b := New("entry-events", WithFailureThreshold(3))
		useFallback, change := fail(b, 3)
		assert.True(t, useFallback)
		assert.True(t, change.Opened)
		assert.Equal(t, "open", b.State().String())

		useFallback, change = b.RecordFailure()
		assert.True(t, useFallback)
		assert.False(t, change.Opened)
	})

	t.Run("a success clears the failure streak", func(t *testing.T) {
		b := New("entry-events", WithFailureThreshold(3))
		fail(b, 2)
		b.RecordSuccess()
		fail(b, 2)
		assert.False(t, b.IsOpen())
		fail(b, 1)
		assert.True(t, b.IsOpen())
	})

	t.Run("non-positive thresholds keep the defaults", func(t *testing.T) {
		b := New("entry-events", WithFailureThreshold(0), WithSuccessThreshold(-1))
		fail(b, 4)
		assert.False(t, b.IsOpen())
		fail(b, 1)
		assert.True(t, b.IsOpen())
	})
}

func TestBreakerClosing(t *testing.T) {
	t.Run("closes after consecutive successes", func(t *testing.T) {
		b := New("entry-events", WithFailureThreshold(1), WithSuccessThreshold(2))
		fail(b, 1)

		usePrimary, change := b.RecordSuccess()
		assert.False(t, usePrimary)
		assert.False(t, change.Closed)

		usePrimary, change = b.RecordSuccess()
		assert.True(t, usePrimary)
		assert.True(t, change.Closed)
		assert.False(t, b.IsOpen())
	})

	t.Run("a failure while open restarts the success streak", func(t *testing.T) {
		b := New("entry-events", WithFailureThreshold(1), WithSuccessThreshold(3))
		fail(b, 1)
		succeed(b, 2)
		fail(b, 1)
		succeed(b, 2)
		assert.True(t, b.IsOpen())
		usePrimary, change := succeed(b, 1)
		assert.True(t, usePrimary)
		assert.True(t, change.Closed)
	})

	t.Run("reset closes immediately", func(t *testing.T) {
		b := New("entry-events", WithFailureThreshold(1))
		fail(b, 1)
		b.Reset()
		assert.Equal(t, StateClosed, b.State())
		assert.True(t, b.Allow())
	})
}

func TestBreakerAllowsOneCallPerCooldown(t *testing.T) {
	now := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	b := New("entry-events",
		WithFailureThreshold(1),
		WithSuccessThreshold(1),
		WithCooldown(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	fail(b, 1)
	require.True(t, b.IsOpen())
	assert.False(t, b.Allow(), "nothing passes before the cooldown")

	now = now.Add(59 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow(), "one call once the cooldown elapsed")
	assert.False(t, b.Allow(), "second caller in the same window is refused")

	_, change := b.RecordSuccess()
	assert.True(t, change.Closed)
	assert.True(t, b.Allow())
}
