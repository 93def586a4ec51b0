package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(Settings{
		Name:             "test",
		FailureThreshold: 3,
		Timeout:          time.Hour,
	})

	boom := errors.New("publish failed")
	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return boom })
		assert.ErrorIs(t, err, boom)
	}

	// Open now: fn must not run.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(Settings{
		Name:             "test",
		FailureThreshold: 2,
		Timeout:          time.Hour,
	})

	boom := errors.New("publish failed")
	require.Error(t, cb.Execute(func() error { return boom }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return boom }))

	// One failure since the last success, threshold is two: still closed.
	assert.NoError(t, cb.Execute(func() error { return nil }))
}

func TestHalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker(Settings{
		Name:             "test",
		FailureThreshold: 1,
		Timeout:          10 * time.Millisecond,
	})

	boom := errors.New("publish failed")
	require.Error(t, cb.Execute(func() error { return boom }))
	require.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)

	time.Sleep(20 * time.Millisecond)

	// Probe failure reopens immediately.
	require.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	require.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)

	time.Sleep(20 * time.Millisecond)

	// Probe success closes the breaker again.
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
}

func TestDefaultsApplied(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "bare"})
	assert.Equal(t, defaultFailureThreshold, cb.threshold)
	assert.Equal(t, defaultTimeout, cb.timeout)
}
