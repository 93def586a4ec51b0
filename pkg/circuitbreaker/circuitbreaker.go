// Package circuitbreaker guards calls to flaky collaborators. The broker
// publish path uses it so a dead Redis doesn't add a timeout to every
// notification create.
package circuitbreaker

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrOpen is wrapped into the error returned while the breaker rejects calls.
var ErrOpen = errors.New("circuit breaker open")

const (
	defaultFailureThreshold = 5
	defaultTimeout          = 30 * time.Second
)

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

type Settings struct {
	Name string

	// FailureThreshold is the consecutive-failure count that trips the
	// breaker open. Zero means defaultFailureThreshold.
	FailureThreshold int

	// Interval is the quiet period after which accumulated failures are
	// forgotten while closed. Zero disables the reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before letting one
	// probe call through. Zero means defaultTimeout.
	Timeout time.Duration
}

type CircuitBreaker struct {
	name      string
	threshold int
	interval  time.Duration
	timeout   time.Duration

	mu          sync.Mutex
	state       state
	failures    int
	lastFailure time.Time
}

func NewCircuitBreaker(settings Settings) *CircuitBreaker {
	if settings.FailureThreshold <= 0 {
		settings.FailureThreshold = defaultFailureThreshold
	}
	if settings.Timeout <= 0 {
		settings.Timeout = defaultTimeout
	}

	return &CircuitBreaker{
		name:      settings.Name,
		threshold: settings.FailureThreshold,
		interval:  settings.Interval,
		timeout:   settings.Timeout,
		state:     stateClosed,
	}
}

// Execute runs fn unless the breaker is open. The fn error is returned
// as-is; rejection is reported as an ErrOpen-wrapped error.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.allow(); err != nil {
		return err
	}

	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case stateOpen:
		if time.Since(cb.lastFailure) < cb.timeout {
			return fmt.Errorf("circuit breaker %s: %w", cb.name, ErrOpen)
		}
		cb.state = stateHalfOpen
	case stateClosed:
		if cb.failures > 0 && cb.interval > 0 && time.Since(cb.lastFailure) > cb.interval {
			cb.failures = 0
		}
	}
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		// A failed probe reopens immediately.
		if cb.state == stateHalfOpen || cb.failures >= cb.threshold {
			cb.state = stateOpen
		}
		return
	}

	cb.failures = 0
	cb.state = stateClosed
}
