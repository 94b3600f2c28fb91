package resilience

import (
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrCircuitOpen = crerr.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc is called with the breaker lock held; it must not call back
// into the breaker.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker guards one upstream. A nil *CircuitBreaker admits every call.
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      CircuitBreakerConfig
	onChange StateChangeFunc
	now      func() time.Time

	state    CircuitState
	failures int
	reopenAt time.Time
	probes   int
	passed   int
}

// NewCircuitBreaker builds a breaker from cfg regardless of cfg.Enabled.
func NewCircuitBreaker(cfg CircuitBreakerConfig, onChange StateChangeFunc) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:      NormalizeCircuitBreakerConfig(cfg),
		onChange: onChange,
		now:      time.Now,
		state:    CircuitStateClosed,
	}
}

// Execute runs fn when the breaker admits the call. isFailure decides whether a
// returned error counts against the upstream; nil means every error counts.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if b == nil {
		return fn()
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	b.record(err != nil && (isFailure == nil || isFailure(err)))
	return err
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.advance()
}

func (b *CircuitBreaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.advance() {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

func (b *CircuitBreaker) record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.advance() {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if failed {
			b.transition(CircuitStateOpen)
			return
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq {
			b.transition(CircuitStateClosed)
		}
	case CircuitStateOpen:
		// late result from a call admitted before the trip
		if failed {
			b.reopenAt = b.now().Add(b.cfg.OpenTimeout)
		}
	}
}

// advance moves an expired open breaker to half-open. Caller holds mu.
func (b *CircuitBreaker) advance() CircuitState {
	if b.state == CircuitStateOpen && !b.now().Before(b.reopenAt) {
		b.transition(CircuitStateHalfOpen)
	}
	return b.state
}

func (b *CircuitBreaker) transition(to CircuitState) {
	from := b.state
	b.state = to
	b.failures = 0
	b.probes = 0
	b.passed = 0
	if to == CircuitStateOpen {
		b.reopenAt = b.now().Add(b.cfg.OpenTimeout)
	}
	if b.onChange != nil && from != to {
		b.onChange(from, to)
	}
}
