package resilience

import "time"

// CircuitBreakerConfig is loaded from <PREFIX>_ENABLED, _FAILURE_COUNT,
// _OPEN_TIMEOUT and _HALF_OPEN_MAX_REQ.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}
}

// NormalizeCircuitBreakerConfig replaces non-positive fields with defaults.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// NewCircuitBreakerFromConfig returns nil when the breaker is disabled.
func NewCircuitBreakerFromConfig(cfg CircuitBreakerConfig, onChange StateChangeFunc) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return NewCircuitBreaker(cfg, onChange)
}
