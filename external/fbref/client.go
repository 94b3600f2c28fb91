package fbref

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/resilience"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/useragent"
)

const (
	DefaultBaseURL     = "https://fbref.com"
	DefaultTimeout     = 15 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoffBase = 5 * time.Second

	premierLeagueCompID = 9
	defaultMaxBodyBytes = 8 << 20
)

// Fetch attempt outcomes reported to the AttemptObserver.
const (
	OutcomeSuccess   = "success"
	OutcomeStatus    = "http_status"
	OutcomeTransport = "transport"
	OutcomeRead      = "read_body"
	OutcomeRejected  = "circuit_open"
)

// AttemptObserver receives one call per fetch attempt.
type AttemptObserver interface {
	ObserveFetchAttempt(outcome string)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	BackoffBase    time.Duration
	Identities     *useragent.Pool
	Logger         *logging.Logger
	Observer       AttemptObserver
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads fbref.com schedule pages. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	backoffBase time.Duration
	identities  *useragent.Pool
	logger      *logging.Logger
	observer    AttemptObserver
	breaker     *resilience.CircuitBreaker
	sleep       resilience.SleepFunc

	maxBodyBytes int64
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	backoffBase := cfg.BackoffBase
	if backoffBase <= 0 {
		backoffBase = DefaultBackoffBase
	}

	identities := cfg.Identities
	if identities == nil {
		identities = useragent.DefaultPool()
	}

	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker, func(from, to resilience.CircuitState) {
		logger.Warn("fbref circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		identities:  identities,
		logger:      logger,
		observer:    observer,
		breaker:     breaker,
		sleep:       resilience.Sleep,

		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// BuildScheduleURL returns the fbref.com Premier League schedule page for season.
// The season is trimmed and otherwise inserted verbatim.
func BuildScheduleURL(season string) string {
	return buildScheduleURL(DefaultBaseURL, season)
}

// ScheduleURL is BuildScheduleURL against the client's base URL.
func (c *Client) ScheduleURL(season string) string {
	return buildScheduleURL(c.baseURL, season)
}

func buildScheduleURL(baseURL, season string) string {
	sanitized := strings.TrimSpace(season)
	slug := sanitized + "-Premier-League-Scores-and-Fixtures"
	return fmt.Sprintf("%s/en/comps/%d/%s/schedule/%s", baseURL, premierLeagueCompID, sanitized, slug)
}

type nopObserver struct{}

func (nopObserver) ObserveFetchAttempt(string) {}
