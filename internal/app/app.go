package app

import (
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fbref-fixtures/external/fbref"
	"github.com/riskibarqy/fbref-fixtures/internal/config"
	"github.com/riskibarqy/fbref-fixtures/internal/interfaces/httpapi"
	"github.com/riskibarqy/fbref-fixtures/internal/observability"
	idgen "github.com/riskibarqy/fbref-fixtures/internal/platform/id"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/useragent"
	"github.com/riskibarqy/fbref-fixtures/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const metricsNamespace = "fbref"

// NewFBrefClient builds the schedule page client from config. Outbound
// requests go through an otelhttp transport so each attempt gets a span.
func NewFBrefClient(cfg config.Config, logger *logging.Logger, observer fbref.AttemptObserver) (*fbref.Client, error) {
	identities := useragent.DefaultPool()
	if len(cfg.FBrefIdentities) > 0 {
		pool, err := useragent.NewPool(cfg.FBrefIdentities)
		if err != nil {
			return nil, crerr.Wrap(err, "build user agent pool")
		}
		identities = pool
	}

	return fbref.NewClient(fbref.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.FBrefTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:        cfg.FBrefBaseURL,
		Timeout:        cfg.FBrefTimeout,
		MaxAttempts:    cfg.FBrefMaxAttempts,
		BackoffBase:    cfg.FBrefBackoffBase,
		Identities:     identities,
		Logger:         logger.Named("fbref"),
		Observer:       observer,
		CircuitBreaker: cfg.FBrefCircuit,
	}), nil
}

// NewScheduleService wires the fetch and extract pipeline. metrics may be nil.
func NewScheduleService(cfg config.Config, logger *logging.Logger, metrics *observability.ScrapeMetrics) (*usecase.ScheduleService, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var observer fbref.AttemptObserver
	var recorder usecase.ScrapeRecorder
	if metrics != nil {
		observer = metrics
		recorder = metrics
	}

	client, err := NewFBrefClient(cfg, logger, observer)
	if err != nil {
		return nil, err
	}

	return usecase.NewScheduleService(client, fbref.ExtractFixtures, recorder, logger.Named("usecase")), nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	var metrics *observability.ScrapeMetrics
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metrics = observability.NewScrapeMetrics(metricsNamespace)
		metricsHandler = metrics.Handler()
	}

	scheduleSvc, err := NewScheduleService(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(scheduleSvc, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		Metrics:            metricsHandler,
		RequestIDs:         idgen.NewRandomGenerator(),
	}, logger)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}, nil
}
