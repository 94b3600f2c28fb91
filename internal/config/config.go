package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	SwaggerEnabled     bool
	LogLevel           logging.Level

	FBrefBaseURL     string
	FBrefTimeout     time.Duration
	FBrefMaxAttempts int
	FBrefBackoffBase time.Duration
	FBrefIdentities  []string
	FBrefCircuit     resilience.CircuitBreakerConfig

	MetricsEnabled bool

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse SWAGGER_ENABLED")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPTRACE_ENABLED")
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, crerr.New("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse UPTRACE_LOGS_ENABLED")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PPROF_ENABLED")
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse PYROSCOPE_ENABLED")
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, crerr.New("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse METRICS_ENABLED")
	}

	readTimeout, err := getPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	// A scrape can spend 15s of backoff plus three request timeouts.
	writeTimeout, err := getPositiveDuration("APP_WRITE_TIMEOUT", "90s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getPositiveDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	fbrefTimeout, err := getPositiveDuration("FBREF_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	fbrefBackoffBase, err := getPositiveDuration("FBREF_BACKOFF_BASE", "5s")
	if err != nil {
		return Config{}, err
	}
	fbrefMaxAttempts, err := getEnvAsInt("FBREF_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, crerr.Wrap(err, "parse FBREF_MAX_ATTEMPTS")
	}
	if fbrefMaxAttempts < 1 {
		return Config{}, crerr.New("FBREF_MAX_ATTEMPTS must be >= 1")
	}
	fbrefBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("FBREF_BASE_URL", "https://fbref.com")), "/")
	if !strings.HasPrefix(fbrefBaseURL, "http://") && !strings.HasPrefix(fbrefBaseURL, "https://") {
		return Config{}, crerr.Newf("FBREF_BASE_URL must be an http(s) URL, got %q", fbrefBaseURL)
	}

	rawLevel := getEnv("APP_LOG_LEVEL", "info")
	logLevel, ok := logging.ParseLevel(rawLevel)
	if !ok {
		return Config{}, crerr.Newf("APP_LOG_LEVEL must be one of debug|info|warn|error, got %q", rawLevel)
	}

	circuit, err := loadCircuit("FBREF_CIRCUIT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "fbref-fixtures-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8000"),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		ShutdownTimeout:            shutdownTimeout,
		SwaggerEnabled:             swaggerEnabled,
		LogLevel:                   logLevel,
		FBrefBaseURL:               fbrefBaseURL,
		FBrefTimeout:               fbrefTimeout,
		FBrefMaxAttempts:           fbrefMaxAttempts,
		FBrefBackoffBase:           fbrefBackoffBase,
		FBrefIdentities:            splitLines(getEnv("FBREF_USER_AGENTS", "")),
		FBrefCircuit:               circuit,
		MetricsEnabled:             metricsEnabled,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, crerr.New("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, crerr.New("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()

	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", strconv.FormatBool(defaults.Enabled)))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, crerr.Wrapf(err, "parse %s_ENABLED", prefix)
	}
	failureCount, err := getEnvAsInt(prefix+"_FAILURE_COUNT", defaults.FailureThreshold)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, crerr.Wrapf(err, "parse %s_FAILURE_COUNT", prefix)
	}
	if failureCount < 1 {
		return resilience.CircuitBreakerConfig{}, crerr.Newf("%s_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := getPositiveDuration(prefix+"_OPEN_TIMEOUT", defaults.OpenTimeout.String())
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, crerr.Wrapf(err, "parse %s_HALF_OPEN_MAX_REQ", prefix)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, crerr.Newf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getPositiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, crerr.Wrapf(err, "parse %s", key)
	}
	if value <= 0 {
		return 0, crerr.Newf("%s must be > 0", key)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// splitLines splits on "|" or newlines; user agents contain commas.
func splitLines(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool {
		return r == '|' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", crerr.Newf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
