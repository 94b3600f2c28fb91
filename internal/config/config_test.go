package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.FBrefBaseURL != "https://fbref.com" {
		t.Fatalf("unexpected base url: %q", cfg.FBrefBaseURL)
	}
	if cfg.FBrefTimeout != 15*time.Second || cfg.FBrefBackoffBase != 5*time.Second || cfg.FBrefMaxAttempts != 3 {
		t.Fatalf("unexpected fetch defaults: timeout=%s backoff=%s attempts=%d", cfg.FBrefTimeout, cfg.FBrefBackoffBase, cfg.FBrefMaxAttempts)
	}
	if cfg.FBrefCircuit.Enabled {
		t.Fatalf("expected circuit breaker disabled by default")
	}
	if len(cfg.FBrefIdentities) != 0 {
		t.Fatalf("expected built-in identities by default, got %v", cfg.FBrefIdentities)
	}
	if cfg.WriteTimeout <= cfg.FBrefTimeout*3 {
		t.Fatalf("write timeout %s must outlast a full retry cycle", cfg.WriteTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_FBrefSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("FBREF_BASE_URL", "http://localhost:9000/")
	t.Setenv("FBREF_MAX_ATTEMPTS", "5")
	t.Setenv("FBREF_BACKOFF_BASE", "250ms")
	t.Setenv("FBREF_USER_AGENTS", "agent one (X11; Linux)| agent two, like Gecko \n")
	t.Setenv("FBREF_CIRCUIT_ENABLED", "true")
	t.Setenv("FBREF_CIRCUIT_FAILURE_COUNT", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FBrefBaseURL != "http://localhost:9000" {
		t.Fatalf("unexpected base url: %q", cfg.FBrefBaseURL)
	}
	if cfg.FBrefMaxAttempts != 5 || cfg.FBrefBackoffBase != 250*time.Millisecond {
		t.Fatalf("unexpected retry settings: %d %s", cfg.FBrefMaxAttempts, cfg.FBrefBackoffBase)
	}
	if len(cfg.FBrefIdentities) != 2 || cfg.FBrefIdentities[1] != "agent two, like Gecko" {
		t.Fatalf("unexpected identities: %q", cfg.FBrefIdentities)
	}
	if !cfg.FBrefCircuit.Enabled || cfg.FBrefCircuit.FailureThreshold != 4 {
		t.Fatalf("unexpected circuit config: %+v", cfg.FBrefCircuit)
	}
}

func TestLoad_FBrefValidation(t *testing.T) {
	cases := map[string][2]string{
		"zero attempts":       {"FBREF_MAX_ATTEMPTS", "0"},
		"bad attempts":        {"FBREF_MAX_ATTEMPTS", "three"},
		"negative backoff":    {"FBREF_BACKOFF_BASE", "-1s"},
		"bad timeout":         {"FBREF_TIMEOUT", "soon"},
		"relative base url":   {"FBREF_BASE_URL", "fbref.com"},
		"zero circuit faults": {"FBREF_CIRCUIT_FAILURE_COUNT", "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(env[0], env[1])

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", env[0], env[1])
			}
		})
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddr(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "fbref-fixtures-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "fbref-fixtures-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_LogLevel(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "WARNING")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}

	t.Setenv("APP_LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown APP_LOG_LEVEL")
	}
}
