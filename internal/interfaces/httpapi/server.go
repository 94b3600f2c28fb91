package httpapi

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/riskibarqy/fbref-fixtures/internal/platform/id"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	// Metrics serves GET /metrics when non-nil.
	Metrics    http.Handler
	RequestIDs id.Generator
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerScrapeRoutes(mux, handler)
	registerStaticRoutes(mux)

	return RequestTracing(RequestLogging(logger, cfg.RequestIDs, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				markSpanError(ctx, fmt.Errorf("panic: %v", rec), http.StatusInternalServerError)
				writeInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func staticFiles() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}
