package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerScrapeRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/scrape", handler.Scrape)
	mux.HandleFunc("GET /api/calendar/{season}", handler.Calendar)
}

// registerStaticRoutes serves the single-page UI: "/" resolves to index.html
// and every other embedded file is served under its own name.
func registerStaticRoutes(mux *http.ServeMux) {
	files := staticFiles()
	mux.Handle("GET /{$}", files)

	entries, err := fs.ReadDir(staticFS, "static")
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == "index.html" {
			continue
		}
		mux.Handle("GET /"+entry.Name(), files)
	}
}
