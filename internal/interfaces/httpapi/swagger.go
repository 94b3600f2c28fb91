package httpapi

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"sync"
)

const openAPIPath = "/openapi.yaml"

//go:embed openapi.yaml
var openAPISpec []byte

var swaggerPage = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: '#swagger-ui', deepLinking: true });
    </script>
  </body>
</html>`))

var renderSwaggerPage = sync.OnceValues(func() ([]byte, error) {
	var buf bytes.Buffer
	err := swaggerPage.Execute(&buf, struct{ Title, SpecURL string }{
		Title:   "FBref Fixtures API",
		SpecURL: openAPIPath,
	})
	return buf.Bytes(), err
})

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r.Context(), "OpenAPI")
	defer span.End()

	h.logger.DebugContext(ctx, "serve openapi document", "bytes", len(openAPISpec))
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(openAPISpec)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	page, err := renderSwaggerPage()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "render swagger page", "error", err)
		writeInternalError(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
