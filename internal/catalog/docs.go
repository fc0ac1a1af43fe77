package catalog

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	docsPath    = "/swagger"
	openAPIPath = "/swagger/v1/swagger.json"
)

//go:embed openapi.json
var openAPIDoc []byte

const swaggerPage = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Product Catalog API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '` + openAPIPath + `',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`

func setupDocs(r chi.Router) {
	r.Get(openAPIPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAPIDoc)
	})

	page := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(swaggerPage))
	}
	r.Get(docsPath, page)
	r.Get(docsPath+"/", page)
}
