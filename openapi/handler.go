package openapi

import (
	"net/http"
	"strings"
	"sync"
)

// Handler serves the document at <prefix>.json and <prefix>.yaml, e.g.
// /openapi.json and /openapi.yaml when mounted at /openapi. Rendering
// happens once, on first request: the route tables are immutable after
// startup, so the document never changes.
func Handler(doc *Document) http.Handler {
	var (
		once      sync.Once
		jsonBody  []byte
		yamlBody  []byte
		renderErr error
	)
	render := func() {
		if jsonBody, renderErr = doc.JSON(); renderErr != nil {
			return
		}
		yamlBody, renderErr = doc.YAML()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(render)
		if renderErr != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, ".yaml"), strings.HasSuffix(r.URL.Path, ".yml"):
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(yamlBody)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(jsonBody)
		}
	})
}
