package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the API handlers mounted under /api.
type Handlers struct {
	Features *FeatureHandler
	Cars     *CarHandler
}

// Mount registers every API route on r, which is expected to be the /api
// subrouter.
func (h Handlers) Mount(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("/api works lets goo!"))
	})
	r.Get("/features", h.Features.ListFeatures)
	r.Route("/cars", h.Cars.Routes)
}
