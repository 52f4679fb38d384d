// handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every API route.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Prometheus scrape endpoint, outside /api so it is not forced to JSON.
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", HealthHandler)

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", UploadReportHandler)
			r.Post("/fetch", FetchReportHandler) // static segment, matched before {id}
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", GetReportHandler)
				r.Post("/filter", FilterReportHandler)
				r.Delete("/", DeleteReportHandler)
			})
		})

		r.Get("/admin/uploads", RecentUploadsHandler)
	})
	return r
}
