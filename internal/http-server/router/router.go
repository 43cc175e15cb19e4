package router

import (
	"net/http"

	export_h "image-exporter/internal/http-server/handler/export"
	"image-exporter/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	ExportHandler *export_h.ExportHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/export", h.ExportHandler.Export)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
