package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"benchmark-service/internal/benchmark/catalog"
	bmHnd "benchmark-service/internal/benchmark/handler"
	"benchmark-service/internal/config"
	"benchmark-service/internal/middleware"
	"benchmark-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, catalogs *catalog.Store, h *bmHnd.Handler) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(cfg.MaxUploadBytes()))

	r.Get("/health", handlers.Health(catalogs))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/match", h.Match)
	r.Post("/resolve", h.Resolve)
	r.Post("/reduce", h.Reduce)
	r.Post("/extract", h.Extract)
	r.Post("/products", h.Products)

	r.Get("/catalog", h.CatalogInfo)
	r.Post("/catalog/{kind}", h.UploadCatalog)

	return r
}
