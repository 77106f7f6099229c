package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	v1 "dashboard/api/v1"
)

// NewRouter configure le routeur HTTP de l'application
func NewRouter(handlers *v1.Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", handlers.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/years", handlers.Years)
		r.Get("/dashboard", handlers.Dashboard)
		r.Post("/reload", handlers.Reload)

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/revenue", handlers.Revenue)
			r.Get("/monthly-trends", handlers.MonthlyTrends)
			r.Get("/satisfaction", handlers.Satisfaction)
			r.Get("/delivery", handlers.Delivery)
			r.Get("/satisfaction-by-delivery", handlers.SatisfactionByDeliverySpeed)
			r.Get("/categories", handlers.Categories)
			r.Get("/states", handlers.States)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/csv", handlers.ExportCSV)
			r.Get("/parquet", handlers.ExportParquet)
		})
	})

	return r
}
