package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// NewRouter собирает HTTP-маршруты платформы.
func NewRouter(products *ProductHandler, orders *OrderHandler, logger *log.Entry) http.Handler {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/active", products.ListActive)
			r.Get("/category/{category}", products.ListByCategory)
			r.Get("/{id}", products.Get)
			r.Put("/{id}", products.Update)
			r.Delete("/{id}", products.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Post("/", orders.Create)
			r.Get("/status/{status}", orders.ListByStatus)
			r.Get("/{id}", orders.Get)
			r.Put("/{id}", orders.Update)
			r.Delete("/{id}", orders.Delete)
		})
	})

	return r
}
