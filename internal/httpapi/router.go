package httpapi

import (
	"net/http"

	"simplemarket/internal/logger"
	"simplemarket/internal/middleware"
	"simplemarket/internal/order"
	"simplemarket/internal/product"

	"github.com/go-chi/chi/v5"
)

// NewRouter assembles the REST surface consumed by the storefront client.
// Mutating product routes require an admin token; everything else is open,
// matching the original marketplace backend.
func NewRouter(productSvc product.Service, orderSvc order.Service, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	productHandler := NewProductHandler(productSvc)
	orderHandler := NewOrderHandler(orderSvc)

	r.Route("/api/products", func(pr chi.Router) {
		pr.Get("/", productHandler.list)
		pr.Get("/{id}", productHandler.get)

		pr.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin(jwtSecret))
			admin.Post("/", productHandler.create)
			admin.Put("/{id}", productHandler.update)
			admin.Delete("/{id}", productHandler.delete)
		})
	})

	r.Route("/api/orders", func(or chi.Router) {
		or.Get("/", orderHandler.list)
		or.Post("/", orderHandler.create)
		or.Get("/total-revenue", orderHandler.totalRevenue)
		or.Get("/total-cust", orderHandler.totalCustomers)
		or.Get("/{id}", orderHandler.get)
	})

	return r
}
