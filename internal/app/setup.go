// Package app contains the application setup for the product API.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"productapi/internal/config"
	"productapi/internal/service"
	"productapi/internal/store"
	"productapi/internal/transport/rest"
	"productapi/pkg/server"
	"productapi/pkg/web"

	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

// seedProducts is the initial catalog loaded at startup.
var seedProducts = []store.Fields{
	{Name: "Laptop", Description: "A powerful laptop", Price: 999.99, Category: "electronics", InStock: true},
	{Name: "Coffee Mug", Description: "A ceramic mug", Price: 12.5, Category: "home", InStock: true},
	{Name: "Notebook", Description: "A ruled notebook", Price: 5.49, Category: "stationery", InStock: false},
}

// SetupDependencies wires the in-memory store, seeds the initial catalog and
// builds the product service.
func SetupDependencies(logger *slog.Logger) *Dependencies {
	memStore := store.NewMemoryStore()
	for _, fields := range seedProducts {
		if _, err := memStore.Create(context.Background(), fields); err != nil {
			logger.Error("Failed to seed product", "name", fields.Name, "error", err)
		}
	}

	return &Dependencies{
		ProductService: service.NewService(memStore),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and routes for the product API.
// The middleware chain is static: request id, structured request log and
// recovery on every request; the API-key gate only on the product namespace.
func SetupHttpHandler(deps *Dependencies, apiKey string) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps, apiKey)
	return mux
}

// wireRoutes sets up the HTTP routes for the product API.
func wireRoutes(mux *chi.Mux, deps *Dependencies, apiKey string) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)

	mux.Get("/", productHandler.Root)
	mux.Get("/healthz", productHandler.HealthCheck)

	mux.Route("/api/products", func(r chi.Router) {
		r.Use(web.APIKeyAuth(apiKey, deps.Logger))
		productHandler.RegisterRoutes(r)
	})
}

// SetupHttpServer creates and configures an HTTP server for the product API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg.Auth.APIKey)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
