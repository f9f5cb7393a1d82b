package api

import (
	"net/http"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	geocoder ports.GeocodeProvider,
	router ports.RouteProvider,
	catalogSource handlers.CatalogSource,
	defaultProfile domain.VehicleProfile,
) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Geocoder:       geocoder,
		Router:         router,
		Catalog:        catalogSource,
		DefaultProfile: defaultProfile,
	}
	stationHandler := &handlers.StationHandler{Catalog: catalogSource}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stations", stationHandler.List)
	mux.HandleFunc("/catalog/refresh", stationHandler.Refresh)
	mux.HandleFunc("/api/v1/route-and-fuel", tripHandler.Plan)

	return loggingMiddleware(mux)
}
