package handlers

import (
	"log"
	"net/http"

	"fuel-route-service/internal/api/dto"
)

type StationHandler struct {
	Catalog CatalogSource
}

// List returns the stations in the current catalog snapshot.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cat, err := h.Catalog.Snapshot(r.Context())
	if err != nil {
		log.Printf("catalog snapshot failed: %v", err)
		writeError(w, r, http.StatusServiceUnavailable, "fuel station data unavailable")
		return
	}

	stations := cat.Stations()
	res := dto.ListStationsResponse{
		CatalogVersion: cat.Version(),
		Count:          len(stations),
		Stations:       make([]dto.StationResponse, 0, len(stations)),
	}
	for _, s := range stations {
		res.Stations = append(res.Stations, dto.StationResponse{
			StationID:          s.StationID,
			Name:               s.Name,
			City:               s.City,
			State:              s.State,
			FuelPricePerGallon: s.PricePerGallon,
			Latitude:           s.Latitude,
			Longitude:          s.Longitude,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Refresh rebuilds the catalog snapshot from the station source.
func (h *StationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cat, err := h.Catalog.Refresh(r.Context())
	if err != nil {
		log.Printf("catalog refresh failed: %v", err)
		writeError(w, r, http.StatusServiceUnavailable, "fuel station data unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RefreshCatalogResponse{
		CatalogVersion: cat.Version(),
		Count:          cat.Len(),
	})
}
