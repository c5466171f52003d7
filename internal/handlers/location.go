package handlers

import (
	"context"
	"net/http"

	"notary-ally/internal/records"
)

// LocationFinder resolves coordinates to a county.
type LocationFinder interface {
	Find(ctx context.Context, lat, lon float64) records.LocationInfo
}

// LocationHandler serves POST /api/location.
type LocationHandler struct {
	finder LocationFinder
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(finder LocationFinder) *LocationHandler {
	return &LocationHandler{finder: finder}
}

// LocationRequest carries a position fix from the client.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ServeHTTP looks up the county. Lookup failures are reported in the
// response body's error field with a 200 status.
func (h *LocationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	writeJSON(w, r.Context(), http.StatusOK, h.finder.Find(r.Context(), *req.Latitude, *req.Longitude))
}
