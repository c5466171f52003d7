package service

import (
	"context"
	"fmt"
	"math"

	"notary-ally/internal/contextutil"
	"notary-ally/internal/records"
)

// CountyResolver looks up the county containing a coordinate pair.
type CountyResolver interface {
	ResolveCounty(ctx context.Context, lat, lon float64) (string, error)
}

// LocationService answers "which county am I in".
type LocationService struct {
	resolver CountyResolver
}

// NewLocationService creates a LocationService backed by resolver.
func NewLocationService(resolver CountyResolver) *LocationService {
	return &LocationService{resolver: resolver}
}

// Find resolves the county for the coordinates. Failures are reported in
// the Error field with zeroed coordinates rather than as a Go error.
func (s *LocationService) Find(ctx context.Context, lat, lon float64) records.LocationInfo {
	logger := contextutil.LoggerFromContext(ctx)

	if err := checkCoordinates(lat, lon); err != nil {
		logger.WarnContext(ctx, "invalid coordinates", "latitude", lat, "longitude", lon)
		return records.LocationInfo{Error: "Geolocation Error: " + err.Error()}
	}

	county, err := s.resolver.ResolveCounty(ctx, lat, lon)
	if err != nil {
		return records.LocationInfo{Error: "API Error: " + userMessage(err)}
	}

	return records.LocationInfo{Latitude: lat, Longitude: lon, County: county}
}

func checkCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v is out of range", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v is out of range", lon)
	}
	return nil
}
