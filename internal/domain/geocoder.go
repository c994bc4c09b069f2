package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat        float64
	Lon        float64
	PlaceName  string
	Confidence float64 // 0.0–1.0 provider confidence score
}

// Geocoder locates states for map label placement.
type Geocoder interface {
	// LocateState returns a representative point for a full state name.
	LocateState(ctx context.Context, name string) (GeocodingResult, error)
}
