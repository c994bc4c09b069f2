package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding attaches a centroid to a state record. The national
// row and names missing from the reference table are left alone. If the
// geocoder is nil or fails, the record is returned without a centroid
// (graceful degradation).
func EnrichWithGeocoding(ctx context.Context, rec StateRecord, geocoder Geocoder, logger *slog.Logger) StateRecord {
	if geocoder == nil || rec.IsNational() || rec.Abbreviation == "" {
		return rec
	}

	result, err := geocoder.LocateState(ctx, rec.State)
	if err != nil {
		logger.Warn("state geocoding failed",
			"state", rec.State,
			"error", err,
		)
		rec.GeoSource = "failed"
		return rec
	}
	if result.Lat == 0 && result.Lon == 0 {
		rec.GeoSource = "failed"
		return rec
	}

	rec.Centroid = &Geo{Lat: result.Lat, Lon: result.Lon}
	rec.GeoSource = "mapbox"
	return rec
}
