package mapbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache keyed by state
// name.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) (*CachedGeocoder, error) {
	cache, err := lru.New[string, domain.GeocodingResult](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("geocode cache: %w", err)
	}
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}, nil
}

func (c *CachedGeocoder) LocateState(ctx context.Context, name string) (domain.GeocodingResult, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.LocateState(ctx, name)
	if err != nil {
		return result, err
	}
	// Only cache matches so a transient "not found" can be retried.
	if result.PlaceName != "" {
		c.cache.Add(key, result)
	}
	return result, nil
}

// Len is the number of cached states.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}
