package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Load pipeline metrics.
	DatasetLoads          *prometheus.CounterVec   // labels: outcome={success,error}
	ResourceFetchDuration *prometheus.HistogramVec // labels: resource={crashes,age,bac,geography}
	ResourceFetchErrors   *prometheus.CounterVec   // labels: resource
	InvalidNumbers        *prometheus.CounterVec   // labels: dataset
	FatalityMismatches    prometheus.Gauge
	RecordsLoaded         prometheus.Gauge
	SinkErrors            prometheus.Counter

	// Dashboard metrics.
	SelectionChanges *prometheus.CounterVec // labels: action={select,reset}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "dataset_loads_total",
			Help:      "Dataset builds by outcome.",
		}, []string{"outcome"}),
		ResourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fars",
			Name:      "resource_fetch_duration_seconds",
			Help:      "Duration of fetching one source document.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"resource"}),
		ResourceFetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "resource_fetch_errors_total",
			Help:      "Source documents that could not be fetched.",
		}, []string{"resource"}),
		InvalidNumbers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "invalid_numbers_total",
			Help:      "Numeric cells coerced to zero under the zero policy.",
		}, []string{"dataset"}),
		FatalityMismatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fars",
			Name:      "fatality_total_mismatches",
			Help:      "States whose age and BAC exports disagree on the fatality total.",
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fars",
			Name:      "records_loaded",
			Help:      "State records in the current dataset.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "sink_errors_total",
			Help:      "Failed dataset deliveries to optional sinks.",
		}),
		SelectionChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "selection_changes_total",
			Help:      "Dashboard selection changes by action.",
		}, []string{"action"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fars",
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.DatasetLoads,
		m.ResourceFetchDuration,
		m.ResourceFetchErrors,
		m.InvalidNumbers,
		m.FatalityMismatches,
		m.RecordsLoaded,
		m.SinkErrors,
		m.SelectionChanges,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetLoads:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "dataset_loads_total"}, []string{"outcome"}),
		ResourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "fars", Name: "resource_fetch_duration_seconds"}, []string{"resource"}),
		ResourceFetchErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "resource_fetch_errors_total"}, []string{"resource"}),
		InvalidNumbers:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "invalid_numbers_total"}, []string{"dataset"}),
		FatalityMismatches:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fars", Name: "fatality_total_mismatches"}),
		RecordsLoaded:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fars", Name: "records_loaded"}),
		SinkErrors:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "sink_errors_total"}),
		SelectionChanges:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "selection_changes_total"}, []string{"action"}),
		GeocodeRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fars", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fars", Name: "geocode_enabled"}),
	}
}
