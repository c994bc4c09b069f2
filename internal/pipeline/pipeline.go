package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor fetches the raw source documents.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawDocuments, error)
}

// Transformer turns the raw documents into a dataset and its geography.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawDocuments) (Result, error)
}

// Loader delivers a built dataset to a downstream sink.
type Loader interface {
	Load(ctx context.Context, ds *domain.Dataset) error
}

// Result is what one pipeline run produces.
type Result struct {
	Dataset   *domain.Dataset
	Geography *domain.Geography
}

// Pipeline orchestrates the one-shot extract-transform-load run that builds
// the dashboard dataset at startup.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loaders     []Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability. Loaders
// are optional.
func New(e Extractor, t Transformer, logger *slog.Logger, metrics *observability.Metrics, loaders ...Loader) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
		clock:       clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source driving Watch.
func (p *Pipeline) SetClock(c clockwork.Clock) {
	p.clock = c
}

// CheckReadiness returns nil once a dataset has been built, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// Run fetches, transforms and delivers the dataset once. Extract and
// transform failures are returned; the dashboard cannot start without them.
// Loader failures are logged and counted only.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	p.logger.Info("dataset load started")

	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		p.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("extract: %w", err)
	}

	res, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		p.metrics.DatasetLoads.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("transform: %w", err)
	}
	p.metrics.RecordsLoaded.Set(float64(res.Dataset.Len()))

	for _, l := range p.loaders {
		if err := l.Load(ctx, res.Dataset); err != nil {
			p.logger.Error("dataset delivery failed", "error", err, "records", res.Dataset.Len())
			p.metrics.SinkErrors.Inc()
		}
	}

	p.metrics.DatasetLoads.WithLabelValues("success").Inc()
	p.ready.Store(true)
	p.logger.Info("dataset loaded",
		"year", res.Dataset.Year(),
		"records", res.Dataset.Len(),
		"duration", time.Since(start),
	)
	return res, nil
}

// Watch reruns the pipeline every interval until ctx is cancelled and hands
// each new result to publish. A failed run is logged and the previous result
// stays in place.
func (p *Pipeline) Watch(ctx context.Context, interval time.Duration, publish func(Result)) {
	ticker := p.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			res, err := p.Run(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				p.logger.Warn("dataset reload failed, keeping previous dataset", "error", err)
				continue
			}
			publish(res)
		}
	}
}
