// Package source fetches the FARS exports and the boundary document from
// local files or HTTP endpoints.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/fars-dashboard/internal/config"
	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/observability"
	"golang.org/x/sync/errgroup"
)

// Resource names used in errors and metric labels.
const (
	ResourceCrashes   = domain.DatasetCrashes
	ResourceAge       = domain.DatasetAge
	ResourceBAC       = domain.DatasetBAC
	ResourceGeography = "geography"
)

// maxDocumentSize caps a single fetched document.
const maxDocumentSize = 32 << 20

// Locations names where each document lives.
type Locations struct {
	Crashes   string
	Age       string
	BAC       string
	Geography string
}

// Loader fetches all four documents concurrently.
// It implements pipeline.Extractor.
type Loader struct {
	locations  Locations
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewLoader creates a Loader for the configured source locations.
func NewLoader(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return NewLoaderWithLocations(Locations{
		Crashes:   cfg.CrashesSource,
		Age:       cfg.AgeSource,
		BAC:       cfg.BACSource,
		Geography: cfg.GeographySource,
	}, &http.Client{Timeout: cfg.SourceTimeout}, logger, metrics)
}

// NewLoaderWithLocations creates a Loader with an explicit HTTP client.
func NewLoaderWithLocations(loc Locations, client *http.Client, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		locations:  loc,
		httpClient: client,
		logger:     logger,
		metrics:    metrics,
	}
}

// Extract fetches every document. The first failure cancels the remaining
// fetches and is returned as a *domain.ResourceLoadError.
func (l *Loader) Extract(ctx context.Context) (domain.RawDocuments, error) {
	var (
		docs      domain.RawDocuments
		crashes   []byte
		age       []byte
		bac       []byte
		geography []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.fetchInto(gctx, ResourceCrashes, l.locations.Crashes, &crashes) })
	g.Go(func() error { return l.fetchInto(gctx, ResourceAge, l.locations.Age, &age) })
	g.Go(func() error { return l.fetchInto(gctx, ResourceBAC, l.locations.BAC, &bac) })
	g.Go(func() error { return l.fetchInto(gctx, ResourceGeography, l.locations.Geography, &geography) })
	if err := g.Wait(); err != nil {
		return docs, err
	}

	docs.Crashes = string(crashes)
	docs.Age = string(age)
	docs.BAC = string(bac)
	docs.Geography = geography
	return docs, nil
}

func (l *Loader) fetchInto(ctx context.Context, resource, location string, dst *[]byte) error {
	start := time.Now()
	data, err := l.fetch(ctx, location)
	l.metrics.ResourceFetchDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if err != nil {
		l.metrics.ResourceFetchErrors.WithLabelValues(resource).Inc()
		return &domain.ResourceLoadError{Resource: resource, Location: location, Err: err}
	}
	l.logger.Debug("resource fetched", "resource", resource, "location", location, "bytes", len(data))
	*dst = data
	return nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.TrimSpace(location) == "" {
		return nil, errors.New("no location configured")
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path; a one-letter scheme is a Windows drive letter.
		return readFile(location)
	}

	switch u.Scheme {
	case "file":
		return readFile(u.Path)
	case "http", "https":
		return l.get(ctx, location)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (l *Loader) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}
