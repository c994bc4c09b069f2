package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/observability"
)

// DatasetTransformer implements Transformer using the domain normalize, map
// and join functions with optional geocoding enrichment.
type DatasetTransformer struct {
	year     int
	policy   domain.NumberPolicy
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a DatasetTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(year int, policy domain.NumberPolicy, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *DatasetTransformer {
	return &DatasetTransformer{
		year:     year,
		policy:   policy,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *DatasetTransformer) Transform(ctx context.Context, raw domain.RawDocuments) (Result, error) {
	geo, err := domain.ParseGeography(raw.Geography)
	if err != nil {
		return Result{}, err
	}

	tables, err := MapExports(raw, t.policy)
	if err != nil {
		return Result{}, err
	}
	t.reportCoerced(domain.DatasetCrashes, tables.Coerced[domain.DatasetCrashes])
	t.reportCoerced(domain.DatasetAge, tables.Coerced[domain.DatasetAge])
	t.reportCoerced(domain.DatasetBAC, tables.Coerced[domain.DatasetBAC])

	records, err := domain.Join(tables.Crashes, tables.Ages, tables.BACs)
	if err != nil {
		return Result{}, err
	}

	mismatches := domain.FatalityMismatches(tables.Ages, tables.BACs)
	t.metrics.FatalityMismatches.Set(float64(len(mismatches)))
	for _, m := range mismatches {
		t.logger.Warn("fatality totals disagree, using bac total",
			"state", m.State,
			"age_total", m.AgeTotal,
			"bac_total", m.BACTotal,
		)
	}

	if t.geocoder != nil {
		for i := range records {
			records[i] = domain.EnrichWithGeocoding(ctx, records[i], t.geocoder, t.logger)
		}
	}

	return Result{
		Dataset:   domain.NewDataset(t.year, records),
		Geography: geo,
	}, nil
}

func (t *DatasetTransformer) reportCoerced(dataset string, cells []*domain.InvalidNumberError) {
	if len(cells) == 0 {
		return
	}
	t.metrics.InvalidNumbers.WithLabelValues(dataset).Add(float64(len(cells)))
	for _, c := range cells {
		t.logger.Warn("invalid number stored as zero",
			"dataset", c.Dataset,
			"state", c.State,
			"column", c.Column,
			"value", c.Value,
		)
	}
}

// Tables holds the mapped rows of the three exports, plus the cells the
// zero policy coerced, keyed by dataset name.
type Tables struct {
	Crashes []domain.CrashRow
	Ages    []domain.AgeRow
	BACs    []domain.BACRow
	Coerced map[string][]*domain.InvalidNumberError
}

// MapExports normalizes and maps the three tab-delimited exports.
func MapExports(raw domain.RawDocuments, policy domain.NumberPolicy) (Tables, error) {
	tables := Tables{Coerced: make(map[string][]*domain.InvalidNumberError, 3)}
	var (
		coerced []*domain.InvalidNumberError
		err     error
	)

	tables.Crashes, coerced, err = mapExport(raw.Crashes, domain.DatasetCrashes, policy, domain.MapCrashRow)
	if err != nil {
		return Tables{}, err
	}
	tables.Coerced[domain.DatasetCrashes] = coerced

	tables.Ages, coerced, err = mapExport(raw.Age, domain.DatasetAge, policy, domain.MapAgeRow)
	if err != nil {
		return Tables{}, err
	}
	tables.Coerced[domain.DatasetAge] = coerced

	tables.BACs, coerced, err = mapExport(raw.BAC, domain.DatasetBAC, policy, domain.MapBACRow)
	if err != nil {
		return Tables{}, err
	}
	tables.Coerced[domain.DatasetBAC] = coerced

	return tables, nil
}

// mapExport normalizes one export and maps every row of it.
func mapExport[T any](doc, dataset string, policy domain.NumberPolicy, mapRow func([]string, domain.NumberPolicy) (T, []*domain.InvalidNumberError, error)) ([]T, []*domain.InvalidNumberError, error) {
	normalized, err := domain.Normalize(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", dataset, err)
	}
	rows, err := domain.ParseRows(normalized)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", dataset, err)
	}
	out, coerced, err := domain.MapRows(rows, policy, mapRow)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", dataset, err)
	}
	return out, coerced, nil
}
