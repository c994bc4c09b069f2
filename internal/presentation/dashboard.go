package presentation

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
)

// ErrUnknownFeature is returned for a boundary feature whose code does not
// map to a record of the dataset.
var ErrUnknownFeature = errors.New("unknown feature")

const (
	mapColorFrom = "#FFF3F9"
	mapColorTo   = "#FF0073"
	barColor     = "#FAC857"
)

var donutPalette = []string{
	"#E57661", "#F0433A", "#C9283E", "#7B2A3B", "#86DDB2", "#ADD96C",
	"#4EA64B", "#428C5C", "#165873", "#124C59", "#3E1B3C", "#AAA",
}

// Dashboard is a rendered dashboard: the immutable dataset and geography,
// the feature-to-record lookup and the current selection.
type Dashboard struct {
	dataset   *domain.Dataset
	geo       *domain.Geography
	layout    Layout
	timings   Timings
	colors    ColorScale
	features  []featureRef
	selection *Selection
}

type featureRef struct {
	id    string
	index int
}

// Render prepares a dashboard for the dataset and geography. Every state
// feature of the geography must map to the record of that same state;
// otherwise the error wraps ErrUnknownFeature or
// domain.ErrStateIdentityMismatch.
func Render(ds *domain.Dataset, geo *domain.Geography, layout Layout) (*Dashboard, error) {
	if ds == nil || geo == nil {
		return nil, errors.New("render: dataset and geography are required")
	}

	colors, err := NewColorScale(mapColorFrom, mapColorTo, ds.MaxCrashes())
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	d := &Dashboard{
		dataset:   ds,
		geo:       geo,
		layout:    layout,
		timings:   DefaultTimings(),
		colors:    colors,
		selection: NewSelection(),
	}
	for _, id := range geo.StateIDs() {
		idx, err := d.indexFor(id)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		d.features = append(d.features, featureRef{id: id, index: idx})
	}
	return d, nil
}

// Dataset returns the dataset the dashboard was rendered from.
func (d *Dashboard) Dataset() *domain.Dataset { return d.dataset }

// Geography returns the boundary document.
func (d *Dashboard) Geography() *domain.Geography { return d.geo }

// Layout returns the page geometry.
func (d *Dashboard) Layout() Layout { return d.layout }

// Selected returns the current selection index.
func (d *Dashboard) Selected() int { return d.selection.Current() }

// Select makes the record behind a boundary feature the current selection
// and returns its index.
func (d *Dashboard) Select(featureID string) (int, error) {
	idx, err := d.indexFor(featureID)
	if err != nil {
		return 0, err
	}
	d.selection.Set(idx)
	return idx, nil
}

// Reset returns to the national view.
func (d *Dashboard) Reset() { d.selection.Reset() }

// View builds the view for the current selection.
func (d *Dashboard) View() View {
	v, err := d.ViewAt(d.selection.Current())
	if err != nil {
		// Unreachable: Select validates before storing.
		v, _ = d.ViewAt(WholeCountry)
	}
	return v
}

// ViewFor builds the view for a boundary feature without changing the
// selection.
func (d *Dashboard) ViewFor(featureID string) (View, error) {
	idx, err := d.indexFor(featureID)
	if err != nil {
		return View{}, err
	}
	return d.ViewAt(idx)
}

// ViewAt builds the view for a record index or WholeCountry.
func (d *Dashboard) ViewAt(index int) (View, error) {
	rec, err := d.record(index)
	if err != nil {
		return View{}, err
	}
	return View{
		Year:     d.dataset.Year(),
		Selected: index,
		Record:   rec,
		Map:      d.mapView(index),
		Donut:    d.donutView(rec),
		Bar:      d.barView(rec),
		Timings:  d.timings,
	}, nil
}

func (d *Dashboard) record(index int) (domain.StateRecord, error) {
	if index == WholeCountry {
		return d.dataset.National(), nil
	}
	rec, ok := d.dataset.At(index)
	if !ok {
		return domain.StateRecord{}, fmt.Errorf("%w: record %d out of range", ErrUnknownFeature, index)
	}
	return rec, nil
}

func (d *Dashboard) indexFor(featureID string) (int, error) {
	idx, ok := domain.IndexForFIPS(featureID)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, featureID)
	}
	rec, ok := d.dataset.At(idx)
	if !ok {
		return 0, fmt.Errorf("%w: %q maps to record %d of %d", ErrUnknownFeature, featureID, idx, d.dataset.Len())
	}
	// The dataset keeps the crash export's row order, so a reordered or
	// short export would put another state at this position.
	if want, _ := domain.AbbreviationForFIPS(featureID); rec.Abbreviation != want {
		return 0, fmt.Errorf("%w: feature %q (%s) maps to record %d, which is %q",
			domain.ErrStateIdentityMismatch, featureID, want, idx, rec.State)
	}
	return idx, nil
}
