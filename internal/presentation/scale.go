package presentation

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorScale maps [0, Max] linearly onto a two-color RGB ramp.
type ColorScale struct {
	From string
	To   string
	Max  int

	from, to colorful.Color
}

// NewColorScale builds a scale between two hex colors (#rgb or #rrggbb).
func NewColorScale(from, to string, maxValue int) (ColorScale, error) {
	a, err := colorful.Hex(from)
	if err != nil {
		return ColorScale{}, fmt.Errorf("color %q: %w", from, err)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return ColorScale{}, fmt.Errorf("color %q: %w", to, err)
	}
	return ColorScale{From: from, To: to, Max: maxValue, from: a, to: b}, nil
}

// Color returns the interpolated color for v as lowercase #rrggbb. Values
// outside [0, Max] are clamped.
func (s ColorScale) Color(v int) string {
	t := 0.0
	if s.Max > 0 {
		t = math.Max(0, math.Min(1, float64(v)/float64(s.Max)))
	}
	return s.from.BlendRgb(s.to, t).Clamped().Hex()
}

// BandScale is a rounded band scale over an ordinal domain with equal inner
// and outer padding, centered in its range.
type BandScale struct {
	domain    []string
	start     float64
	step      float64
	bandwidth float64
}

// NewBandScale lays domain out over [0, width].
func NewBandScale(domain []string, width, padding float64) BandScale {
	n := float64(len(domain))
	step := math.Floor(width / math.Max(1, n-padding+padding*2))
	start := math.Round((width - step*(n-padding)) * 0.5)
	return BandScale{
		domain:    domain,
		start:     start,
		step:      step,
		bandwidth: math.Round(step * (1 - padding)),
	}
}

// X returns the left edge of the band for key, or false for keys outside
// the domain.
func (b BandScale) X(key string) (float64, bool) {
	for i, d := range b.domain {
		if d == key {
			return b.start + b.step*float64(i), true
		}
	}
	return 0, false
}

// Bandwidth is the width of each band.
func (b BandScale) Bandwidth() float64 { return b.bandwidth }

// yScale maps [0, maxValue] onto [height, 0].
func yScale(v, maxValue int, height float64) float64 {
	if maxValue <= 0 {
		return height
	}
	return height - float64(v)/float64(maxValue)*height
}
