package presentation

import (
	"fmt"
	"math"
	"strings"
)

const tau = 2 * math.Pi

// PieAngle is the angular extent of one pie slice, in radians measured
// clockwise from twelve o'clock.
type PieAngle struct {
	Start float64 `json:"startAngle"`
	End   float64 `json:"endAngle"`
}

// Pie lays values out around the circle in input order. A zero total gives
// every slice zero width.
func Pie(values []int) []PieAngle {
	total := 0
	for _, v := range values {
		total += v
	}
	k := 0.0
	if total > 0 {
		k = tau / float64(total)
	}

	out := make([]PieAngle, len(values))
	a := 0.0
	for i, v := range values {
		out[i] = PieAngle{Start: a, End: a + float64(v)*k}
		a = out[i].End
	}
	return out
}

// Arc is an annular sector centered on the origin.
type Arc struct {
	Inner float64
	Outer float64
}

// Path returns the SVG path data for the sector, or "" for an empty one.
func (a Arc) Path(p PieAngle) string {
	da := p.End - p.Start
	if da <= 1e-9 || a.Outer <= 0 {
		return ""
	}

	var b strings.Builder
	if da >= tau-1e-9 {
		// Full ring: two half circles per radius.
		fmt.Fprintf(&b, "M0,%sA%s,%s,0,1,1,0,%sA%s,%s,0,1,1,0,%s",
			num(-a.Outer), num(a.Outer), num(a.Outer), num(a.Outer), num(a.Outer), num(a.Outer), num(-a.Outer))
		if a.Inner > 0 {
			fmt.Fprintf(&b, "M0,%sA%s,%s,0,1,0,0,%sA%s,%s,0,1,0,0,%s",
				num(-a.Inner), num(a.Inner), num(a.Inner), num(a.Inner), num(a.Inner), num(a.Inner), num(-a.Inner))
		}
		b.WriteString("Z")
		return b.String()
	}

	large := 0
	if da > math.Pi {
		large = 1
	}
	x0, y0 := point(a.Outer, p.Start)
	x1, y1 := point(a.Outer, p.End)
	fmt.Fprintf(&b, "M%s,%sA%s,%s,0,%d,1,%s,%s", num(x0), num(y0), num(a.Outer), num(a.Outer), large, num(x1), num(y1))
	if a.Inner > 0 {
		x2, y2 := point(a.Inner, p.End)
		x3, y3 := point(a.Inner, p.Start)
		fmt.Fprintf(&b, "L%s,%sA%s,%s,0,%d,0,%s,%s", num(x2), num(y2), num(a.Inner), num(a.Inner), large, num(x3), num(y3))
	} else {
		b.WriteString("L0,0")
	}
	b.WriteString("Z")
	return b.String()
}

// Centroid is the midpoint of the sector, where slice labels go.
func (a Arc) Centroid(p PieAngle) (x, y float64) {
	r := (a.Inner + a.Outer) / 2
	mid := (p.Start+p.End)/2 - math.Pi/2
	return r * math.Cos(mid), r * math.Sin(mid)
}

func point(r, angle float64) (x, y float64) {
	return r * math.Sin(angle), -r * math.Cos(angle)
}

func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalize -0
	}
	return fmt.Sprintf("%g", v)
}
