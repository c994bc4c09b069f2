package presentation

import (
	"strconv"

	"github.com/couchcryptid/fars-dashboard/internal/domain"
)

// View is everything a client needs to draw the dashboard for one
// selection.
type View struct {
	Year     int                `json:"year"`
	Selected int                `json:"selected"`
	Record   domain.StateRecord `json:"record"`
	Map      MapView            `json:"map"`
	Donut    DonutView          `json:"donut"`
	Bar      BarView            `json:"bar"`
	Timings  Timings            `json:"timings"`
}

// MapView is the choropleth data. It carries no geometry: clients draw each
// feature's boundary from Dashboard.Geography (raw TopoJSON) scaled by
// Scale, and fill it with Fill.
type MapView struct {
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Scale    float64      `json:"scale"`
	Features []MapFeature `json:"features"`
	Legend   MapLegend    `json:"legend"`
}

// MapFeature is one state on the map.
type MapFeature struct {
	ID           string      `json:"id"`
	Index        int         `json:"index"`
	State        string      `json:"state"`
	Abbreviation string      `json:"abbreviation"`
	TotalCrashes int         `json:"totalCrashes"`
	Fill         string      `json:"fill"`
	DelayMS      int         `json:"delayMs"`
	Selected     bool        `json:"selected"`
	Centroid     *domain.Geo `json:"centroid,omitempty"`
}

// MapLegend is the gradient bar under the map.
type MapLegend struct {
	Label string  `json:"label"`
	Width float64 `json:"width"`
	Y     float64 `json:"y"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

// DonutView is the fatalities-by-age-group donut.
type DonutView struct {
	X                 float64      `json:"x"`
	Y                 float64      `json:"y"`
	Width             float64      `json:"width"`
	Height            float64      `json:"height"`
	OuterRadius       float64      `json:"outerRadius"`
	InnerRadius       float64      `json:"innerRadius"`
	Title             string       `json:"title"`
	CrashesCaption    string       `json:"crashesCaption"`
	FatalitiesCaption string       `json:"fatalitiesCaption"`
	Slices            []DonutSlice `json:"slices"`
	LegendTitle       string       `json:"legendTitle"`
	LegendY           float64      `json:"legendY"`
	Legend            []LegendItem `json:"legend"`
}

// DonutSlice is one age group. Coordinates are relative to the donut center.
type DonutSlice struct {
	Label  string   `json:"label"`
	Value  int      `json:"value"`
	Angle  PieAngle `json:"angle"`
	Color  string   `json:"color"`
	Path   string   `json:"path"`
	Text   string   `json:"text"`
	LabelX float64  `json:"labelX"`
	LabelY float64  `json:"labelY"`
}

// LegendItem is a color swatch with its label.
type LegendItem struct {
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	LabelX float64 `json:"labelX"`
	LabelY float64 `json:"labelY"`
}

// BarView is the fatalities-by-BAC bar chart.
type BarView struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	XLabel  string  `json:"xLabel"`
	YLabel  string  `json:"yLabel"`
	YMax    int     `json:"yMax"`
	Color   string  `json:"color"`
	Bars    []Bar   `json:"bars"`
	YTicks  []Tick  `json:"yTicks"`
	Padding float64 `json:"padding"`
}

// Bar is one BAC level.
type Bar struct {
	Level  string  `json:"level"`
	Value  int     `json:"value"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Tick is a y-axis tick.
type Tick struct {
	Value int     `json:"value"`
	Y     float64 `json:"y"`
}

const (
	barPadding    = 0.25
	legendSwatch  = 25
	legendRowStep = 15
	yTickCount    = 5
)

func (d *Dashboard) mapView(selected int) MapView {
	l := d.layout
	features := make([]MapFeature, 0, len(d.features))
	for _, f := range d.features {
		rec, _ := d.dataset.At(f.index)
		features = append(features, MapFeature{
			ID:           f.id,
			Index:        f.index,
			State:        rec.State,
			Abbreviation: rec.Abbreviation,
			TotalCrashes: rec.TotalCrashes,
			Fill:         d.colors.Color(rec.TotalCrashes),
			DelayMS:      rec.TotalCrashes,
			Selected:     f.index == selected,
			Centroid:     rec.Centroid,
		})
	}
	return MapView{
		X:        l.Margin,
		Y:        l.Margin,
		Width:    l.MapWidth(),
		Height:   l.MapHeight,
		Scale:    l.MapWidth() / d.geo.Width(),
		Features: features,
		Legend: MapLegend{
			Label: "Total crashes",
			Width: l.LegendWidth,
			Y:     l.MapHeight + 50,
			Min:   0,
			Max:   d.colors.Max,
			From:  d.colors.Color(0),
			To:    d.colors.Color(d.colors.Max),
		},
	}
}

func (d *Dashboard) donutView(rec domain.StateRecord) DonutView {
	l := d.layout
	width := l.SideWidth()
	outer := width / 2
	arc := Arc{Inner: outer / 1.5, Outer: outer}

	values := make([]int, len(rec.Fatalities))
	for i, f := range rec.Fatalities {
		values[i] = f.Value
	}
	angles := Pie(values)

	slices := make([]DonutSlice, len(rec.Fatalities))
	legend := make([]LegendItem, len(rec.Fatalities))
	for i, f := range rec.Fatalities {
		color := donutPalette[i%len(donutPalette)]
		x, y := arc.Centroid(angles[i])
		text := ""
		if f.Value != 0 {
			text = strconv.Itoa(f.Value)
		}
		slices[i] = DonutSlice{
			Label:  f.AgeGroup,
			Value:  f.Value,
			Angle:  angles[i],
			Color:  color,
			Path:   arc.Path(angles[i]),
			Text:   text,
			LabelX: x,
			LabelY: y,
		}

		// Two columns: even groups on the left, odd groups beside them.
		lx, ly := 0.0, outer*2+50+float64(i*legendRowStep)
		if i%2 == 1 {
			lx = width / 2
			ly -= legendRowStep
		}
		legend[i] = LegendItem{
			Label:  f.AgeGroup,
			Color:  color,
			X:      lx,
			Y:      ly,
			Size:   legendSwatch,
			LabelX: lx + 30,
			LabelY: ly + 15,
		}
	}

	return DonutView{
		X:                 l.Width - width - l.Margin,
		Y:                 0,
		Width:             width,
		Height:            l.DonutHeight,
		OuterRadius:       arc.Outer,
		InnerRadius:       arc.Inner,
		Title:             rec.State,
		CrashesCaption:    "Crashes: " + strconv.Itoa(rec.TotalCrashes),
		FatalitiesCaption: "Fatalities: " + strconv.Itoa(rec.TotalFatalities),
		Slices:            slices,
		LegendTitle:       "Fatalities per age group",
		LegendY:           outer*2 + 30,
		Legend:            legend,
	}
}

func (d *Dashboard) barView(rec domain.StateRecord) BarView {
	l := d.layout
	width := l.SideWidth()
	height := l.BarHeight

	levels := make([]string, len(rec.BACLevels))
	for i, b := range rec.BACLevels {
		levels[i] = b.Level
	}
	band := NewBandScale(levels, width, barPadding)

	bars := make([]Bar, len(rec.BACLevels))
	for i, b := range rec.BACLevels {
		x, _ := band.X(b.Level)
		y := yScale(b.Value, rec.TotalFatalities, height)
		bars[i] = Bar{
			Level:  b.Level,
			Value:  b.Value,
			X:      x,
			Y:      y,
			Width:  band.Bandwidth(),
			Height: height - y,
		}
	}

	return BarView{
		X:       l.Width - width - l.Margin,
		Y:       l.DonutHeight + 10,
		Width:   width,
		Height:  height,
		XLabel:  "Blood Alcohol Concentration",
		YLabel:  "Fatalities",
		YMax:    rec.TotalFatalities,
		Color:   barColor,
		Bars:    bars,
		YTicks:  ticks(rec.TotalFatalities, height),
		Padding: barPadding,
	}
}

// ticks spreads yTickCount+1 evenly spaced ticks over [0, maxValue].
func ticks(maxValue int, height float64) []Tick {
	if maxValue <= 0 {
		return []Tick{{Value: 0, Y: height}}
	}
	out := make([]Tick, 0, yTickCount+1)
	for i := 0; i <= yTickCount; i++ {
		v := maxValue * i / yTickCount
		out = append(out, Tick{Value: v, Y: yScale(v, maxValue, height)})
	}
	return out
}
