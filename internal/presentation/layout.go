// Package presentation turns the joined dataset and the boundary document
// into view models for the choropleth map, the age-group donut and the BAC
// bar chart, and holds the dashboard's selection state.
package presentation

// Layout holds the page geometry in pixels.
type Layout struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Margin      float64 `json:"margin"`
	MapHeight   float64 `json:"mapHeight"`
	LegendWidth float64 `json:"legendWidth"`
	DonutHeight float64 `json:"donutHeight"`
	BarHeight   float64 `json:"barHeight"`
}

// DefaultLayout is sized for a 1440px wide screen.
func DefaultLayout() Layout {
	return Layout{
		Width:       1440,
		Height:      750,
		Margin:      25,
		MapHeight:   650,
		LegendWidth: 300,
		DonutHeight: 500,
		BarHeight:   200,
	}
}

// MapWidth is the share of the page given to the map.
func (l Layout) MapWidth() float64 { return l.Width * 0.7 }

// SideWidth is the width of the donut and bar column.
func (l Layout) SideWidth() float64 { return l.Width*0.2 - l.Margin }

// Timings are the transition durations clients animate with, in milliseconds.
type Timings struct {
	InitialDelay int `json:"initialDelayMs"`
	Fade         int `json:"fadeMs"`
	UpdatePhase  int `json:"updatePhaseMs"`
}

// DefaultTimings returns the dashboard's transition timings.
func DefaultTimings() Timings {
	return Timings{InitialDelay: 3000, Fade: 500, UpdatePhase: 375}
}
