// Package present turns KPI values and pre-aggregated series into
// renderer-neutral figures: gauges, trend lines, bar charts and a bubble map.
//
// Nothing here filters or aggregates; callers pass data already shaped as
// labelled series.
package present

// Kind identifies the shape of a figure.
type Kind string

// Figure kinds.
const (
	KindGauge     Kind = "gauge"
	KindTrend     Kind = "trend"
	KindLine      Kind = "line"
	KindBar       Kind = "bar"
	KindBubbleMap Kind = "bubble_map"
)

// Figure is implemented by every figure type.
type Figure interface {
	Kind() Kind
	FigureTitle() string
}

// Series is a labelled sequence of values. Labels and Values have equal length.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Len returns the number of points.
func (s Series) Len() int {
	return min(len(s.Labels), len(s.Values))
}

// Gauge is a single value on a bounded dial.
type Gauge struct {
	Title string  `json:"title"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	// Goal is the target shown next to the dial, already formatted.
	Goal string `json:"goal"`
}

// Kind implements Figure.
func (Gauge) Kind() Kind { return KindGauge }

// FigureTitle implements Figure.
func (g Gauge) FigureTitle() string { return g.Title }

// Fraction is the position of Value on the dial, clamped to [0, 1].
func (g Gauge) Fraction() float64 {
	span := g.Max - g.Min
	if span <= 0 {
		return 0
	}
	f := (g.Value - g.Min) / span
	return max(0, min(1, f))
}

// OverRange reports whether Value lies outside [Min, Max].
func (g Gauge) OverRange() bool {
	return g.Value < g.Min || g.Value > g.Max
}

// Trend compares an actual series with a goal series.
type Trend struct {
	Title  string `json:"title"`
	Actual Series `json:"actual"`
	Goal   Series `json:"goal"`
}

// Kind implements Figure.
func (Trend) Kind() Kind { return KindTrend }

// FigureTitle implements Figure.
func (t Trend) FigureTitle() string { return t.Title }

// LineChart is a single labelled series.
type LineChart struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Series Series `json:"series"`
}

// Kind implements Figure.
func (LineChart) Kind() Kind { return KindLine }

// FigureTitle implements Figure.
func (l LineChart) FigureTitle() string { return l.Title }

// Bar is one bar of a BarChart.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BarChart is a set of labelled bars.
type BarChart struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// Kind implements Figure.
func (BarChart) Kind() Kind { return KindBar }

// FigureTitle implements Figure.
func (b BarChart) FigureTitle() string { return b.Title }

// MaxValue returns the tallest bar, or 0.
func (b BarChart) MaxValue() float64 {
	var m float64
	for _, bar := range b.Bars {
		m = max(m, bar.Value)
	}
	return m
}

// Bubble is one measurement on the map.
type Bubble struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Value     float64 `json:"value"`
	// Size is the marker radius in points, proportional to Value.
	Size float64 `json:"size"`
	// Intensity is Value normalised to [0, 1] across the map, used for colour.
	Intensity float64 `json:"intensity"`
}

// BubbleMap places sized, coloured markers at coordinates.
type BubbleMap struct {
	Title    string   `json:"title"`
	Bubbles  []Bubble `json:"bubbles"`
	MinValue float64  `json:"min_value"`
	MaxValue float64  `json:"max_value"`
}

// Kind implements Figure.
func (BubbleMap) Kind() Kind { return KindBubbleMap }

// FigureTitle implements Figure.
func (m BubbleMap) FigureTitle() string { return m.Title }

// NamedFigure pairs a figure with its stable identifier (used for file
// names and URLs).
type NamedFigure struct {
	Name   string `json:"name"`
	Figure Figure `json:"figure"`
}
