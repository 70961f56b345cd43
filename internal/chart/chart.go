// Package chart renders presentation figures to PNG with go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rshade/fleetkpi/internal/present"
)

// ErrUnsupportedFigure is returned for figure types with no renderer.
var ErrUnsupportedFigure = errors.New("unsupported figure type")

// Size is the output image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when a zero Size is passed.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultSize = Size{Width: 800, Height: 480}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

// Palette.
//
//nolint:gochecknoglobals // Read-only colours.
var (
	colorActual    = drawing.ColorFromHex("1f77b4")
	colorGoal      = drawing.ColorFromHex("d62728")
	colorBar       = drawing.ColorFromHex("2ca02c")
	colorRemainder = drawing.ColorFromHex("e0e0e0")
	colorGaugeOK   = drawing.ColorFromHex("2ca02c")
	colorGaugeOver = drawing.ColorFromHex("ff7f0e")
)

// Render writes fig to w as a PNG image.
func Render(w io.Writer, fig present.Figure, size Size) error {
	size = size.orDefault()
	switch f := fig.(type) {
	case present.Gauge:
		return renderGauge(w, f, size)
	case present.Trend:
		return renderTrend(w, f, size)
	case present.LineChart:
		return renderLine(w, f, size)
	case present.BarChart:
		return renderBar(w, f, size)
	case present.BubbleMap:
		return renderBubbleMap(w, f, size)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedFigure, fig)
	}
}

// RenderFile renders fig into path, creating parent directories.
func RenderFile(path string, fig present.Figure, size Size) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = Render(f, fig, size); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

// RenderAll writes every figure to dir as <name>.png and returns the paths.
func RenderAll(dir string, figures []present.NamedFigure, size Size) ([]string, error) {
	paths := make([]string, 0, len(figures))
	for _, nf := range figures {
		path := filepath.Join(dir, nf.Name+".png")
		if err := RenderFile(path, nf.Figure, size); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderGauge(w io.Writer, g present.Gauge, size Size) error {
	frac := g.Fraction()
	fill := colorGaugeOK
	if g.OverRange() {
		fill = colorGaugeOver
	}

	var values []gochart.Value
	if frac > 0 {
		values = append(values, gochart.Value{
			Value: frac,
			Label: fmt.Sprintf("%.1f", g.Value),
			Style: gochart.Style{FillColor: fill},
		})
	}
	if frac < 1 {
		values = append(values, gochart.Value{
			Value: 1 - frac,
			Label: fmt.Sprintf("max %.0f", g.Max),
			Style: gochart.Style{FillColor: colorRemainder},
		})
	}

	title := g.Title
	if g.Goal != "" {
		title = fmt.Sprintf("%s (goal %s)", g.Title, g.Goal)
	}
	donut := gochart.DonutChart{
		Title:  title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
	return donut.Render(gochart.PNG, w)
}

func renderTrend(w io.Writer, t present.Trend, size Size) error {
	labels := t.Actual.Labels
	if len(t.Goal.Labels) > len(labels) {
		labels = t.Goal.Labels
	}
	series := []gochart.Series{
		indexedSeries("Actual", t.Actual, gochart.Style{StrokeColor: colorActual, StrokeWidth: 2}),
		indexedSeries("Goal", t.Goal, gochart.Style{StrokeColor: colorGoal, StrokeWidth: 2, StrokeDashArray: []float64{5, 5}}),
	}
	ch := lineChart(t.Title, "", "", labels, slices.Concat(t.Actual.Values, t.Goal.Values), series, size)
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(gochart.PNG, w)
}

func renderLine(w io.Writer, l present.LineChart, size Size) error {
	series := []gochart.Series{
		indexedSeries(l.YLabel, l.Series, gochart.Style{StrokeColor: colorActual, StrokeWidth: 2, DotWidth: 4, DotColor: colorActual}),
	}
	ch := lineChart(l.Title, l.XLabel, l.YLabel, l.Series.Labels, l.Series.Values, series, size)
	return ch.Render(gochart.PNG, w)
}

// lineChart lays labelled series out on an index X axis with one tick per label.
func lineChart(title, xName, yName string, labels []string, values []float64, series []gochart.Series, size Size) gochart.Chart {
	ticks := make([]gochart.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = gochart.Tick{Value: float64(i), Label: l}
	}
	n := math.Max(float64(len(labels)), 1)
	lo, hi := valueRange(values)
	return gochart.Chart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  xName,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: n - 0.5},
		},
		YAxis: gochart.YAxis{
			Name:  yName,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
}

// indexedSeries maps a labelled series onto X = 0..n-1. go-chart needs two
// points per series, so empty and single-point series are padded.
func indexedSeries(name string, s present.Series, style gochart.Style) gochart.ContinuousSeries {
	n := s.Len()
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range n {
		xs[i] = float64(i)
		ys[i] = s.Values[i]
	}
	switch n {
	case 0:
		xs, ys = []float64{0, 0.0001}, []float64{0, 0}
		style.StrokeColor = drawing.ColorTransparent
		style.DotColor = drawing.ColorTransparent
	case 1:
		xs = append(xs, xs[0]+0.0001)
		ys = append(ys, ys[0])
	}
	return gochart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: style}
}

// valueRange returns a padded, non-degenerate Y range that includes 0.
func valueRange(values []float64) (lo, hi float64) {
	lo, hi = 0, 0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.1
	if lo < 0 {
		lo -= pad
	}
	return lo, hi + pad
}

func renderBar(w io.Writer, b present.BarChart, size Size) error {
	bars := make([]gochart.Value, 0, len(b.Bars))
	values := make([]float64, 0, len(b.Bars))
	for _, bar := range b.Bars {
		bars = append(bars, gochart.Value{
			Value: bar.Value,
			Label: bar.Label,
			Style: gochart.Style{FillColor: colorBar, StrokeColor: colorBar},
		})
		values = append(values, bar.Value)
	}
	if len(bars) == 0 {
		bars = append(bars, gochart.Value{Value: 0, Label: "no data"})
	}
	lo, hi := valueRange(values)

	barWidth := max(size.Width/(2*len(bars)+1), 10)
	bc := gochart.BarChart{
		Title:      b.Title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		YAxis: gochart.YAxis{
			Name:  b.YLabel,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
	return bc.Render(gochart.PNG, w)
}

func renderBubbleMap(w io.Writer, m present.BubbleMap, size Size) error {
	bubbles := m.Bubbles
	xs := make([]float64, len(bubbles))
	ys := make([]float64, len(bubbles))
	for i, b := range bubbles {
		xs[i] = b.Longitude
		ys[i] = b.Latitude
	}

	style := gochart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidthProvider: func(_, _ gochart.Range, index int, _, _ float64) float64 {
			if index < len(bubbles) {
				return bubbles[index].Size
			}
			return present.MinBubbleSize
		},
		DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
			if index < len(bubbles) {
				return heatColor(bubbles[index].Intensity)
			}
			return colorRemainder
		},
	}
	if len(bubbles) == 0 {
		xs, ys = []float64{0, 1}, []float64{0, 1}
		style.DotWidthProvider = nil
		style.DotColorProvider = nil
	}

	xlo, xhi := spanRange(xs)
	ylo, yhi := spanRange(ys)
	ch := gochart.Chart{
		Title:      m.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      gochart.XAxis{Name: "Longitude", Range: &gochart.ContinuousRange{Min: xlo, Max: xhi}},
		YAxis:      gochart.YAxis{Name: "Latitude", Range: &gochart.ContinuousRange{Min: ylo, Max: yhi}},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: "PM2.5", XValues: xs, YValues: ys, Style: style},
		},
	}
	return ch.Render(gochart.PNG, w)
}

// spanRange pads the min/max of values by 10%, or by 0.05 when degenerate.
func spanRange(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 0.05
	}
	return lo - pad, hi + pad
}

// heatColor maps intensity in [0, 1] from yellow to red.
func heatColor(intensity float64) drawing.Color {
	i := math.Max(0, math.Min(1, intensity))
	return drawing.Color{R: 255, G: uint8(220 * (1 - i)), B: 0, A: 200}
}
