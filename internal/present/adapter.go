package present

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/engine"
	"github.com/rshade/fleetkpi/internal/greenops"
)

// Bubble marker radius bounds, in points.
const (
	MinBubbleSize = 4.0
	MaxBubbleSize = 24.0
)

// placeholderGoal is the per-day goal of the placeholder trend.
const placeholderGoal = 0.02

// DefaultTrend returns the placeholder weekly series shown when a KPI has no
// trend data of its own.
func DefaultTrend() Series {
	return Series{
		Labels: append([]string(nil), engine.Weekdays...),
		Values: []float64{0.03, 0.04, 0.02, 0.05, 0.05, 0.03, 0.02},
	}
}

// DefaultTrendGoal returns the goal line matching DefaultTrend.
func DefaultTrendGoal() Series {
	return ConstantGoal(engine.Weekdays, placeholderGoal)
}

// ConstantGoal repeats value for every label.
func ConstantGoal(labels []string, value float64) Series {
	s := Series{
		Labels: append([]string(nil), labels...),
		Values: make([]float64, len(labels)),
	}
	for i := range s.Values {
		s.Values[i] = value
	}
	return s
}

// ShowKPI builds the gauge and the actual-vs-goal trend of one KPI.
// A nil trend or trendGoal falls back to the weekly placeholder series.
// The gauge is bounded to [0, gaugeMax]; the value itself is not clamped.
func ShowKPI(title string, value, gaugeMax float64, goal string, trend, trendGoal *Series) (Gauge, Trend) {
	actual := DefaultTrend()
	if trend != nil {
		actual = *trend
	}
	target := DefaultTrendGoal()
	if trendGoal != nil {
		target = *trendGoal
	}

	g := Gauge{
		Title: title,
		Value: value,
		Min:   0,
		Max:   gaugeMax,
		Goal:  goal,
	}
	t := Trend{
		Title:  title + " trend",
		Actual: actual,
		Goal:   target,
	}
	return g, t
}

// SeriesFromTrend converts engine trend points to a Series.
func SeriesFromTrend(points []engine.TrendPoint) Series {
	s := Series{
		Labels: make([]string, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		s.Labels[i] = p.Label
		s.Values[i] = p.Value
	}
	return s
}

// CategoryEmissionsChart plots the mean CO2 per mile of each category.
func CategoryEmissionsChart(summary []greenops.CategoryStat) LineChart {
	s := Series{
		Labels: make([]string, len(summary)),
		Values: make([]float64, len(summary)),
	}
	for i, c := range summary {
		s.Labels[i] = string(c.Category)
		s.Values[i] = c.MeanCO2
	}
	return LineChart{
		Title:  "CO2 emissions by vehicle category",
		XLabel: "Category",
		YLabel: "Mean CO2 (g/mi)",
		Series: s,
	}
}

// CostComparisonChart compares mean conventional and electric costs.
func CostComparisonChart(res engine.CostSavingsResult) BarChart {
	return BarChart{
		Title:  "Conventional vs electric cost",
		XLabel: "Vehicle type",
		YLabel: "Mean total cost",
		Bars: []Bar{
			{Label: "Conventional", Value: res.ConventionalMean},
			{Label: "Electric", Value: res.ElectricMean},
		},
	}
}

// IncomePerPassengerChart plots mean fare per passenger count.
func IncomePerPassengerChart(groups []engine.PassengerIncome) BarChart {
	bars := make([]Bar, len(groups))
	for i, g := range groups {
		bars[i] = Bar{Label: strconv.Itoa(g.PassengerCount), Value: g.MeanFare}
	}
	return BarChart{
		Title:  "Income per passenger",
		XLabel: "Passengers",
		YLabel: "Mean fare",
		Bars:   bars,
	}
}

// FuelTypeCostChart plots mean total cost per fuel type.
func FuelTypeCostChart(groups []engine.FuelTypeCost) BarChart {
	bars := make([]Bar, len(groups))
	for i, g := range groups {
		bars[i] = Bar{Label: g.FuelType, Value: g.MeanTotalCost}
	}
	return BarChart{
		Title:  "Average cost per fuel type",
		XLabel: "Fuel type",
		YLabel: "Mean total cost",
		Bars:   bars,
	}
}

// PM25Map builds a bubble map of PM2.5 measurements. Marker size and colour
// intensity scale linearly between the smallest and largest value shown.
func PM25Map(points []dataset.AirQuality, year int) BubbleMap {
	m := BubbleMap{
		Title:   fmt.Sprintf("PM2.5 concentration (%d)", year),
		Bubbles: make([]Bubble, len(points)),
	}
	if len(points) == 0 {
		return m
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.DataValue)
		hi = math.Max(hi, p.DataValue)
	}
	m.MinValue, m.MaxValue = lo, hi

	for i, p := range points {
		intensity := 0.5
		if hi > lo {
			intensity = (p.DataValue - lo) / (hi - lo)
		}
		m.Bubbles[i] = Bubble{
			Label:     p.GeoPlaceName,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Value:     p.DataValue,
			Size:      MinBubbleSize + intensity*(MaxBubbleSize-MinBubbleSize),
			Intensity: intensity,
		}
	}
	return m
}
