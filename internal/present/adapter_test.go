package present_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/engine"
	"github.com/rshade/fleetkpi/internal/greenops"
	"github.com/rshade/fleetkpi/internal/present"
)

func TestShowKPI_DefaultsToPlaceholder(t *testing.T) {
	gauge, trend := present.ShowKPI("Cost savings", 35, 100, "20%", nil, nil)

	assert.Equal(t, present.Gauge{Title: "Cost savings", Value: 35, Min: 0, Max: 100, Goal: "20%"}, gauge)
	require.Equal(t, 7, trend.Actual.Len())
	assert.Equal(t, "Monday", trend.Actual.Labels[0])
	assert.Equal(t, "Sunday", trend.Actual.Labels[6])
	assert.Equal(t, []float64{0.03, 0.04, 0.02, 0.05, 0.05, 0.03, 0.02}, trend.Actual.Values)
	assert.Equal(t, []float64{0.02, 0.02, 0.02, 0.02, 0.02, 0.02, 0.02}, trend.Goal.Values)
	assert.Equal(t, trend.Actual.Labels, trend.Goal.Labels)
}

func TestShowKPI_SuppliedSeries(t *testing.T) {
	actual := present.Series{Labels: []string{"Monday", "Friday"}, Values: []float64{120, 80}}
	goal := present.ConstantGoal(actual.Labels, 95)

	_, trend := present.ShowKPI("Profitability", 95, 1500, "1,500", &actual, &goal)

	assert.Equal(t, actual, trend.Actual)
	assert.Equal(t, []float64{95, 95}, trend.Goal.Values)
}

func TestShowKPI_ValueNotClamped(t *testing.T) {
	gauge, _ := present.ShowKPI("Avoided emissions", 1200, 1000, "1000%", nil, nil)

	assert.InDelta(t, 1200.0, gauge.Value, 1e-9)
	assert.True(t, gauge.OverRange())
	assert.InDelta(t, 1.0, gauge.Fraction(), 1e-9)

	neg := present.Gauge{Value: -5, Max: 100}
	assert.InDelta(t, 0.0, neg.Fraction(), 1e-9)
	assert.InDelta(t, 0.0, present.Gauge{Value: 5}.Fraction(), 1e-9, "zero span")
}

func TestDefaultTrend_ReturnsFreshSlices(t *testing.T) {
	a := present.DefaultTrend()
	a.Labels[0] = "Funday"
	assert.Equal(t, "Monday", present.DefaultTrend().Labels[0])
	assert.Equal(t, "Monday", engine.Weekdays[0])
}

func TestSeriesFromTrend(t *testing.T) {
	s := present.SeriesFromTrend([]engine.TrendPoint{{Label: "Monday", Value: 1}, {Label: "Tuesday", Value: 2}})
	assert.Equal(t, present.Series{Labels: []string{"Monday", "Tuesday"}, Values: []float64{1, 2}}, s)
}

func TestCategoryEmissionsChart(t *testing.T) {
	chart := present.CategoryEmissionsChart([]greenops.CategoryStat{
		{Category: greenops.CategoryConventional, MeanCO2: 320},
		{Category: greenops.CategoryHybrid, MeanCO2: 110},
	})

	assert.Equal(t, present.KindLine, chart.Kind())
	assert.Equal(t, []string{"conventional", "hybrid"}, chart.Series.Labels)
	assert.Equal(t, []float64{320, 110}, chart.Series.Values)
}

func TestBarCharts(t *testing.T) {
	cmp := present.CostComparisonChart(engine.CostSavingsResult{ConventionalMean: 1000, ElectricMean: 400})
	assert.Equal(t, []present.Bar{{Label: "Conventional", Value: 1000}, {Label: "Electric", Value: 400}}, cmp.Bars)
	assert.InDelta(t, 1000.0, cmp.MaxValue(), 1e-9)

	inc := present.IncomePerPassengerChart([]engine.PassengerIncome{{PassengerCount: 1, MeanFare: 12.5}, {PassengerCount: 2, MeanFare: 15}})
	assert.Equal(t, "1", inc.Bars[0].Label)
	assert.Equal(t, present.KindBar, inc.Kind())

	fuel := present.FuelTypeCostChart([]engine.FuelTypeCost{{FuelType: "Diesel", MeanTotalCost: 900}})
	assert.Equal(t, []present.Bar{{Label: "Diesel", Value: 900}}, fuel.Bars)
}

func TestPM25Map(t *testing.T) {
	m := present.PM25Map([]dataset.AirQuality{
		{GeoPlaceName: "Chelsea", Latitude: 40.75, Longitude: -73.99, DataValue: 6},
		{GeoPlaceName: "Harlem", Latitude: 40.81, Longitude: -73.94, DataValue: 10},
		{GeoPlaceName: "Flushing", Latitude: 40.76, Longitude: -73.82, DataValue: 8},
	}, 2021)

	assert.Equal(t, "PM2.5 concentration (2021)", m.Title)
	require.Len(t, m.Bubbles, 3)
	assert.InDelta(t, present.MinBubbleSize, m.Bubbles[0].Size, 1e-9)
	assert.InDelta(t, present.MaxBubbleSize, m.Bubbles[1].Size, 1e-9)
	assert.InDelta(t, 0.5, m.Bubbles[2].Intensity, 1e-9)
	assert.InDelta(t, 6.0, m.MinValue, 1e-9)
	assert.InDelta(t, 10.0, m.MaxValue, 1e-9)
}

func TestPM25Map_SingleValueAndEmpty(t *testing.T) {
	m := present.PM25Map([]dataset.AirQuality{{DataValue: 7}, {DataValue: 7}}, 2020)
	assert.InDelta(t, 0.5, m.Bubbles[0].Intensity, 1e-9)

	empty := present.PM25Map(nil, 2020)
	assert.Empty(t, empty.Bubbles)
	assert.Equal(t, present.KindBubbleMap, empty.Kind())
}
