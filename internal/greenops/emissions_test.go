package greenops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/fleetkpi/internal/config"

	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/greenops"
)

func TestAvoidedEmissions(t *testing.T) {
	params := greenops.DefaultParams()

	tests := []struct {
		name         string
		records      []dataset.FuelEconomy
		manufacturer string
		minMileage   float64
		maxMileage   float64
		want         float64
	}{
		{
			name: "electric and conventional",
			records: []dataset.FuelEconomy{
				{Manufacturer: "A", CO2PerMile: -10, MilesPerGallon: 50},
				{Manufacturer: "A", CO2PerMile: 250, MilesPerGallon: 30},
			},
			manufacturer: "A",
			maxMileage:   100,
			// max=250, electric reduction (250-110)/250=0.56, total mpg 80.
			want: 0.56 * 50 / 80 * 100,
		},
		{
			name: "hybrid contribution",
			records: []dataset.FuelEconomy{
				{Manufacturer: "A", CO2PerMile: 100, MilesPerGallon: 40},
				{Manufacturer: "A", CO2PerMile: 500, MilesPerGallon: 20},
			},
			manufacturer: "A",
			maxMileage:   100,
			// max=500, hybrid reduction (500-300)/500=0.4, total 60.
			want: 0.4 * 40 / 60 * 100,
		},
		{
			name: "no records match manufacturer",
			records: []dataset.FuelEconomy{
				{Manufacturer: "A", CO2PerMile: 0, MilesPerGallon: 50},
			},
			manufacturer: "B",
			maxMileage:   100,
			want:         0,
		},
		{
			name: "mileage window excludes all",
			records: []dataset.FuelEconomy{
				{Manufacturer: "A", CO2PerMile: 0, MilesPerGallon: 50},
				{Manufacturer: "A", CO2PerMile: 300, MilesPerGallon: 20},
			},
			manufacturer: "A",
			minMileage:   60,
			maxMileage:   70,
			want:         0,
		},
		{
			name: "zero maximum guards division",
			records: []dataset.FuelEconomy{
				{Manufacturer: "A", CO2PerMile: 0, MilesPerGallon: 50},
			},
			manufacturer: "A",
			maxMileage:   100,
			want:         0,
		},
		{
			name: "only conventional records",
			records: []dataset.FuelEconomy{
				{Manufacturer: "A", CO2PerMile: 250, MilesPerGallon: 30},
				{Manufacturer: "A", CO2PerMile: 400, MilesPerGallon: 20},
				{Manufacturer: "B", CO2PerMile: 0, MilesPerGallon: 60},
			},
			manufacturer: "A",
			maxMileage:   100,
			// total mpg is 50 but no record earns a reduction.
			want: 0,
		},
		{
			name:         "empty dataset",
			manufacturer: "A",
			maxMileage:   100,
			want:         0,
		},
		{
			name: "negative result is not clamped",
			records: []dataset.FuelEconomy{
				{Manufacturer: "A", CO2PerMile: 150, MilesPerGallon: 10},
				{Manufacturer: "B", CO2PerMile: 201, MilesPerGallon: 10},
			},
			manufacturer: "A",
			maxMileage:   100,
			// max=201, hybrid reduction (201-350)/201, only hybrid mpg.
			want: (201.0 - 350.0) / 201.0 * 10 / 10 * 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := greenops.AvoidedEmissions(tt.records, tt.manufacturer, tt.minMileage, tt.maxMileage, params)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAvoidedEmissions_MaxOverUnfilteredData(t *testing.T) {
	records := []dataset.FuelEconomy{
		{Manufacturer: "A", CO2PerMile: 0, MilesPerGallon: 100},
		{Manufacturer: "B", CO2PerMile: 400, MilesPerGallon: 10},
	}

	res := greenops.ComputeAvoidedEmissions(records, "A", 0, 1000, greenops.DefaultParams())

	assert.InDelta(t, 400.0, res.MaxCO2, 1e-9)
	assert.Equal(t, 1, res.Matched)
	assert.InDelta(t, 0.7, res.ElectricReduction, 1e-9)
	assert.InDelta(t, 70.0, res.Percent, 1e-9)
}

func TestAvoidedEmissions_MileageBoundsInclusive(t *testing.T) {
	records := []dataset.FuelEconomy{
		{Manufacturer: "A", CO2PerMile: 0, MilesPerGallon: 10},
		{Manufacturer: "A", CO2PerMile: 300, MilesPerGallon: 20},
	}

	res := greenops.ComputeAvoidedEmissions(records, "A", 10, 20, greenops.DefaultParams())

	assert.Equal(t, 2, res.Matched)
	assert.InDelta(t, 30.0, res.TotalMPG(), 1e-9)
}

func TestCategorySummary(t *testing.T) {
	records := []dataset.FuelEconomy{
		{Manufacturer: "A", CO2PerMile: 300, MilesPerGallon: 20},
		{Manufacturer: "B", CO2PerMile: 0, MilesPerGallon: 100},
		{Manufacturer: "A", CO2PerMile: 100, MilesPerGallon: 40},
		{Manufacturer: "C", CO2PerMile: 500, MilesPerGallon: 10},
	}

	got := greenops.CategorySummary(records, greenops.DefaultThresholds())

	assert.Equal(t, []greenops.CategoryStat{
		{Category: greenops.CategoryConventional, MeanCO2: 400, TotalMPG: 30, Count: 2},
		{Category: greenops.CategoryElectric, MeanCO2: 0, TotalMPG: 100, Count: 1},
		{Category: greenops.CategoryHybrid, MeanCO2: 100, TotalMPG: 40, Count: 1},
	}, got)
}

func TestCategorySummary_OnlyPresentCategories(t *testing.T) {
	got := greenops.CategorySummary([]dataset.FuelEconomy{{CO2PerMile: 50, MilesPerGallon: 5}}, greenops.DefaultThresholds())

	assert.Len(t, got, 1)
	assert.Equal(t, greenops.CategoryHybrid, got[0].Category)
	assert.Empty(t, greenops.CategorySummary(nil, greenops.DefaultThresholds()))
}

func TestDefaultParams_MatchConfigDefaults(t *testing.T) {
	kpi := config.DefaultKPIConfig()
	p := greenops.DefaultParams()

	assert.InDelta(t, kpi.Categories.ElectricMaxCO2, p.Thresholds.ElectricMax, 1e-9)
	assert.InDelta(t, kpi.Categories.HybridMaxCO2, p.Thresholds.HybridMax, 1e-9)
	assert.InDelta(t, kpi.Offsets.Electric, p.Offsets.Electric, 1e-9)
	assert.InDelta(t, kpi.Offsets.Hybrid, p.Offsets.Hybrid, 1e-9)
}
