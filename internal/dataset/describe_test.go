package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/dataset"
)

func TestDescribe(t *testing.T) {
	tbl := &dataset.Table{
		Name: dataset.Fuel,
		Fuel: []dataset.FuelEconomy{
			{Manufacturer: "A", CO2PerMile: 100, MilesPerGallon: 10},
			{Manufacturer: "A", CO2PerMile: 200, MilesPerGallon: 20},
			{Manufacturer: "B", CO2PerMile: 300, MilesPerGallon: 30},
		},
	}

	stats, err := dataset.Describe(tbl)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	co2 := stats[0]
	assert.Equal(t, "co2_per_mile", co2.Column)
	assert.Equal(t, 3, co2.Count)
	assert.InDelta(t, 200.0, co2.Stats["mean"], 1e-9)
	assert.InDelta(t, 100.0, co2.Stats["min"], 1e-9)
	assert.InDelta(t, 300.0, co2.Stats["max"], 1e-9)
	assert.Contains(t, co2.Order, "stddev")

	assert.Equal(t, "miles_per_gallon", stats[1].Column)
	assert.InDelta(t, 20.0, stats[1].Stats["mean"], 1e-9)
}

func TestDescribe_Empty(t *testing.T) {
	stats, err := dataset.Describe(&dataset.Table{Name: dataset.Trips})
	require.NoError(t, err)
	assert.Empty(t, stats)
}
