package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/engine"
)

func TestFilterTripsByDate_InclusiveWholeEndDay(t *testing.T) {
	late := time.Date(2024, time.January, 3, 23, 59, 0, 0, time.UTC)
	trips := []dataset.Trip{
		trip(1, 1, 1),
		trip(2, 1, 1),
		{PickupDatetime: late},
		trip(4, 1, 1),
	}

	got := engine.FilterTripsByDate(trips,
		time.Date(2024, time.January, 2, 15, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC))

	assert.Len(t, got, 2)
	assert.Equal(t, late, got[1].PickupDatetime)
}

func TestFilterTripsByDate_MidnightEndKeepsLastDay(t *testing.T) {
	// trip() picks up at noon, after the midnight the date picker supplies.
	trips := []dataset.Trip{trip(6, 1, 1), trip(7, 1, 1), trip(8, 1, 1)}
	endOfRange := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)

	got := engine.FilterTripsByDate(trips, trips[0].PickupDatetime, endOfRange)

	assert.Len(t, got, 2)
	assert.True(t, got[1].PickupDatetime.After(endOfRange))
}

func TestFilterTripsByDate_OpenBounds(t *testing.T) {
	trips := []dataset.Trip{trip(1, 1, 1), trip(2, 1, 1), trip(3, 1, 1)}
	mid := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	assert.Len(t, engine.FilterTripsByDate(trips, time.Time{}, time.Time{}), 3)
	assert.Len(t, engine.FilterTripsByDate(trips, mid, time.Time{}), 2)
	assert.Len(t, engine.FilterTripsByDate(trips, time.Time{}, mid), 2)
}

func TestFilterTripsByType(t *testing.T) {
	trips := []dataset.Trip{{Type: "Dispatch"}, {Type: "Street-hail"}, {Type: "Dispatch"}}
	assert.Len(t, engine.FilterTripsByType(trips, "Dispatch"), 2)
	assert.Empty(t, engine.FilterTripsByType(trips, "Shared"))
}

func TestDateBounds(t *testing.T) {
	from, to, ok := engine.DateBounds([]dataset.Trip{trip(5, 1, 1), trip(2, 1, 1), {}, trip(9, 1, 1)})

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC), to)

	_, _, ok = engine.DateBounds(nil)
	assert.False(t, ok)
}

func TestMileageBounds(t *testing.T) {
	lo, hi := engine.MileageBounds([]dataset.FuelEconomy{
		{MilesPerGallon: 18.9}, {MilesPerGallon: 121.7}, {MilesPerGallon: 40},
	})
	assert.Equal(t, 18, lo)
	assert.Equal(t, 121, hi)

	lo, hi = engine.MileageBounds(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestUniqueHelpers_FirstAppearanceOrder(t *testing.T) {
	vehicles := []dataset.Vehicle{
		{Manufacturer: "Tesla", FuelType: "Electricity"},
		{Manufacturer: "Ford", FuelType: "Petrol"},
		{Manufacturer: "Tesla", FuelType: "Electricity"},
	}
	assert.Equal(t, []string{"Tesla", "Ford"}, engine.UniqueVehicleManufacturers(vehicles))
	assert.Equal(t, []string{"Electricity", "Petrol"}, engine.UniqueFuelTypes(vehicles))

	air := []dataset.AirQuality{
		{Year: 2021, GeoPlaceName: "Chelsea"},
		{Year: 2019, GeoPlaceName: "Harlem"},
		{Year: 2021, GeoPlaceName: "Harlem"},
	}
	assert.Equal(t, []int{2021, 2019}, engine.UniqueYears(air))
	assert.Equal(t, []string{"Chelsea", "Harlem"}, engine.UniqueRegions(air))

	fuel := []dataset.FuelEconomy{{Manufacturer: "B"}, {Manufacturer: ""}, {Manufacturer: "A"}}
	assert.Equal(t, []string{"B", "A"}, engine.UniqueFuelManufacturers(fuel))

	trips := []dataset.Trip{{Type: "Street-hail"}, {Type: "Dispatch"}}
	assert.Equal(t, []string{"Street-hail", "Dispatch"}, engine.UniqueTripTypes(trips))
}

func TestPM25Points(t *testing.T) {
	air := []dataset.AirQuality{
		{Year: 2021, GeoPlaceName: "Chelsea", DataValue: 7},
		{Year: 2020, GeoPlaceName: "Chelsea", DataValue: 8},
		{Year: 2021, GeoPlaceName: "Harlem", DataValue: 9},
	}

	got := engine.PM25Points(air, 2021, []string{"Chelsea"})
	assert.Equal(t, []dataset.AirQuality{{Year: 2021, GeoPlaceName: "Chelsea", DataValue: 7}}, got)
	assert.Empty(t, engine.PM25Points(air, 2021, nil))
}
