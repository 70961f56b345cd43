package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/engine"
)

func testOptions() dashboard.Options {
	return dashboard.Options{
		FuelManufacturers: []string{"A", "B", "C"},
		MileageMin:        10,
		MileageMax:        120,
		CostTypes:         engine.CostTypes(),
		DateFrom:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		DateTo:            time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		FuelTypes:         []string{"Petrol", "Electricity", "Diesel"},
		Years:             []int{2020, 2021},
	}
}

func TestCycle(t *testing.T) {
	values := []string{"A", "B", "C"}
	assert.Equal(t, "B", cycle(values, "A", 1))
	assert.Equal(t, "C", cycle(values, "A", -1))
	assert.Equal(t, "A", cycle(values, "C", 1))
	assert.Equal(t, "A", cycle(values, "missing", 1))
	assert.Equal(t, "x", cycle(nil, "x", 1))
	assert.Equal(t, 2020, cycle([]int{2020, 2021}, 2021, 1))
}

func TestControls_Mileage(t *testing.T) {
	opts := testOptions()
	defaults := dashboard.Filters{MileageMin: 0, MileageMax: 10000}
	c := newControls(opts, defaults)

	f := defaults
	assert.False(t, c.adjust(&f, fieldMileageMin, -1))
	assert.True(t, c.adjust(&f, fieldMileageMin, 2))
	assert.InDelta(t, 10, f.MileageMin, 1e-9)
	assert.False(t, c.adjust(&f, fieldMileageMax, 1))

	f.MileageMax = 15
	c.adjust(&f, fieldMileageMax, -1)
	c.adjust(&f, fieldMileageMax, -1)
	assert.InDelta(t, 10, f.MileageMax, 1e-9)
}

func TestControls_Dates(t *testing.T) {
	opts := testOptions()
	f := dashboard.Filters{Profitability: dashboard.DateRange{From: opts.DateFrom, To: opts.DateTo}}
	c := newControls(opts, f)

	assert.False(t, c.adjust(&f, fieldProfitabilityFrom, -1))
	assert.True(t, c.adjust(&f, fieldProfitabilityFrom, 3))
	assert.Equal(t, 4, f.Profitability.From.Day())

	f.Profitability.To = f.Profitability.From
	assert.False(t, c.adjust(&f, fieldProfitabilityTo, -1))

	var empty dashboard.Filters
	assert.False(t, c.adjust(&empty, fieldIncomeFrom, 1))
}

func TestControls_Toggle(t *testing.T) {
	opts := testOptions()
	f := dashboard.Filters{FuelTypes: []string{"Petrol", "Electricity", "Diesel"}}
	c := newControls(opts, f)

	assert.True(t, c.toggle(&f, fieldFuelTypes, 1))
	assert.Equal(t, []string{"Petrol", "Diesel"}, f.FuelTypes)
	assert.True(t, c.toggle(&f, fieldFuelTypes, 1))
	assert.Equal(t, []string{"Petrol", "Electricity", "Diesel"}, f.FuelTypes)

	assert.False(t, c.toggle(&f, fieldFuelTypes, 9))
	assert.False(t, c.toggle(&f, fieldYear, 0))
}

func TestControls_Value(t *testing.T) {
	opts := testOptions()
	f := dashboard.Filters{
		MileageMax: 10000,
		CostType:   engine.CostTypeFuel,
		FuelTypes:  []string{"Petrol"},
		Year:       2021,
	}
	c := newControls(opts, f)

	assert.Equal(t, "-", c.value(f, fieldFuelManufacturer))
	assert.Equal(t, "10,000", c.value(f, fieldMileageMax))
	assert.Equal(t, "all", c.value(f, fieldVehicleManufacturer))
	assert.Equal(t, "fuel", c.value(f, fieldCostType))
	assert.Equal(t, "-", c.value(f, fieldIncomeTo))
	assert.Equal(t, "1 of 3", c.value(f, fieldFuelTypes))
	assert.Equal(t, "2021", c.value(f, fieldYear))
	assert.Equal(t, "all (0)", c.value(f, fieldRegions))
	assert.Equal(t, "Regions", fieldRegions.String())
}
