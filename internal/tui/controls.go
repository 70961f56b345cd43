package tui

import (
	"slices"
	"strconv"
	"time"

	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/greenops"
)

// field identifies one filter control, in focus order.
type field int

const (
	fieldFuelManufacturer field = iota
	fieldMileageMin
	fieldMileageMax
	fieldVehicleManufacturer
	fieldCostType
	fieldTripType
	fieldProfitabilityFrom
	fieldProfitabilityTo
	fieldIncomeFrom
	fieldIncomeTo
	fieldFuelTypes
	fieldYear
	fieldRegions
	fieldCount
)

// mileageStep is the mpg change per key press.
const mileageStep = 5.0

//nolint:gochecknoglobals // Fixed control labels.
var fieldLabels = [fieldCount]string{
	"Manufacturer",
	"Mileage min",
	"Mileage max",
	"Vehicle manufacturer",
	"Cost type",
	"Trip type",
	"Profitability from",
	"Profitability to",
	"Income from",
	"Income to",
	"Fuel types",
	"Year",
	"Regions",
}

func (f field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldLabels[f]
}

// multi reports whether f is a multi-select control.
func (f field) multi() bool {
	return f == fieldFuelTypes || f == fieldRegions
}

// controls applies key presses to filters within the option domains.
type controls struct {
	opts dashboard.Options
	// mileageCap is the upper bound of the mileage controls.
	mileageCap float64
}

func newControls(opts dashboard.Options, defaults dashboard.Filters) controls {
	return controls{
		opts:       opts,
		mileageCap: max(defaults.MileageMax, float64(opts.MileageMax)),
	}
}

// items lists the choices of a multi-select field.
func (c controls) items(f field) []string {
	switch f {
	case fieldFuelTypes:
		return c.opts.FuelTypes
	case fieldRegions:
		return c.opts.Regions
	default:
		return nil
	}
}

// adjust moves the value of f by delta steps and reports whether it changed.
// Multi-select fields are changed with toggle instead.
//
//nolint:exhaustive // Multi-select fields are handled by toggle.
func (c controls) adjust(filters *dashboard.Filters, f field, delta int) bool {
	before := filters.Query().Encode()

	switch f {
	case fieldFuelManufacturer:
		filters.FuelManufacturer = cycle(c.opts.FuelManufacturers, filters.FuelManufacturer, delta)
	case fieldMileageMin:
		filters.MileageMin = clamp(filters.MileageMin+float64(delta)*mileageStep, 0, filters.MileageMax)
	case fieldMileageMax:
		filters.MileageMax = clamp(filters.MileageMax+float64(delta)*mileageStep, filters.MileageMin, c.mileageCap)
	case fieldVehicleManufacturer:
		filters.VehicleManufacturer = cycle(c.opts.VehicleManufacturers, filters.VehicleManufacturer, delta)
	case fieldCostType:
		filters.CostType = cycle(c.opts.CostTypes, filters.CostType, delta)
	case fieldTripType:
		filters.TripType = cycle(c.opts.TripTypes, filters.TripType, delta)
	case fieldProfitabilityFrom:
		c.shiftFrom(&filters.Profitability, delta)
	case fieldProfitabilityTo:
		c.shiftTo(&filters.Profitability, delta)
	case fieldIncomeFrom:
		c.shiftFrom(&filters.Income, delta)
	case fieldIncomeTo:
		c.shiftTo(&filters.Income, delta)
	case fieldYear:
		filters.Year = cycle(c.opts.Years, filters.Year, delta)
	}

	return filters.Query().Encode() != before
}

// toggle flips item idx of a multi-select field, keeping option order.
func (c controls) toggle(filters *dashboard.Filters, f field, idx int) bool {
	items := c.items(f)
	if idx < 0 || idx >= len(items) {
		return false
	}
	var selected *[]string
	switch f {
	case fieldFuelTypes:
		selected = &filters.FuelTypes
	case fieldRegions:
		selected = &filters.Regions
	default:
		return false
	}

	item := items[idx]
	out := []string{}
	for _, it := range items {
		on := slices.Contains(*selected, it)
		if it == item {
			on = !on
		}
		if on {
			out = append(out, it)
		}
	}
	*selected = out
	return true
}

func (c controls) shiftFrom(r *dashboard.DateRange, delta int) {
	if r.From.IsZero() {
		return
	}
	upper := c.opts.DateTo
	if !r.To.IsZero() {
		upper = r.To
	}
	r.From = clampDate(r.From.AddDate(0, 0, delta), c.opts.DateFrom, upper)
}

func (c controls) shiftTo(r *dashboard.DateRange, delta int) {
	if r.To.IsZero() {
		return
	}
	lower := c.opts.DateFrom
	if !r.From.IsZero() {
		lower = r.From
	}
	r.To = clampDate(r.To.AddDate(0, 0, delta), lower, c.opts.DateTo)
}

// value formats the current value of f.
func (c controls) value(filters dashboard.Filters, f field) string {
	switch f {
	case fieldFuelManufacturer:
		return orDash(filters.FuelManufacturer)
	case fieldMileageMin:
		return greenops.FormatFloat(filters.MileageMin, 0)
	case fieldMileageMax:
		return greenops.FormatFloat(filters.MileageMax, 0)
	case fieldVehicleManufacturer:
		if filters.VehicleManufacturer == "" {
			return "all"
		}
		return filters.VehicleManufacturer
	case fieldCostType:
		return string(filters.CostType)
	case fieldTripType:
		return orDash(filters.TripType)
	case fieldProfitabilityFrom:
		return formatDay(filters.Profitability.From)
	case fieldProfitabilityTo:
		return formatDay(filters.Profitability.To)
	case fieldIncomeFrom:
		return formatDay(filters.Income.From)
	case fieldIncomeTo:
		return formatDay(filters.Income.To)
	case fieldFuelTypes:
		return selection(len(filters.FuelTypes), len(c.opts.FuelTypes))
	case fieldYear:
		return strconv.Itoa(filters.Year)
	case fieldRegions:
		return selection(len(filters.Regions), len(c.opts.Regions))
	default:
		return ""
	}
}

func selection(n, total int) string {
	switch n {
	case total:
		return "all (" + strconv.Itoa(total) + ")"
	case 0:
		return "none"
	default:
		return strconv.Itoa(n) + " of " + strconv.Itoa(total)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dashboard.DateLayout)
}

// cycle steps through values with wrap-around. An unknown current value
// starts from the first element.
func cycle[T comparable](values []T, current T, delta int) T {
	if len(values) == 0 {
		return current
	}
	i := slices.Index(values, current)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+delta)%n+n)%n]
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func clampDate(t, lo, hi time.Time) time.Time {
	if !lo.IsZero() && t.Before(lo) {
		return lo
	}
	if !hi.IsZero() && t.After(hi) {
		return hi
	}
	return t
}
