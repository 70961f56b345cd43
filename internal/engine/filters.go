package engine

import (
	"math"
	"time"

	"github.com/rshade/fleetkpi/internal/dataset"
)

const day = 24 * time.Hour

// FilterTripsByDate keeps trips picked up on or after the start of from's
// day and before the end of to's day. A zero bound is open.
//
// A date picker yields to at midnight; comparing pickups against that instant
// would drop nearly every trip of the last selected day, so to is widened to
// the whole day.
func FilterTripsByDate(trips []dataset.Trip, from, to time.Time) []dataset.Trip {
	var start, end time.Time
	if !from.IsZero() {
		start = startOfDay(from)
	}
	if !to.IsZero() {
		end = startOfDay(to).Add(day)
	}

	var out []dataset.Trip
	for _, t := range trips {
		if !start.IsZero() && t.PickupDatetime.Before(start) {
			continue
		}
		if !end.IsZero() && !t.PickupDatetime.Before(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterTripsByType keeps trips of tripType.
func FilterTripsByType(trips []dataset.Trip, tripType string) []dataset.Trip {
	var out []dataset.Trip
	for _, t := range trips {
		if t.Type == tripType {
			out = append(out, t)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateBounds returns the earliest and latest pickup dates (day precision).
// ok is false when no trip has a pickup time.
func DateBounds(trips []dataset.Trip) (from, to time.Time, ok bool) {
	for _, t := range trips {
		if t.PickupDatetime.IsZero() {
			continue
		}
		if !ok || t.PickupDatetime.Before(from) {
			from = t.PickupDatetime
		}
		if !ok || t.PickupDatetime.After(to) {
			to = t.PickupDatetime
		}
		ok = true
	}
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return startOfDay(from), startOfDay(to), true
}

// MileageBounds returns the integer-truncated minimum and maximum miles per
// gallon of records, or (0, 0) for none.
func MileageBounds(records []dataset.FuelEconomy) (minMPG, maxMPG int) {
	if len(records) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		lo = math.Min(lo, r.MilesPerGallon)
		hi = math.Max(hi, r.MilesPerGallon)
	}
	return int(lo), int(hi)
}

// unique returns the distinct keys of rows in first-appearance order,
// skipping empty strings.
func unique[T any](rows []T, key func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// UniqueTripTypes lists trip types in first-appearance order.
func UniqueTripTypes(trips []dataset.Trip) []string {
	return unique(trips, func(t dataset.Trip) string { return t.Type })
}

// UniqueVehicleManufacturers lists vehicle manufacturers in first-appearance order.
func UniqueVehicleManufacturers(vehicles []dataset.Vehicle) []string {
	return unique(vehicles, func(v dataset.Vehicle) string { return v.Manufacturer })
}

// UniqueFuelTypes lists vehicle fuel types in first-appearance order.
func UniqueFuelTypes(vehicles []dataset.Vehicle) []string {
	return unique(vehicles, func(v dataset.Vehicle) string { return v.FuelType })
}

// UniqueFuelManufacturers lists fuel-economy manufacturers in first-appearance order.
func UniqueFuelManufacturers(records []dataset.FuelEconomy) []string {
	return unique(records, func(r dataset.FuelEconomy) string { return r.Manufacturer })
}

// UniqueRegions lists air-quality places in first-appearance order.
func UniqueRegions(air []dataset.AirQuality) []string {
	return unique(air, func(a dataset.AirQuality) string { return a.GeoPlaceName })
}

// UniqueYears lists air-quality years in first-appearance order.
func UniqueYears(air []dataset.AirQuality) []int {
	seen := make(map[int]bool)
	var out []int
	for _, a := range air {
		if !seen[a.Year] {
			seen[a.Year] = true
			out = append(out, a.Year)
		}
	}
	return out
}
