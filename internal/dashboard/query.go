package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/fleetkpi/internal/engine"
)

// Query parameter names understood by ApplyQuery.
const (
	ParamManufacturer        = "manufacturer"
	ParamMileageMin          = "mileage_min"
	ParamMileageMax          = "mileage_max"
	ParamVehicleManufacturer = "vehicle_manufacturer"
	ParamCostType            = "cost_type"
	ParamTripType            = "trip_type"
	ParamFrom                = "from"
	ParamTo                  = "to"
	ParamIncomeFrom          = "income_from"
	ParamIncomeTo            = "income_to"
	ParamFuelType            = "fuel_type"
	ParamYear                = "year"
	ParamRegion              = "region"
)

// ApplyQuery overrides the filters named in values. List parameters may be
// repeated or comma separated. Unparseable values wrap ErrInvalidFilter.
func (f *Filters) ApplyQuery(values url.Values) error {
	if v, ok := single(values, ParamManufacturer); ok {
		f.FuelManufacturer = v
	}
	if err := applyFloat(values, ParamMileageMin, &f.MileageMin); err != nil {
		return err
	}
	if err := applyFloat(values, ParamMileageMax, &f.MileageMax); err != nil {
		return err
	}
	if v, ok := single(values, ParamVehicleManufacturer); ok {
		f.VehicleManufacturer = v
	}
	if v, ok := single(values, ParamCostType); ok {
		ct, err := engine.ParseCostType(v)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		f.CostType = ct
	}
	if v, ok := single(values, ParamTripType); ok {
		f.TripType = v
	}
	for param, dst := range map[string]*time.Time{
		ParamFrom:       &f.Profitability.From,
		ParamTo:         &f.Profitability.To,
		ParamIncomeFrom: &f.Income.From,
		ParamIncomeTo:   &f.Income.To,
	} {
		if err := applyDate(values, param, dst); err != nil {
			return err
		}
	}
	if v, ok := list(values, ParamFuelType); ok {
		f.FuelTypes = v
	}
	if v, ok := single(values, ParamYear); ok {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a year", ErrInvalidFilter, ParamYear, v)
		}
		f.Year = year
	}
	if v, ok := list(values, ParamRegion); ok {
		f.Regions = v
	}
	return nil
}

// Query encodes f as query parameters accepted by ApplyQuery.
func (f Filters) Query() url.Values {
	v := url.Values{}
	v.Set(ParamManufacturer, f.FuelManufacturer)
	v.Set(ParamMileageMin, strconv.FormatFloat(f.MileageMin, 'f', -1, 64))
	v.Set(ParamMileageMax, strconv.FormatFloat(f.MileageMax, 'f', -1, 64))
	v.Set(ParamVehicleManufacturer, f.VehicleManufacturer)
	v.Set(ParamCostType, string(f.CostType))
	v.Set(ParamTripType, f.TripType)
	setDate(v, ParamFrom, f.Profitability.From)
	setDate(v, ParamTo, f.Profitability.To)
	setDate(v, ParamIncomeFrom, f.Income.From)
	setDate(v, ParamIncomeTo, f.Income.To)
	addList(v, ParamFuelType, f.FuelTypes)
	v.Set(ParamYear, strconv.Itoa(f.Year))
	addList(v, ParamRegion, f.Regions)
	return v
}

// addList writes one value per item. A lone item containing a comma gets an
// empty companion value so that list reads it back as a single entry.
func addList(v url.Values, key string, items []string) {
	for _, item := range items {
		v.Add(key, item)
	}
	if len(items) == 1 && strings.Contains(items[0], ",") {
		v.Add(key, "")
	}
}

func setDate(v url.Values, key string, t time.Time) {
	if !t.IsZero() {
		v.Set(key, t.Format(DateLayout))
	}
}

func single(values url.Values, key string) (string, bool) {
	if _, ok := values[key]; !ok {
		return "", false
	}
	return strings.TrimSpace(values.Get(key)), true
}

// list reads a multi-select. A single value is a comma-separated list;
// repeated values are taken as they are.
func list(values url.Values, key string) ([]string, bool) {
	raw, ok := values[key]
	if !ok {
		return nil, false
	}
	if len(raw) == 1 {
		raw = strings.Split(raw[0], ",")
	}
	out := []string{}
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out, true
}

func applyFloat(values url.Values, key string, dst *float64) error {
	v, ok := single(values, key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidFilter, key, v)
	}
	*dst = f
	return nil
}

func applyDate(values url.Values, key string, dst *time.Time) error {
	v, ok := single(values, key)
	if !ok {
		return nil
	}
	if v == "" {
		*dst = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a %s date", ErrInvalidFilter, key, v, DateLayout)
	}
	*dst = t
	return nil
}
