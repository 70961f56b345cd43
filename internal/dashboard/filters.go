package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/engine"
)

// ErrInvalidFilter is returned when a filter value cannot be applied.
var ErrInvalidFilter = errors.New("invalid filter")

// ErrInvalidKPIConfig is returned by Build when the configured category
// thresholds or emission offsets cannot be used.
var ErrInvalidKPIConfig = errors.New("invalid kpi configuration")

// DateLayout is the date format accepted and printed for date filters.
const DateLayout = "2006-01-02"

// Options are the value domains the filter controls offer, derived from the
// loaded datasets.
type Options struct {
	FuelManufacturers    []string          `json:"fuel_manufacturers"`
	MileageMin           int               `json:"mileage_min"`
	MileageMax           int               `json:"mileage_max"`
	VehicleManufacturers []string          `json:"vehicle_manufacturers"`
	CostTypes            []engine.CostType `json:"cost_types"`
	TripTypes            []string          `json:"trip_types"`
	DateFrom             time.Time         `json:"date_from"`
	DateTo               time.Time         `json:"date_to"`
	FuelTypes            []string          `json:"fuel_types"`
	Years                []int             `json:"years"`
	Regions              []string          `json:"regions"`
}

// DateRange is an inclusive range of pickup days. A zero bound is open.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// String formats the range as "from..to".
func (r DateRange) String() string {
	return formatDate(r.From) + ".." + formatDate(r.To)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format(DateLayout)
}

// Filters are the user selections that drive one dashboard build.
type Filters struct {
	// FuelManufacturer and the mileage window select fuel-economy records
	// for the avoided-emissions KPI. The window applies to miles per gallon.
	FuelManufacturer string  `json:"fuel_manufacturer"`
	MileageMin       float64 `json:"mileage_min"`
	MileageMax       float64 `json:"mileage_max"`

	// VehicleManufacturer and CostType select vehicles for cost savings.
	// An empty manufacturer selects all of them.
	VehicleManufacturer string          `json:"vehicle_manufacturer"`
	CostType            engine.CostType `json:"cost_type"`

	TripType      string    `json:"trip_type"`
	Profitability DateRange `json:"profitability_dates"`
	Income        DateRange `json:"income_dates"`

	FuelTypes []string `json:"fuel_types"`
	Year      int      `json:"year"`
	Regions   []string `json:"regions"`
}

// DefaultFilters selects the first option of every single-select control,
// every option of the multi-selects, the full date range, and the configured
// mileage window.
func DefaultFilters(opts Options, kpi config.KPIConfig) Filters {
	f := Filters{
		FuelManufacturer:    first(opts.FuelManufacturers),
		MileageMin:          kpi.MileageMin,
		MileageMax:          kpi.MileageMax,
		VehicleManufacturer: first(opts.VehicleManufacturers),
		CostType:            engine.CostTypeFuel,
		TripType:            first(opts.TripTypes),
		Profitability:       DateRange{From: opts.DateFrom, To: opts.DateTo},
		Income:              DateRange{From: opts.DateFrom, To: opts.DateTo},
		FuelTypes:           append([]string(nil), opts.FuelTypes...),
		Regions:             append([]string(nil), opts.Regions...),
	}
	if len(opts.Years) > 0 {
		f.Year = opts.Years[0]
	}
	return f
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Validate reports the first filter value that cannot be applied.
func (f Filters) Validate() error {
	if _, err := engine.ParseCostType(string(f.CostType)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	if f.MileageMin > f.MileageMax {
		return fmt.Errorf("%w: mileage min %.0f exceeds max %.0f", ErrInvalidFilter, f.MileageMin, f.MileageMax)
	}
	if err := f.Profitability.validate("profitability"); err != nil {
		return err
	}
	return f.Income.validate("income")
}

func (r DateRange) validate(panel string) error {
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return fmt.Errorf("%w: %s dates %s: start is after end", ErrInvalidFilter, panel, r)
	}
	return nil
}
