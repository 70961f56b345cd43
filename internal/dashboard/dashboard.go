package dashboard

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/engine"
	"github.com/rshade/fleetkpi/internal/greenops"
	"github.com/rshade/fleetkpi/internal/logging"
)

// Source supplies the four datasets. *dataset.Loader implements it.
type Source interface {
	Trips(ctx context.Context) ([]dataset.Trip, error)
	Vehicles(ctx context.Context) ([]dataset.Vehicle, error)
	Air(ctx context.Context) ([]dataset.AirQuality, error)
	Fuel(ctx context.Context) ([]dataset.FuelEconomy, error)
}

// Dashboard computes snapshots from a Source.
type Dashboard struct {
	src Source
	kpi config.KPIConfig
	now func() time.Time
}

// New returns a Dashboard over src using the KPI constants in kpi.
func New(src Source, kpi config.KPIConfig) *Dashboard {
	return &Dashboard{src: src, kpi: kpi, now: time.Now}
}

// KPIConfig returns the constants the dashboard was built with.
func (d *Dashboard) KPIConfig() config.KPIConfig {
	return d.kpi
}

type data struct {
	trips    []dataset.Trip
	vehicles []dataset.Vehicle
	air      []dataset.AirQuality
	fuel     []dataset.FuelEconomy
}

func (d *Dashboard) load(ctx context.Context) (*data, error) {
	var out data
	var err error
	if out.trips, err = d.src.Trips(ctx); err != nil {
		return nil, fmt.Errorf("loading trips: %w", err)
	}
	if out.vehicles, err = d.src.Vehicles(ctx); err != nil {
		return nil, fmt.Errorf("loading vehicles: %w", err)
	}
	if out.air, err = d.src.Air(ctx); err != nil {
		return nil, fmt.Errorf("loading air quality: %w", err)
	}
	if out.fuel, err = d.src.Fuel(ctx); err != nil {
		return nil, fmt.Errorf("loading fuel economy: %w", err)
	}
	return &out, nil
}

// Options derives the filter value domains from the datasets.
func (d *Dashboard) Options(ctx context.Context) (Options, error) {
	in, err := d.load(ctx)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		FuelManufacturers:    nonNil(engine.UniqueFuelManufacturers(in.fuel)),
		VehicleManufacturers: nonNil(engine.UniqueVehicleManufacturers(in.vehicles)),
		CostTypes:            engine.CostTypes(),
		TripTypes:            nonNil(engine.UniqueTripTypes(in.trips)),
		FuelTypes:            nonNil(engine.UniqueFuelTypes(in.vehicles)),
		Years:                nonNil(engine.UniqueYears(in.air)),
		Regions:              nonNil(engine.UniqueRegions(in.air)),
	}
	opts.MileageMin, opts.MileageMax = engine.MileageBounds(in.fuel)
	if from, to, ok := engine.DateBounds(in.trips); ok {
		opts.DateFrom, opts.DateTo = from, to
	}
	return opts, nil
}

// nonNil keeps JSON output as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// DefaultFilters derives the options and returns their default selection.
func (d *Dashboard) DefaultFilters(ctx context.Context) (Filters, error) {
	opts, err := d.Options(ctx)
	if err != nil {
		return Filters{}, err
	}
	return DefaultFilters(opts, d.kpi), nil
}

// Build runs one full recomputation for f.
func (d *Dashboard) Build(ctx context.Context, f Filters) (*Snapshot, error) {
	log := logging.FromContext(ctx)
	start := d.now()

	if err := f.Validate(); err != nil {
		return nil, err
	}
	params, err := d.emissionParams()
	if err != nil {
		return nil, err
	}
	in, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Filters:     f,
		GeneratedAt: start,
	}

	s.AvoidedEmissions = greenops.ComputeAvoidedEmissions(
		in.fuel, f.FuelManufacturer, f.MileageMin, f.MileageMax, params)
	s.CategorySummary = nonNil(greenops.CategorySummary(
		greenops.FilterFuel(in.fuel, f.FuelManufacturer, f.MileageMin, f.MileageMax), params.Thresholds))

	s.CostSavings = engine.CostSavings(in.vehicles, f.VehicleManufacturer, f.CostType)

	tripsInRange := engine.FilterTripsByDate(in.trips, f.Profitability.From, f.Profitability.To)
	selected := engine.FilterTripsByType(tripsInRange, f.TripType)
	s.ProfitabilityTrips = len(selected)
	s.Profitability = engine.Profitability(selected)
	s.ProfitabilityTrend = nonNil(engine.ProfitabilityTrend(selected))

	s.IncomePerPassenger = nonNil(engine.IncomePerPassenger(engine.FilterTripsByDate(in.trips, f.Income.From, f.Income.To)))
	s.FuelTypeCosts = nonNil(engine.AverageCostByFuelType(in.vehicles, f.FuelTypes))
	s.PM25 = nonNil(engine.PM25Points(in.air, f.Year, f.Regions))

	s.KPIs = d.headline(s)
	s.figures = buildFigures(s, d.kpi)

	log.Debug().Ctx(ctx).
		Str("operation", "build").
		Float64("avoided_emissions", s.AvoidedEmissions.Percent).
		Float64("cost_savings", s.CostSavings.Percent).
		Float64("profitability", s.Profitability).
		Int("trips", s.ProfitabilityTrips).
		Int("pm25_points", len(s.PM25)).
		Dur("duration", d.now().Sub(start)).
		Msg("dashboard snapshot built")

	return s, nil
}

// emissionParams converts the configured KPI constants into the parameters of
// the avoided-emissions calculation.
func (d *Dashboard) emissionParams() (greenops.Params, error) {
	params := greenops.Params{
		Thresholds: greenops.Thresholds{
			ElectricMax: d.kpi.Categories.ElectricMaxCO2,
			HybridMax:   d.kpi.Categories.HybridMaxCO2,
		},
		Offsets: greenops.Offsets{
			Electric: d.kpi.Offsets.Electric,
			Hybrid:   d.kpi.Offsets.Hybrid,
		},
	}
	if err := params.Validate(); err != nil {
		return greenops.Params{}, fmt.Errorf("%w: %w", ErrInvalidKPIConfig, err)
	}
	return params, nil
}

func (d *Dashboard) headline(s *Snapshot) []KPI {
	t := d.kpi.Targets
	return []KPI{
		{
			Name:     KPIAvoidedEmissions,
			Title:    "Avoided emissions",
			Value:    s.AvoidedEmissions.Percent,
			Unit:     UnitPercent,
			Goal:     t.AvoidedEmissions.Goal,
			GaugeMax: t.AvoidedEmissions.GaugeMax,
		},
		{
			Name:     KPICostSavings,
			Title:    "Cost savings",
			Value:    s.CostSavings.Percent,
			Unit:     UnitPercent,
			Goal:     t.CostSavings.Goal,
			GaugeMax: t.CostSavings.GaugeMax,
		},
		{
			Name:     KPIProfitability,
			Title:    "Profitability",
			Value:    s.Profitability,
			Goal:     t.Profitability.Goal,
			GaugeMax: t.Profitability.GaugeMax,
		},
	}
}

// FigureNames lists the figure names of every snapshot, in display order.
func FigureNames() []string {
	return slices.Clone(figureNames)
}
