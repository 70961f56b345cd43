package dashboard

import (
	"time"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/engine"
	"github.com/rshade/fleetkpi/internal/greenops"
	"github.com/rshade/fleetkpi/internal/present"
)

// Headline KPI names.
const (
	KPIAvoidedEmissions = "avoided-emissions"
	KPICostSavings      = "cost-savings"
	KPIProfitability    = "profitability"
)

// UnitPercent marks KPI values expressed as percentages.
const UnitPercent = "%"

// Figure names.
const (
	FigureAvoidedEmissionsGauge = "avoided-emissions-gauge"
	FigureAvoidedEmissionsTrend = "avoided-emissions-trend"
	FigureCategoryEmissions     = "category-emissions"
	FigureCostSavingsGauge      = "cost-savings-gauge"
	FigureCostSavingsTrend      = "cost-savings-trend"
	FigureCostComparison        = "cost-comparison"
	FigureProfitabilityGauge    = "profitability-gauge"
	FigureProfitabilityTrend    = "profitability-trend"
	FigureIncomePerPassenger    = "income-per-passenger"
	FigureFuelTypeCost          = "fuel-type-cost"
	FigurePM25Map               = "pm25-map"
)

//nolint:gochecknoglobals // Fixed display order.
var figureNames = []string{
	FigureAvoidedEmissionsGauge,
	FigureAvoidedEmissionsTrend,
	FigureCategoryEmissions,
	FigureCostSavingsGauge,
	FigureCostSavingsTrend,
	FigureCostComparison,
	FigureProfitabilityGauge,
	FigureProfitabilityTrend,
	FigureIncomePerPassenger,
	FigureFuelTypeCost,
	FigurePM25Map,
}

// KPI is one headline indicator with its gauge scale.
type KPI struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit,omitempty"`
	Goal     float64 `json:"goal"`
	GaugeMax float64 `json:"gauge_max"`
}

// GoalLabel formats the goal with the KPI's unit.
func (k KPI) GoalLabel() string {
	return greenops.FormatFloat(k.Goal, 0) + k.Unit
}

// ValueLabel formats the value with two decimals and the KPI's unit.
func (k KPI) ValueLabel() string {
	return greenops.FormatFloat(k.Value, 2) + k.Unit
}

// Snapshot is the result of one Build.
type Snapshot struct {
	Filters     Filters   `json:"filters"`
	GeneratedAt time.Time `json:"generated_at"`
	KPIs        []KPI     `json:"kpis"`

	AvoidedEmissions greenops.AvoidedEmissionsResult `json:"avoided_emissions"`
	CategorySummary  []greenops.CategoryStat         `json:"category_summary"`

	CostSavings engine.CostSavingsResult `json:"cost_savings"`

	Profitability      float64             `json:"profitability"`
	ProfitabilityTrend []engine.TrendPoint `json:"profitability_trend"`
	ProfitabilityTrips int                 `json:"profitability_trips"`

	IncomePerPassenger []engine.PassengerIncome `json:"income_per_passenger"`
	FuelTypeCosts      []engine.FuelTypeCost    `json:"fuel_type_costs"`
	PM25               []dataset.AirQuality     `json:"pm25"`

	figures []present.NamedFigure
}

// Figures returns every figure of the snapshot in display order.
func (s *Snapshot) Figures() []present.NamedFigure {
	return append([]present.NamedFigure(nil), s.figures...)
}

// Figure returns the figure called name.
func (s *Snapshot) Figure(name string) (present.Figure, bool) {
	for _, nf := range s.figures {
		if nf.Name == name {
			return nf.Figure, true
		}
	}
	return nil, false
}

// KPI returns the headline KPI called name.
func (s *Snapshot) KPI(name string) (KPI, bool) {
	for _, k := range s.KPIs {
		if k.Name == name {
			return k, true
		}
	}
	return KPI{}, false
}

func buildFigures(s *Snapshot, kpi config.KPIConfig) []present.NamedFigure {
	byName := make(map[string]present.Figure, len(figureNames))
	goals := make(map[string]string, len(s.KPIs))
	for _, k := range s.KPIs {
		goals[k.Name] = k.GoalLabel()
	}

	g, t := present.ShowKPI("Avoided emissions", s.AvoidedEmissions.Percent,
		kpi.Targets.AvoidedEmissions.GaugeMax, goals[KPIAvoidedEmissions], nil, nil)
	byName[FigureAvoidedEmissionsGauge], byName[FigureAvoidedEmissionsTrend] = g, t
	byName[FigureCategoryEmissions] = present.CategoryEmissionsChart(s.CategorySummary)

	g, t = present.ShowKPI("Cost savings", s.CostSavings.Percent,
		kpi.Targets.CostSavings.GaugeMax, goals[KPICostSavings], nil, nil)
	byName[FigureCostSavingsGauge], byName[FigureCostSavingsTrend] = g, t
	byName[FigureCostComparison] = present.CostComparisonChart(s.CostSavings)

	// The profitability trend is plotted against the period's overall ratio.
	trend := present.SeriesFromTrend(s.ProfitabilityTrend)
	goal := present.ConstantGoal(trend.Labels, s.Profitability)
	g, t = present.ShowKPI("Profitability", s.Profitability,
		kpi.Targets.Profitability.GaugeMax, goals[KPIProfitability], &trend, &goal)
	byName[FigureProfitabilityGauge], byName[FigureProfitabilityTrend] = g, t

	byName[FigureIncomePerPassenger] = present.IncomePerPassengerChart(s.IncomePerPassenger)
	byName[FigureFuelTypeCost] = present.FuelTypeCostChart(s.FuelTypeCosts)
	byName[FigurePM25Map] = present.PM25Map(s.PM25, s.Filters.Year)

	out := make([]present.NamedFigure, 0, len(figureNames))
	for _, name := range figureNames {
		out = append(out, present.NamedFigure{Name: name, Figure: byName[name]})
	}
	return out
}
