// Package greenops classifies vehicles by CO2-per-mile and computes the
// avoided-emissions KPI of a fleet.
package greenops

// Category is the powertrain class of a vehicle, derived from CO2 per mile.
type Category string

const (
	// CategoryConventional covers vehicles above the hybrid threshold.
	CategoryConventional Category = "conventional"

	// CategoryElectric covers vehicles at or below the electric threshold.
	CategoryElectric Category = "electric"

	// CategoryHybrid covers vehicles above the electric threshold and at or
	// below the hybrid threshold.
	CategoryHybrid Category = "hybrid"
)

// Categories returns every category in lexical order.
func Categories() []Category {
	return []Category{CategoryConventional, CategoryElectric, CategoryHybrid}
}

// Thresholds are the inclusive CO2-per-mile upper bounds of the electric and
// hybrid categories.
type Thresholds struct {
	ElectricMax float64 `json:"electric_max_co2"`
	HybridMax   float64 `json:"hybrid_max_co2"`
}

// Offsets are the CO2-per-mile amounts added to a record before its
// reduction against the fleet maximum is taken.
type Offsets struct {
	Electric float64 `json:"electric"`
	Hybrid   float64 `json:"hybrid"`
}

// Params bundles the tunables of the avoided-emissions KPI.
type Params struct {
	Thresholds Thresholds `json:"thresholds"`
	Offsets    Offsets    `json:"offsets"`
}

// CategoryStat summarizes the records of one category.
type CategoryStat struct {
	Category Category `json:"category"`
	// MeanCO2 is the mean CO2 per mile of the category's records.
	MeanCO2 float64 `json:"mean_co2_per_mile"`
	// TotalMPG is the summed miles per gallon of the category's records.
	TotalMPG float64 `json:"total_mpg"`
	Count    int     `json:"count"`
}

// AvoidedEmissionsResult is the avoided-emissions KPI with its inputs.
type AvoidedEmissionsResult struct {
	// Percent is the KPI value. It is not clamped.
	Percent float64 `json:"percent"`
	// MaxCO2 is the highest CO2 per mile across the whole, unfiltered dataset.
	MaxCO2 float64 `json:"max_co2_per_mile"`

	ElectricReduction float64 `json:"electric_reduction"`
	HybridReduction   float64 `json:"hybrid_reduction"`
	ElectricMPG       float64 `json:"electric_mpg"`
	HybridMPG         float64 `json:"hybrid_mpg"`
	ConventionalMPG   float64 `json:"conventional_mpg"`
	// Matched is the number of records that passed the manufacturer and mileage filters.
	Matched int `json:"matched"`
}

// TotalMPG is the mpg sum over all three categories.
func (r AvoidedEmissionsResult) TotalMPG() float64 {
	return r.ElectricMPG + r.HybridMPG + r.ConventionalMPG
}
