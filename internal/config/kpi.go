package config

import (
	"errors"
	"fmt"
)

// KPI validation errors.
var (
	ErrThresholdOrder      = errors.New("kpi.categories: electric_max_co2 must not exceed hybrid_max_co2")
	ErrOffsetNegative      = errors.New("kpi.offsets cannot be negative")
	ErrGaugeMaxNotPositive = errors.New("kpi target gauge_max must be greater than 0")
	ErrGoalNegative        = errors.New("kpi target goal cannot be negative")
	ErrMileageRange        = errors.New("kpi mileage range: min must not exceed max")
)

// KPIConfig holds the tunable constants behind every KPI.
type KPIConfig struct {
	Categories CategoryThresholds `yaml:"categories" json:"categories"`
	Offsets    EmissionOffsets    `yaml:"offsets"    json:"offsets"`
	Targets    Targets            `yaml:"targets"    json:"targets"`
	// MileageMin and MileageMax are the default mileage filter bounds (mpg).
	MileageMin float64 `yaml:"mileage_min" json:"mileage_min"`
	MileageMax float64 `yaml:"mileage_max" json:"mileage_max"`
}

// CategoryThresholds are the inclusive CO2-per-mile upper bounds of the
// electric and hybrid categories.
type CategoryThresholds struct {
	ElectricMaxCO2 float64 `yaml:"electric_max_co2" json:"electric_max_co2"`
	HybridMaxCO2   float64 `yaml:"hybrid_max_co2"   json:"hybrid_max_co2"`
}

// EmissionOffsets are the CO2-per-mile reductions credited per category.
type EmissionOffsets struct {
	Electric float64 `yaml:"electric" json:"electric"`
	Hybrid   float64 `yaml:"hybrid"   json:"hybrid"`
}

// Target is the gauge scale and goal label for one KPI.
type Target struct {
	Goal     float64 `yaml:"goal"      json:"goal"`
	GaugeMax float64 `yaml:"gauge_max" json:"gauge_max"`
}

// Validate checks the target values.
func (t Target) Validate() error {
	if t.GaugeMax <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrGaugeMaxNotPositive, t.GaugeMax)
	}
	if t.Goal < 0 {
		return fmt.Errorf("%w: got %.2f", ErrGoalNegative, t.Goal)
	}
	return nil
}

// Targets groups the gauge configuration of the three headline KPIs.
type Targets struct {
	AvoidedEmissions Target `yaml:"avoided_emissions" json:"avoided_emissions"`
	CostSavings      Target `yaml:"cost_savings"      json:"cost_savings"`
	Profitability    Target `yaml:"profitability"     json:"profitability"`
}

// DefaultKPIConfig returns the stock thresholds, offsets and gauge targets.
func DefaultKPIConfig() KPIConfig {
	return KPIConfig{
		Categories: CategoryThresholds{ElectricMaxCO2: 0, HybridMaxCO2: 200},
		Offsets:    EmissionOffsets{Electric: 120, Hybrid: 200},
		Targets: Targets{
			AvoidedEmissions: Target{Goal: 1000, GaugeMax: 1000},
			CostSavings:      Target{Goal: 20, GaugeMax: 100},
			Profitability:    Target{Goal: 1500, GaugeMax: 1500},
		},
		MileageMin: 0,
		MileageMax: 10000,
	}
}

// Validate checks thresholds, offsets, targets and mileage bounds.
func (k KPIConfig) Validate() error {
	if k.Categories.ElectricMaxCO2 > k.Categories.HybridMaxCO2 {
		return fmt.Errorf("%w: %.2f > %.2f", ErrThresholdOrder,
			k.Categories.ElectricMaxCO2, k.Categories.HybridMaxCO2)
	}
	if k.Offsets.Electric < 0 || k.Offsets.Hybrid < 0 {
		return ErrOffsetNegative
	}
	for name, t := range map[string]Target{
		"avoided_emissions": k.Targets.AvoidedEmissions,
		"cost_savings":      k.Targets.CostSavings,
		"profitability":     k.Targets.Profitability,
	} {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("kpi.targets.%s: %w", name, err)
		}
	}
	if k.MileageMin > k.MileageMax {
		return fmt.Errorf("%w: %.2f > %.2f", ErrMileageRange, k.MileageMin, k.MileageMax)
	}
	return nil
}
