package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/fleetkpi/internal/dataset"
)

// CostType selects which running cost a vehicle must carry to be compared.
type CostType string

// Cost types.
const (
	// CostTypeFuel keeps vehicles with a positive fuel cost.
	CostTypeFuel CostType = "fuel"
	// CostTypeElectric keeps vehicles with a positive electric cost.
	CostTypeElectric CostType = "electric"
)

// Fuel types compared by CostSavings.
const (
	FuelTypeConventional = "Petrol"
	FuelTypeElectric     = "Electricity"
)

// ErrUnknownCostType is returned by ParseCostType.
var ErrUnknownCostType = errors.New("unknown cost type")

// CostTypes returns the supported cost types.
func CostTypes() []CostType {
	return []CostType{CostTypeFuel, CostTypeElectric}
}

// ParseCostType validates a cost type name.
func ParseCostType(s string) (CostType, error) {
	switch c := CostType(strings.ToLower(strings.TrimSpace(s))); c {
	case CostTypeFuel, CostTypeElectric:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCostType, s)
	}
}

// CostSavingsResult is the electric-vs-conventional cost comparison.
type CostSavingsResult struct {
	// Percent is (conventional - electric) / conventional * 100, or 0 when
	// either mean is missing or not positive.
	Percent           float64 `json:"percent"`
	ConventionalMean  float64 `json:"conventional_mean"`
	ElectricMean      float64 `json:"electric_mean"`
	ConventionalCount int     `json:"conventional_count"`
	ElectricCount     int     `json:"electric_count"`
}

// CostSavings compares the mean total cost of Petrol and Electricity
// vehicles of manufacturer (all manufacturers when empty) that carry the
// selected cost type. An absent group has mean 0.
func CostSavings(vehicles []dataset.Vehicle, manufacturer string, costType CostType) CostSavingsResult {
	var res CostSavingsResult
	var convSum, elecSum float64
	for _, v := range vehicles {
		if manufacturer != "" && v.Manufacturer != manufacturer {
			continue
		}
		if !hasCost(v, costType) {
			continue
		}
		switch v.FuelType {
		case FuelTypeConventional:
			convSum += v.TotalCost
			res.ConventionalCount++
		case FuelTypeElectric:
			elecSum += v.TotalCost
			res.ElectricCount++
		}
	}

	if res.ConventionalCount > 0 {
		res.ConventionalMean = convSum / float64(res.ConventionalCount)
	}
	if res.ElectricCount > 0 {
		res.ElectricMean = elecSum / float64(res.ElectricCount)
	}
	if res.ConventionalMean > 0 && res.ElectricMean > 0 {
		res.Percent = (res.ConventionalMean - res.ElectricMean) / res.ConventionalMean * percentScale
	}
	return res
}

func hasCost(v dataset.Vehicle, costType CostType) bool {
	switch costType {
	case CostTypeFuel:
		return v.FuelCost > 0
	case CostTypeElectric:
		return v.ElectricCost > 0
	default:
		return false
	}
}

// FuelTypeCost is the mean total cost of one fuel type.
type FuelTypeCost struct {
	FuelType      string  `json:"fuel_type"`
	MeanTotalCost float64 `json:"mean_total_cost"`
	Count         int     `json:"count"`
}

// AverageCostByFuelType returns the mean total cost per fuel type, restricted
// to fuelTypes and sorted by fuel type. An empty selection yields no groups.
func AverageCostByFuelType(vehicles []dataset.Vehicle, fuelTypes []string) []FuelTypeCost {
	if len(fuelTypes) == 0 {
		return nil
	}
	selected := make(map[string]bool, len(fuelTypes))
	for _, f := range fuelTypes {
		selected[f] = true
	}

	sums := make(map[string]*FuelTypeCost)
	for _, v := range vehicles {
		if !selected[v.FuelType] {
			continue
		}
		g, ok := sums[v.FuelType]
		if !ok {
			g = &FuelTypeCost{FuelType: v.FuelType}
			sums[v.FuelType] = g
		}
		g.MeanTotalCost += v.TotalCost
		g.Count++
	}

	out := make([]FuelTypeCost, 0, len(sums))
	for _, g := range sums {
		g.MeanTotalCost /= float64(g.Count)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FuelType < out[j].FuelType })
	return out
}
