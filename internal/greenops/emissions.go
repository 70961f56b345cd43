package greenops

import (
	"math"

	"github.com/rshade/fleetkpi/internal/dataset"
)

// AvoidedEmissions returns the avoided-emissions percentage for one
// manufacturer and a miles-per-gallon window. See ComputeAvoidedEmissions.
func AvoidedEmissions(
	records []dataset.FuelEconomy,
	manufacturer string,
	minMileage, maxMileage float64,
	params Params,
) float64 {
	return ComputeAvoidedEmissions(records, manufacturer, minMileage, maxMileage, params).Percent
}

// ComputeAvoidedEmissions computes the avoided-emissions KPI.
//
// Records are kept when their manufacturer matches exactly and
// minMileage <= miles_per_gallon <= maxMileage. Each kept electric or hybrid
// record contributes a reduction (maxCO2 - (co2 + offset)) / maxCO2, where
// maxCO2 is taken over all records, before filtering. The KPI is
//
//	(sum(red_e)*sum(mpg_e) + sum(red_h)*sum(mpg_h)) / sum(mpg) * 100
//
// An empty selection, a zero mpg total or a zero maxCO2 yield 0. The result
// is not clamped.
func ComputeAvoidedEmissions(
	records []dataset.FuelEconomy,
	manufacturer string,
	minMileage, maxMileage float64,
	params Params,
) AvoidedEmissionsResult {
	var res AvoidedEmissionsResult
	if len(records) == 0 {
		return res
	}

	res.MaxCO2 = math.Inf(-1)
	for _, r := range records {
		res.MaxCO2 = math.Max(res.MaxCO2, r.CO2PerMile)
	}

	matched := FilterFuel(records, manufacturer, minMileage, maxMileage)
	res.Matched = len(matched)
	for _, r := range matched {
		c := params.Thresholds.Categorize(r.CO2PerMile)
		var reduction float64
		if res.MaxCO2 != 0 {
			reduction = (res.MaxCO2 - (r.CO2PerMile + params.Offsets.Offset(c))) / res.MaxCO2
		}
		switch c {
		case CategoryElectric:
			res.ElectricMPG += r.MilesPerGallon
			res.ElectricReduction += reduction
		case CategoryHybrid:
			res.HybridMPG += r.MilesPerGallon
			res.HybridReduction += reduction
		default:
			res.ConventionalMPG += r.MilesPerGallon
		}
	}

	total := res.TotalMPG()
	if total == 0 || res.MaxCO2 == 0 {
		return res
	}
	res.Percent = (res.ElectricReduction*res.ElectricMPG + res.HybridReduction*res.HybridMPG) / total * percent
	return res
}

// CategorySummary returns the mean CO2 per mile and summed mpg of every
// category present in records, in lexical category order.
func CategorySummary(records []dataset.FuelEconomy, t Thresholds) []CategoryStat {
	acc := make(map[Category]*CategoryStat)
	co2 := make(map[Category]float64)
	for _, r := range records {
		c := t.Categorize(r.CO2PerMile)
		s, ok := acc[c]
		if !ok {
			s = &CategoryStat{Category: c}
			acc[c] = s
		}
		s.Count++
		s.TotalMPG += r.MilesPerGallon
		co2[c] += r.CO2PerMile
	}

	out := make([]CategoryStat, 0, len(acc))
	for _, c := range Categories() {
		s, ok := acc[c]
		if !ok {
			continue
		}
		s.MeanCO2 = co2[c] / float64(s.Count)
		out = append(out, *s)
	}
	return out
}

// FilterFuel returns the records of manufacturer whose miles per gallon lie
// within [minMileage, maxMileage].
func FilterFuel(records []dataset.FuelEconomy, manufacturer string, minMileage, maxMileage float64) []dataset.FuelEconomy {
	var out []dataset.FuelEconomy
	for _, r := range records {
		if r.Manufacturer == manufacturer && r.MilesPerGallon >= minMileage && r.MilesPerGallon <= maxMileage {
			out = append(out, r)
		}
	}
	return out
}
