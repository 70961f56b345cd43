package engine

import (
	"github.com/rshade/fleetkpi/internal/dataset"
)

// PM25Points returns the measurements of year whose place is one of regions.
func PM25Points(air []dataset.AirQuality, year int, regions []string) []dataset.AirQuality {
	if len(regions) == 0 {
		return nil
	}
	selected := make(map[string]bool, len(regions))
	for _, r := range regions {
		selected[r] = true
	}

	var out []dataset.AirQuality
	for _, a := range air {
		if a.Year == year && selected[a.GeoPlaceName] {
			out = append(out, a)
		}
	}
	return out
}
