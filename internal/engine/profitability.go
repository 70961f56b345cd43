package engine

import (
	"github.com/rshade/fleetkpi/internal/dataset"
)

// percentScale turns a ratio into the dashboard's percentage scale.
const percentScale = 100.0

// Weekdays lists English weekday names Monday first, the order used by every
// day-of-week series.
//
//nolint:gochecknoglobals // Fixed calendar order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TrendPoint is one labelled value of a series.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Profitability returns the fare earned per mile driven, scaled by 100:
// (sum(total_amount) / sum(trip_distance)) * 100. A zero distance total
// yields 0. Negative values pass through.
func Profitability(trips []dataset.Trip) float64 {
	var fare, distance float64
	for _, t := range trips {
		fare += t.TotalAmount
		distance += t.TripDistance
	}
	return ratio(fare, distance)
}

// ProfitabilityTrend computes Profitability per day of week, Monday to
// Sunday, for the days present in trips.
func ProfitabilityTrend(trips []dataset.Trip) []TrendPoint {
	type sums struct{ fare, distance float64 }
	byDay := make(map[string]*sums, len(Weekdays))
	for _, t := range trips {
		s, ok := byDay[t.DayOfWeek]
		if !ok {
			s = &sums{}
			byDay[t.DayOfWeek] = s
		}
		s.fare += t.TotalAmount
		s.distance += t.TripDistance
	}

	points := make([]TrendPoint, 0, len(byDay))
	for _, day := range Weekdays {
		s, ok := byDay[day]
		if !ok {
			continue
		}
		points = append(points, TrendPoint{Label: day, Value: ratio(s.fare, s.distance)})
	}
	return points
}

func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * percentScale
}
