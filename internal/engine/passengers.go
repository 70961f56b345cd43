package engine

import (
	"sort"

	"github.com/rshade/fleetkpi/internal/dataset"
)

// PassengerIncome is the mean fare of trips with one passenger count.
type PassengerIncome struct {
	PassengerCount int     `json:"passenger_count"`
	MeanFare       float64 `json:"mean_fare"`
	Trips          int     `json:"trips"`
}

// IncomePerPassenger groups trips by passenger count, ascending.
func IncomePerPassenger(trips []dataset.Trip) []PassengerIncome {
	groups := make(map[int]*PassengerIncome)
	for _, t := range trips {
		g, ok := groups[t.PassengerCount]
		if !ok {
			g = &PassengerIncome{PassengerCount: t.PassengerCount}
			groups[t.PassengerCount] = g
		}
		g.MeanFare += t.TotalAmount
		g.Trips++
	}

	out := make([]PassengerIncome, 0, len(groups))
	for _, g := range groups {
		g.MeanFare /= float64(g.Trips)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PassengerCount < out[j].PassengerCount })
	return out
}
