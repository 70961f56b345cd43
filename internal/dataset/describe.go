package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColumnStats is the summary of one numeric column.
type ColumnStats struct {
	Column string             `json:"column"`
	Count  int                `json:"count"`
	Stats  map[string]float64 `json:"stats"`
	// Order lists the keys of Stats in display order (mean, median, stddev, min, quartiles, max).
	Order []string `json:"order"`
}

// describeLabelColumn is the name gota gives the statistic label column.
const describeLabelColumn = "column"

// Describe computes summary statistics for every numeric column of t.
func Describe(t *Table) ([]ColumnStats, error) {
	cols := numericColumns(t)
	if len(cols) == 0 || t.Len() == 0 {
		return nil, nil
	}

	list := make([]series.Series, 0, len(cols))
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		list = append(list, series.New(c.values, series.Float, c.name))
		names = append(names, c.name)
	}
	df := dataframe.New(list...)
	if df.Err != nil {
		return nil, fmt.Errorf("building dataframe for %s: %w", t.Name, df.Err)
	}

	desc := df.Describe()
	if desc.Err != nil {
		return nil, fmt.Errorf("describing %s: %w", t.Name, desc.Err)
	}
	labels := desc.Col(describeLabelColumn).Records()

	out := make([]ColumnStats, 0, len(names))
	for _, name := range names {
		values := desc.Col(name).Float()
		cs := ColumnStats{
			Column: name,
			Count:  df.Nrow(),
			Stats:  make(map[string]float64, len(labels)),
			Order:  labels,
		}
		for i, label := range labels {
			if i < len(values) {
				cs.Stats[label] = values[i]
			}
		}
		out = append(out, cs)
	}
	return out, nil
}

type numericColumn struct {
	name   string
	values []float64
}

func numericColumns(t *Table) []numericColumn {
	switch t.Name {
	case Trips:
		return []numericColumn{
			{colTripDistance, collect(t.Trips, func(r Trip) float64 { return r.TripDistance })},
			{colTotalAmount, collect(t.Trips, func(r Trip) float64 { return r.TotalAmount })},
			{colPassengerCount, collect(t.Trips, func(r Trip) float64 { return float64(r.PassengerCount) })},
		}
	case Vehicles:
		return []numericColumn{
			{colFuelCost, collect(t.Vehicles, func(r Vehicle) float64 { return r.FuelCost })},
			{colElectricCost, collect(t.Vehicles, func(r Vehicle) float64 { return r.ElectricCost })},
			{colTotalCost, collect(t.Vehicles, func(r Vehicle) float64 { return r.TotalCost })},
		}
	case Air:
		return []numericColumn{
			{colYear, collect(t.Air, func(r AirQuality) float64 { return float64(r.Year) })},
			{colLatitude, collect(t.Air, func(r AirQuality) float64 { return r.Latitude })},
			{colLongitude, collect(t.Air, func(r AirQuality) float64 { return r.Longitude })},
			{colDataValue, collect(t.Air, func(r AirQuality) float64 { return r.DataValue })},
		}
	case Fuel:
		return []numericColumn{
			{colCO2PerMile, collect(t.Fuel, func(r FuelEconomy) float64 { return r.CO2PerMile })},
			{colMilesPerGallon, collect(t.Fuel, func(r FuelEconomy) float64 { return r.MilesPerGallon })},
		}
	default:
		return nil
	}
}

func collect[T any](rows []T, f func(T) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = f(r)
	}
	return out
}
