package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// readParquet reads the whole file at path into an Arrow table. The caller
// must Release the table.
func readParquet(ctx context.Context, path string, mem memory.Allocator) (arrow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := pqarrow.ReadTable(ctx, f, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("reading parquet %s: %w", path, err)
	}
	return tbl, nil
}

// decode converts an Arrow table into the typed Table for name.
func decode(name Name, tbl arrow.Table) (*Table, error) {
	out := &Table{Name: name, Columns: schemaColumns(tbl.Schema())}
	var err error
	switch name {
	case Trips:
		out.Trips, err = decodeTrips(tbl)
	case Vehicles:
		out.Vehicles, err = decodeVehicles(tbl)
	case Air:
		out.Air, err = decodeAir(tbl)
	case Fuel:
		out.Fuel, err = decodeFuel(tbl)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func schemaColumns(schema *arrow.Schema) []string {
	names := make([]string, 0, schema.NumFields())
	for _, f := range schema.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func decodeTrips(tbl arrow.Table) ([]Trip, error) {
	pickups, err := timeColumn(tbl, Trips, colPickupDatetime)
	if err != nil {
		return nil, err
	}
	distances, err := floatColumn(tbl, Trips, colTripDistance)
	if err != nil {
		return nil, err
	}
	amounts, err := floatColumn(tbl, Trips, colTotalAmount)
	if err != nil {
		return nil, err
	}
	passengers, err := intColumn(tbl, Trips, colPassengerCount)
	if err != nil {
		return nil, err
	}
	types, err := stringColumn(tbl, Trips, colTripType)
	if err != nil {
		return nil, err
	}

	trips := make([]Trip, len(pickups))
	for i := range trips {
		trips[i] = Trip{
			PickupDatetime: pickups[i],
			DayOfWeek:      DayOfWeek(pickups[i]),
			TripDistance:   distances[i],
			TotalAmount:    amounts[i],
			PassengerCount: passengers[i],
			Type:           types[i],
		}
	}
	return trips, nil
}

func decodeVehicles(tbl arrow.Table) ([]Vehicle, error) {
	manufs, err := stringColumn(tbl, Vehicles, colManuf)
	if err != nil {
		return nil, err
	}
	fuelTypes, err := stringColumn(tbl, Vehicles, colFuelType)
	if err != nil {
		return nil, err
	}
	fuelCosts, err := floatColumn(tbl, Vehicles, colFuelCost)
	if err != nil {
		return nil, err
	}
	electricCosts, err := floatColumn(tbl, Vehicles, colElectricCost)
	if err != nil {
		return nil, err
	}
	totals, err := floatColumn(tbl, Vehicles, colTotalCost)
	if err != nil {
		return nil, err
	}

	vehicles := make([]Vehicle, len(manufs))
	for i := range vehicles {
		vehicles[i] = Vehicle{
			Manufacturer: manufs[i],
			FuelType:     fuelTypes[i],
			FuelCost:     fuelCosts[i],
			ElectricCost: electricCosts[i],
			TotalCost:    totals[i],
		}
	}
	return vehicles, nil
}

func decodeAir(tbl arrow.Table) ([]AirQuality, error) {
	years, err := intColumn(tbl, Air, colYear)
	if err != nil {
		return nil, err
	}
	places, err := stringColumn(tbl, Air, colGeoPlaceName)
	if err != nil {
		return nil, err
	}
	lats, err := floatColumn(tbl, Air, colLatitude)
	if err != nil {
		return nil, err
	}
	lons, err := floatColumn(tbl, Air, colLongitude)
	if err != nil {
		return nil, err
	}
	values, err := floatColumn(tbl, Air, colDataValue)
	if err != nil {
		return nil, err
	}

	rows := make([]AirQuality, len(years))
	for i := range rows {
		rows[i] = AirQuality{
			Year:         years[i],
			GeoPlaceName: places[i],
			Latitude:     lats[i],
			Longitude:    lons[i],
			DataValue:    values[i],
		}
	}
	return rows, nil
}

func decodeFuel(tbl arrow.Table) ([]FuelEconomy, error) {
	manufacturers, err := stringColumn(tbl, Fuel, colManufacturer)
	if err != nil {
		return nil, err
	}
	co2, err := floatColumn(tbl, Fuel, colCO2PerMile)
	if err != nil {
		return nil, err
	}
	mpg, err := floatColumn(tbl, Fuel, colMilesPerGallon)
	if err != nil {
		return nil, err
	}

	rows := make([]FuelEconomy, len(manufacturers))
	for i := range rows {
		rows[i] = FuelEconomy{
			Manufacturer:   manufacturers[i],
			CO2PerMile:     co2[i],
			MilesPerGallon: mpg[i],
		}
	}
	return rows, nil
}

// DayOfWeek returns the English weekday name of t, or "" for the zero time.
func DayOfWeek(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Weekday().String()
}
