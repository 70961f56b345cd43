package dataset

import "time"

// Trip is one taxi trip.
type Trip struct {
	PickupDatetime time.Time `json:"pickup_datetime"`
	// DayOfWeek is the English weekday name of PickupDatetime, derived at load.
	DayOfWeek      string    `json:"day_of_week"`
	TripDistance   float64   `json:"trip_distance"`
	TotalAmount    float64   `json:"total_amount"`
	PassengerCount int       `json:"passenger_count"`
	Type           string    `json:"type"`
}

// Vehicle is one vehicle cost record.
type Vehicle struct {
	Manufacturer string  `json:"manuf"`
	FuelType     string  `json:"fuel_type"`
	FuelCost     float64 `json:"fuel_cost"`
	ElectricCost float64 `json:"electric_cost"`
	TotalCost    float64 `json:"total_cost"`
}

// AirQuality is one PM2.5 measurement.
type AirQuality struct {
	Year         int     `json:"year"`
	GeoPlaceName string  `json:"geo_place_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	DataValue    float64 `json:"data_value"`
}

// FuelEconomy is one fuel-economy record.
type FuelEconomy struct {
	Manufacturer   string  `json:"manufacturer"`
	CO2PerMile     float64 `json:"co2_per_mile"`
	MilesPerGallon float64 `json:"miles_per_gallon"`
}

// Table is an in-memory dataset. Exactly one of the record slices is
// populated, matching Name.
type Table struct {
	Name     Name
	Columns  []string
	Trips    []Trip
	Vehicles []Vehicle
	Air      []AirQuality
	Fuel     []FuelEconomy
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	switch t.Name {
	case Trips:
		return len(t.Trips)
	case Vehicles:
		return len(t.Vehicles)
	case Air:
		return len(t.Air)
	case Fuel:
		return len(t.Fuel)
	default:
		return 0
	}
}

// Column names as stored in Parquet.
const (
	colPickupDatetime = "pickup_datetime"
	colTripDistance   = "trip_distance"
	colTotalAmount    = "total_amount"
	colPassengerCount = "passenger_count"
	colTripType       = "type"

	colManuf        = "manuf"
	colFuelType     = "fuel_type"
	colFuelCost     = "fuel_cost"
	colElectricCost = "electric_cost"
	colTotalCost    = "total_cost"

	colYear         = "year"
	colGeoPlaceName = "geo_place_name"
	colLatitude     = "latitude"
	colLongitude    = "longitude"
	colDataValue    = "data_value"

	colManufacturer   = "manufacturer"
	colCO2PerMile     = "co2_per_mile"
	colMilesPerGallon = "miles_per_gallon"
)
