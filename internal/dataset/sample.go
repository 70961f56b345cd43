package dataset

import (
	"math"
	"math/rand/v2"
	"path/filepath"
	"time"
)

// SampleOptions controls the synthetic dataset generator.
type SampleOptions struct {
	Seed     uint64
	Trips    int
	Vehicles int
	Fuel     int
	// Start is the first pickup day; trips spread over the following 28 days.
	Start time.Time
}

// DefaultSampleOptions returns a small, deterministic sample.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		Seed:     42,
		Trips:    500,
		Vehicles: 120,
		Fuel:     200,
		Start:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

//nolint:gochecknoglobals // Fixed vocabularies for sample data.
var (
	sampleTripTypes     = []string{"Street-hail", "Dispatch"}
	sampleManufacturers = []string{"Toyota", "Tesla", "Ford", "Nissan", "BMW"}
	sampleFuelTypes     = []string{"Petrol", "Electricity", "Diesel", "Petrol Hybrid"}
	samplePlaces        = []struct {
		name     string
		lat, lon float64
	}{
		{"Upper West Side", 40.787, -73.975},
		{"Chelsea - Clinton", 40.750, -73.996},
		{"Central Harlem", 40.811, -73.946},
		{"Williamsburg - Bushwick", 40.706, -73.939},
		{"Flushing - Clearview", 40.767, -73.819},
		{"South Beach - Tottenville", 40.540, -74.150},
		{"Fordham - Bronx Pk", 40.862, -73.888},
	}
	sampleYears = []int{2019, 2020, 2021, 2022}
)

// Sample generates one deterministic table per dataset.
func Sample(opts SampleOptions) map[Name]*Table {
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	trips := make([]Trip, opts.Trips)
	for i := range trips {
		pickup := opts.Start.Add(time.Duration(r.IntN(28*24*60)) * time.Minute)
		distance := round2(0.3 + r.ExpFloat64()*3)
		trips[i] = Trip{
			PickupDatetime: pickup,
			DayOfWeek:      DayOfWeek(pickup),
			TripDistance:   distance,
			TotalAmount:    round2(3.5 + distance*2.8 + r.Float64()*6),
			PassengerCount: 1 + r.IntN(5),
			Type:           sampleTripTypes[r.IntN(len(sampleTripTypes))],
		}
	}

	vehicles := make([]Vehicle, opts.Vehicles)
	for i := range vehicles {
		fuelType := sampleFuelTypes[r.IntN(len(sampleFuelTypes))]
		v := Vehicle{
			Manufacturer: sampleManufacturers[r.IntN(len(sampleManufacturers))],
			FuelType:     fuelType,
		}
		switch fuelType {
		case "Electricity":
			v.ElectricCost = round2(300 + r.Float64()*400)
		case "Petrol Hybrid":
			v.FuelCost = round2(500 + r.Float64()*400)
			v.ElectricCost = round2(100 + r.Float64()*200)
		default:
			v.FuelCost = round2(900 + r.Float64()*700)
		}
		v.TotalCost = round2(v.FuelCost + v.ElectricCost)
		vehicles[i] = v
	}

	var air []AirQuality
	for _, year := range sampleYears {
		for _, p := range samplePlaces {
			air = append(air, AirQuality{
				Year:         year,
				GeoPlaceName: p.name,
				Latitude:     p.lat,
				Longitude:    p.lon,
				DataValue:    round2(5 + r.Float64()*7),
			})
		}
	}

	fuel := make([]FuelEconomy, opts.Fuel)
	for i := range fuel {
		var co2, mpg float64
		switch r.IntN(3) {
		case 0:
			co2, mpg = 0, round2(90+r.Float64()*40)
		case 1:
			co2, mpg = round2(80+r.Float64()*120), round2(40+r.Float64()*20)
		default:
			co2, mpg = round2(210+r.Float64()*250), round2(15+r.Float64()*20)
		}
		fuel[i] = FuelEconomy{
			Manufacturer:   sampleManufacturers[r.IntN(len(sampleManufacturers))],
			CO2PerMile:     co2,
			MilesPerGallon: mpg,
		}
	}

	return map[Name]*Table{
		Trips:    {Name: Trips, Columns: schemaColumns(tripSchema), Trips: trips},
		Vehicles: {Name: Vehicles, Columns: schemaColumns(vehicleSchema), Vehicles: vehicles},
		Air:      {Name: Air, Columns: schemaColumns(airSchema), Air: air},
		Fuel:     {Name: Fuel, Columns: schemaColumns(fuelSchema), Fuel: fuel},
	}
}

// WriteSamples generates sample data and writes it under dir using files
// (dataset name to file name). It returns the written paths by dataset.
func WriteSamples(dir string, files map[Name]string, opts SampleOptions) (map[Name]string, error) {
	w := NewWriter()
	written := make(map[Name]string, len(files))
	for name, t := range Sample(opts) {
		file := files[name]
		if file == "" {
			file = string(name) + ".parquet"
		}
		path := filepath.Join(dir, file)
		if err := w.WriteTable(path, t); err != nil {
			return nil, err
		}
		written[name] = path
	}
	return written, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
