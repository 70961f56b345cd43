package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies one of the four datasets.
type Name string

// Known datasets.
const (
	Trips    Name = "trips"
	Vehicles Name = "vehicles"
	Air      Name = "air"
	Fuel     Name = "fuel"
)

// Dataset errors.
var (
	ErrUnknownDataset    = errors.New("unknown dataset")
	ErrMissingColumn     = errors.New("missing column")
	ErrUnsupportedColumn = errors.New("unsupported column type")
	ErrNoPath            = errors.New("no file configured for dataset")
)

// Names returns every dataset name in display order.
func Names() []Name {
	return []Name{Trips, Vehicles, Air, Fuel}
}

// ParseName validates a dataset identifier.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	switch n {
	case Trips, Vehicles, Air, Fuel:
		return n, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, s)
	}
}

// String implements fmt.Stringer.
func (n Name) String() string {
	return string(n)
}

// Description is a one-line summary shown by `datasets list`.
func (n Name) Description() string {
	switch n {
	case Trips:
		return "taxi trip records (fare, distance, passengers, trip type)"
	case Vehicles:
		return "vehicle running costs per manufacturer and fuel type"
	case Air:
		return "PM2.5 air-quality measurements per place and year"
	case Fuel:
		return "fuel-economy records (CO2 per mile, miles per gallon)"
	default:
		return ""
	}
}
