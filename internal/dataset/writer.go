package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

const rowGroupSize = 64 * 1024

//nolint:gochecknoglobals // Immutable Arrow schemas.
var (
	tripSchema = arrow.NewSchema([]arrow.Field{
		{Name: colPickupDatetime, Type: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}},
		{Name: colTripDistance, Type: arrow.PrimitiveTypes.Float64},
		{Name: colTotalAmount, Type: arrow.PrimitiveTypes.Float64},
		{Name: colPassengerCount, Type: arrow.PrimitiveTypes.Int64},
		{Name: colTripType, Type: arrow.BinaryTypes.String},
	}, nil)
	vehicleSchema = arrow.NewSchema([]arrow.Field{
		{Name: colManuf, Type: arrow.BinaryTypes.String},
		{Name: colFuelType, Type: arrow.BinaryTypes.String},
		{Name: colFuelCost, Type: arrow.PrimitiveTypes.Float64},
		{Name: colElectricCost, Type: arrow.PrimitiveTypes.Float64},
		{Name: colTotalCost, Type: arrow.PrimitiveTypes.Float64},
	}, nil)
	airSchema = arrow.NewSchema([]arrow.Field{
		{Name: colYear, Type: arrow.PrimitiveTypes.Int64},
		{Name: colGeoPlaceName, Type: arrow.BinaryTypes.String},
		{Name: colLatitude, Type: arrow.PrimitiveTypes.Float64},
		{Name: colLongitude, Type: arrow.PrimitiveTypes.Float64},
		{Name: colDataValue, Type: arrow.PrimitiveTypes.Float64},
	}, nil)
	fuelSchema = arrow.NewSchema([]arrow.Field{
		{Name: colManufacturer, Type: arrow.BinaryTypes.String},
		{Name: colCO2PerMile, Type: arrow.PrimitiveTypes.Float64},
		{Name: colMilesPerGallon, Type: arrow.PrimitiveTypes.Float64},
	}, nil)
)

// Writer writes typed records to Snappy-compressed Parquet files.
type Writer struct {
	mem memory.Allocator
}

// NewWriter returns a Writer backed by the Go allocator.
func NewWriter() *Writer {
	return &Writer{mem: memory.NewGoAllocator()}
}

// WriteTable writes the populated record slice of t to path.
func (w *Writer) WriteTable(path string, t *Table) error {
	switch t.Name {
	case Trips:
		return w.WriteTrips(path, t.Trips)
	case Vehicles:
		return w.WriteVehicles(path, t.Vehicles)
	case Air:
		return w.WriteAir(path, t.Air)
	case Fuel:
		return w.WriteFuel(path, t.Fuel)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDataset, t.Name)
	}
}

// WriteTrips writes trip records. DayOfWeek is derived on read and not stored.
func (w *Writer) WriteTrips(path string, trips []Trip) error {
	b := array.NewRecordBuilder(w.mem, tripSchema)
	defer b.Release()
	for _, t := range trips {
		b.Field(0).(*array.TimestampBuilder).Append(arrow.Timestamp(t.PickupDatetime.UnixMicro()))
		b.Field(1).(*array.Float64Builder).Append(t.TripDistance)
		b.Field(2).(*array.Float64Builder).Append(t.TotalAmount)
		b.Field(3).(*array.Int64Builder).Append(int64(t.PassengerCount))
		b.Field(4).(*array.StringBuilder).Append(t.Type)
	}
	return w.flush(path, b)
}

// WriteVehicles writes vehicle records.
func (w *Writer) WriteVehicles(path string, vehicles []Vehicle) error {
	b := array.NewRecordBuilder(w.mem, vehicleSchema)
	defer b.Release()
	for _, v := range vehicles {
		b.Field(0).(*array.StringBuilder).Append(v.Manufacturer)
		b.Field(1).(*array.StringBuilder).Append(v.FuelType)
		b.Field(2).(*array.Float64Builder).Append(v.FuelCost)
		b.Field(3).(*array.Float64Builder).Append(v.ElectricCost)
		b.Field(4).(*array.Float64Builder).Append(v.TotalCost)
	}
	return w.flush(path, b)
}

// WriteAir writes air-quality records.
func (w *Writer) WriteAir(path string, rows []AirQuality) error {
	b := array.NewRecordBuilder(w.mem, airSchema)
	defer b.Release()
	for _, r := range rows {
		b.Field(0).(*array.Int64Builder).Append(int64(r.Year))
		b.Field(1).(*array.StringBuilder).Append(r.GeoPlaceName)
		b.Field(2).(*array.Float64Builder).Append(r.Latitude)
		b.Field(3).(*array.Float64Builder).Append(r.Longitude)
		b.Field(4).(*array.Float64Builder).Append(r.DataValue)
	}
	return w.flush(path, b)
}

// WriteFuel writes fuel-economy records.
func (w *Writer) WriteFuel(path string, rows []FuelEconomy) error {
	b := array.NewRecordBuilder(w.mem, fuelSchema)
	defer b.Release()
	for _, r := range rows {
		b.Field(0).(*array.StringBuilder).Append(r.Manufacturer)
		b.Field(1).(*array.Float64Builder).Append(r.CO2PerMile)
		b.Field(2).(*array.Float64Builder).Append(r.MilesPerGallon)
	}
	return w.flush(path, b)
}

func (w *Writer) flush(path string, b *array.RecordBuilder) error {
	rec := b.NewRecord()
	defer rec.Release()

	tbl := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer tbl.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithAllocator(w.mem),
	)
	var buf bytes.Buffer
	if err := pqarrow.WriteTable(tbl, &buf, rowGroupSize, props, pqarrow.DefaultWriterProps()); err != nil {
		return fmt.Errorf("encoding parquet %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
