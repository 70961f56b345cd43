package dataset

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Layouts accepted for timestamps stored as strings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// column returns the chunks of the named column.
func column(tbl arrow.Table, name Name, col string) ([]arrow.Array, error) {
	idx := tbl.Schema().FieldIndices(col)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingColumn, name, col)
	}
	return tbl.Column(idx[0]).Data().Chunks(), nil
}

func unsupported(name Name, col string, dt arrow.DataType) error {
	return fmt.Errorf("%w: %s.%s is %s", ErrUnsupportedColumn, name, col, dt)
}

// floatColumn reads any integer or floating column as float64. Nulls read as 0.
func floatColumn(tbl arrow.Table, name Name, col string) ([]float64, error) {
	chunks, err := column(tbl, name, col)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, tbl.NumRows())
	for _, chunk := range chunks {
		for i := range chunk.Len() {
			if chunk.IsNull(i) {
				out = append(out, 0)
				continue
			}
			v, ok := numericValue(chunk, i)
			if !ok {
				return nil, unsupported(name, col, chunk.DataType())
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// intColumn reads a numeric column truncated to int.
func intColumn(tbl arrow.Table, name Name, col string) ([]int, error) {
	floats, err := floatColumn(tbl, name, col)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(floats))
	for i, f := range floats {
		out[i] = int(f)
	}
	return out, nil
}

func numericValue(a arrow.Array, i int) (float64, bool) {
	switch arr := a.(type) {
	case *array.Float64:
		return arr.Value(i), true
	case *array.Float32:
		return float64(arr.Value(i)), true
	case *array.Int64:
		return float64(arr.Value(i)), true
	case *array.Int32:
		return float64(arr.Value(i)), true
	case *array.Int16:
		return float64(arr.Value(i)), true
	case *array.Int8:
		return float64(arr.Value(i)), true
	case *array.Uint64:
		return float64(arr.Value(i)), true
	case *array.Uint32:
		return float64(arr.Value(i)), true
	case *array.Uint16:
		return float64(arr.Value(i)), true
	case *array.Uint8:
		return float64(arr.Value(i)), true
	default:
		return 0, false
	}
}

// stringColumn reads a string, large string or dictionary-encoded string column.
// Nulls read as "".
func stringColumn(tbl arrow.Table, name Name, col string) ([]string, error) {
	chunks, err := column(tbl, name, col)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, tbl.NumRows())
	for _, chunk := range chunks {
		for i := range chunk.Len() {
			if chunk.IsNull(i) {
				out = append(out, "")
				continue
			}
			v, ok := stringValue(chunk, i)
			if !ok {
				return nil, unsupported(name, col, chunk.DataType())
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func stringValue(a arrow.Array, i int) (string, bool) {
	switch arr := a.(type) {
	case *array.String:
		return arr.Value(i), true
	case *array.LargeString:
		return arr.Value(i), true
	case *array.Dictionary:
		return stringValue(arr.Dictionary(), arr.GetValueIndex(i))
	default:
		return "", false
	}
}

// timeColumn reads timestamp, date or string columns as UTC times.
// Nulls and unparseable strings read as the zero time.
func timeColumn(tbl arrow.Table, name Name, col string) ([]time.Time, error) {
	chunks, err := column(tbl, name, col)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, tbl.NumRows())
	for _, chunk := range chunks {
		for i := range chunk.Len() {
			if chunk.IsNull(i) {
				out = append(out, time.Time{})
				continue
			}
			v, ok := timeValue(chunk, i)
			if !ok {
				return nil, unsupported(name, col, chunk.DataType())
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func timeValue(a arrow.Array, i int) (time.Time, bool) {
	switch arr := a.(type) {
	case *array.Timestamp:
		unit := arr.DataType().(*arrow.TimestampType).Unit
		return arr.Value(i).ToTime(unit).UTC(), true
	case *array.Date32:
		return arr.Value(i).ToTime().UTC(), true
	case *array.Date64:
		return arr.Value(i).ToTime().UTC(), true
	case *array.String, *array.LargeString, *array.Dictionary:
		s, _ := stringValue(a, i)
		return parseTime(s), true
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
