package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Dataset is the active tabular dataset an analysis runs against
type Dataset struct {
	ID      string          `json:"id"`
	Name    string          `json:"name,omitempty"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// Column returns the header at index i
func (d Dataset) Column(i int) (string, bool) {
	if i < 0 || i >= len(d.Columns) {
		return "", false
	}
	return d.Columns[i], true
}

// ColumnValues returns the values of column i as chart points, one per row.
// Cells that are not numeric become explicit nulls.
func (d Dataset) ColumnValues(i int) []DataPoint {
	values := make([]DataPoint, len(d.Rows))
	for r, row := range d.Rows {
		if i >= len(row) {
			continue
		}
		if v, ok := ToFloat(row[i]); ok {
			values[r] = Number(v)
		}
	}
	return values
}

// NumericColumns returns the headers whose first-row value is numeric
func (d Dataset) NumericColumns() []string {
	if len(d.Rows) == 0 {
		return nil
	}
	var cols []string
	for i, name := range d.Columns {
		if i >= len(d.Rows[0]) {
			break
		}
		if _, ok := ToFloat(d.Rows[0][i]); ok {
			cols = append(cols, name)
		}
	}
	return cols
}

// ToFloat converts a loosely typed cell into a finite float. "NaN" and
// "Inf" cells are not numbers here.
func ToFloat(val interface{}) (float64, bool) {
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, IsFinite(f)
}

// CellString renders a loosely typed cell as text
func CellString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
