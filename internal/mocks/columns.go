package mocks

import (
	"strconv"
	"strings"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// columnParam resolves a header named by query parameter key
func columnParam(ds models.Dataset, q map[string][]string, key string) (int, error) {
	var name string
	if v := q[key]; len(v) > 0 {
		name = v[0]
	}
	if name == "" {
		return -1, invalid("%s query param required", key)
	}
	return columnIndex(ds, name)
}

func columnIndex(ds models.Dataset, name string) (int, error) {
	for i, c := range ds.Columns {
		if c == name {
			return i, nil
		}
	}
	return -1, invalid("Invalid group_by or column: %s", name)
}

// cell returns row[idx] as text
func cell(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(models.CellString(row[idx]))
}

// numeric returns the parseable values of a column, skipping the rest
func numeric(ds models.Dataset, idx int) []float64 {
	var out []float64
	for _, row := range ds.Rows {
		if v, err := strconv.ParseFloat(cell(row, idx), 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// byRow returns the parseable values of a column with their row positions
func byRow(ds models.Dataset, idx int) (values []float64, rows []int) {
	for r, row := range ds.Rows {
		if v, err := strconv.ParseFloat(cell(row, idx), 64); err == nil {
			values = append(values, v)
			rows = append(rows, r)
		}
	}
	return values, rows
}

// pairs returns the rows where both columns parse
func pairs(ds models.Dataset, xIdx, yIdx int) (xs, ys []float64) {
	for _, row := range ds.Rows {
		x, errX := strconv.ParseFloat(cell(row, xIdx), 64)
		y, errY := strconv.ParseFloat(cell(row, yIdx), 64)
		if errX == nil && errY == nil {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// textRows renders every row as strings
func textRows(ds models.Dataset) [][]string {
	out := make([][]string, len(ds.Rows))
	for r, row := range ds.Rows {
		out[r] = make([]string, len(ds.Columns))
		for c := range ds.Columns {
			out[r][c] = cell(row, c)
		}
	}
	return out
}

func intParam(q map[string][]string, key string, def int) (int, error) {
	v := first(q, key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalid("invalid %s: %s", key, v)
	}
	return n, nil
}

func floatParam(q map[string][]string, key string, def float64) (float64, error) {
	v := first(q, key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, invalid("invalid %s: %s", key, v)
	}
	return f, nil
}

func first(q map[string][]string, key string) string {
	if v := q[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
