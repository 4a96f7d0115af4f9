package mocks

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// dropRowsWithMissing answers {rows} with the header followed by every
// row that has no empty cell
func dropRowsWithMissing(ds models.Dataset, _ url.Values) (interface{}, error) {
	rows := [][]string{append([]string(nil), ds.Columns...)}
	for _, row := range textRows(ds) {
		complete := true
		for _, c := range row {
			if c == "" {
				complete = false
				break
			}
		}
		if complete {
			rows = append(rows, row)
		}
	}
	return map[string]interface{}{"rows": rows}, nil
}

// fillMissingWith answers {rows} with every empty cell replaced by
// default_value
func fillMissingWith(ds models.Dataset, q url.Values) (interface{}, error) {
	fill := q.Get("default_value")
	if fill == "" {
		return nil, invalid("default_value query param required")
	}
	rows := textRows(ds)
	for _, row := range rows {
		for c := range row {
			if row[c] == "" {
				row[c] = fill
			}
		}
	}
	return map[string]interface{}{"rows": rows}, nil
}

// applyLogTransformation answers {rows} of [ln(value), value]. Any value
// that is not strictly positive fails the whole request.
func applyLogTransformation(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		text := cell(row, idx)
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || v <= 0 {
			return nil, invalid("invalid value for log transform")
		}
		rows = append(rows, []string{strconv.FormatFloat(math.Log(v), 'f', -1, 64), text})
	}
	return map[string]interface{}{"rows": rows}, nil
}

// normalizeColumn answers {rows} of [value, min-max normalized value]
func normalizeColumn(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	values, _ := byRow(ds, idx)
	if len(values) == 0 {
		return nil, invalid("column %s has no numeric values", ds.Columns[idx])
	}
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)

	rows := make([][]string, len(values))
	for i, v := range values {
		norm := 0.0
		if hi != lo {
			norm = (v - lo) / (hi - lo)
		}
		rows[i] = []string{strconv.FormatFloat(v, 'f', -1, 64), fmt.Sprintf("%f", norm)}
	}
	return map[string]interface{}{"rows": rows}, nil
}

// standardizeColumn answers {column: [z-scores]} for every requested
// column, using the population standard deviation
func standardizeColumn(ds models.Dataset, q url.Values) (interface{}, error) {
	names := q["column"]
	if len(names) == 0 {
		return nil, invalid("column query param required")
	}
	out := newObject()
	for _, name := range names {
		idx, err := columnIndex(ds, name)
		if err != nil {
			return nil, err
		}
		values := numeric(ds, idx)
		mean, _ := stats.Mean(values)
		sd, _ := stats.StandardDeviationPopulation(values)

		scores := make([]interface{}, len(values))
		for i, v := range values {
			if sd == 0 {
				scores[i] = 0.0
				continue
			}
			scores[i] = num((v - mean) / sd)
		}
		out.set(name, scores)
	}
	return out, nil
}

var filterOps = map[string]func(a, b float64) bool{
	"gt":  func(a, b float64) bool { return a > b },
	"gte": func(a, b float64) bool { return a >= b },
	"lt":  func(a, b float64) bool { return a < b },
	"lte": func(a, b float64) bool { return a <= b },
	"eq":  func(a, b float64) bool { return a == b },
	"ne":  func(a, b float64) bool { return a != b },
}

// filterSort answers {data: [row objects]} after an optional numeric
// filter (filter_col, filter_op, filter_val) and a sort on sort_by, which
// defaults to column
func filterSort(ds models.Dataset, q url.Values) (interface{}, error) {
	rows := textRows(ds)

	if q.Get("filter_col") != "" {
		idx, err := columnParam(ds, q, "filter_col")
		if err != nil {
			return nil, err
		}
		op, ok := filterOps[q.Get("filter_op")]
		if !ok {
			return nil, invalid("Invalid filter operation: %s", q.Get("filter_op"))
		}
		target, err := strconv.ParseFloat(q.Get("filter_val"), 64)
		if err != nil {
			return nil, invalid("Invalid filter value")
		}
		kept := rows[:0]
		for _, row := range rows {
			if v, err := strconv.ParseFloat(row[idx], 64); err == nil && op(v, target) {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	sortKey := "sort_by"
	if q.Get(sortKey) == "" {
		sortKey = "column"
	}
	if q.Get(sortKey) != "" {
		idx, err := columnParam(ds, q, sortKey)
		if err != nil {
			return nil, err
		}
		desc := q.Get("order") == "desc"
		sort.SliceStable(rows, func(i, j int) bool {
			a, errA := strconv.ParseFloat(rows[i][idx], 64)
			b, errB := strconv.ParseFloat(rows[j][idx], 64)
			if errA != nil || errB != nil {
				if desc {
					return rows[i][idx] > rows[j][idx]
				}
				return rows[i][idx] < rows[j][idx]
			}
			if desc {
				return a > b
			}
			return a < b
		})
	}

	data := make([]*object, len(rows))
	for i, row := range rows {
		obj := newObject()
		for c, name := range ds.Columns {
			obj.set(name, row[c])
		}
		data[i] = obj
	}
	return map[string]interface{}{"data": data}, nil
}
