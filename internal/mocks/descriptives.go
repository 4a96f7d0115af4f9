package mocks

import (
	"net/url"

	"github.com/montanaflynn/stats"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// reducer collapses a set of values into one statistic
type reducer func(values []float64) (float64, error)

var reducers = map[string]reducer{
	"mean":     func(v []float64) (float64, error) { return stats.Mean(v) },
	"median":   func(v []float64) (float64, error) { return stats.Median(v) },
	"stddev":   func(v []float64) (float64, error) { return stats.StandardDeviationSample(v) },
	"variance": func(v []float64) (float64, error) { return stats.SampleVariance(v) },
	"min":      func(v []float64) (float64, error) { return stats.Min(v) },
	"max":      func(v []float64) (float64, error) { return stats.Max(v) },
	"sum":      func(v []float64) (float64, error) { return stats.Sum(v) },
	"count":    func(v []float64) (float64, error) { return float64(len(v)), nil },
	"range": func(v []float64) (float64, error) {
		lo, err := stats.Min(v)
		if err != nil {
			return 0, err
		}
		hi, err := stats.Max(v)
		return hi - lo, err
	},
}

// scalar answers {name: statistic} over one column
func scalar(name string, fn reducer) analysis {
	return func(ds models.Dataset, q url.Values) (interface{}, error) {
		idx, err := columnParam(ds, q, "column")
		if err != nil {
			return nil, err
		}
		v, err := fn(numeric(ds, idx))
		if err != nil {
			return nil, invalid("Invalid input: %v", err)
		}
		out := newObject()
		out.set(name, num(v))
		return out, nil
	}
}

// mode answers {"mode": value} with the most frequent non-empty cell;
// ties go to the value seen first
func mode(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	var cells []string
	for _, row := range ds.Rows {
		if c := cell(row, idx); c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) == 0 {
		return nil, invalid("Invalid input: no values")
	}
	out := newObject()
	out.set("mode", modeOf(cells))
	return out, nil
}

func modeOf(cells []string) string {
	counts := make(map[string]int, len(cells))
	best, bestCount := "", 0
	for _, c := range cells {
		counts[c]++
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

// groups collects a column's cells per group label, in first-seen order
type groups struct {
	labels []string
	values map[string][]float64
	cells  map[string][]string
}

func groupBy(ds models.Dataset, keyIdx, valIdx int) groups {
	g := groups{values: make(map[string][]float64), cells: make(map[string][]string)}
	numericCol := numericByRow(ds, valIdx)
	for r, row := range ds.Rows {
		key := cell(row, keyIdx)
		if _, seen := g.cells[key]; !seen {
			g.labels = append(g.labels, key)
			g.cells[key] = nil
		}
		if c := cell(row, valIdx); c != "" {
			g.cells[key] = append(g.cells[key], c)
		}
		if v, ok := numericCol[r]; ok {
			g.values[key] = append(g.values[key], v)
		}
	}
	return g
}

func numericByRow(ds models.Dataset, idx int) map[int]float64 {
	values, rows := byRow(ds, idx)
	out := make(map[int]float64, len(rows))
	for i, r := range rows {
		out[r] = values[i]
	}
	return out
}

// grouped answers {group: statistic} for every group label
func grouped(fn reducer) analysis {
	return func(ds models.Dataset, q url.Values) (interface{}, error) {
		g, err := groupsOf(ds, q)
		if err != nil {
			return nil, err
		}
		out := newObject()
		for _, label := range g.labels {
			v, err := fn(g.values[label])
			if err != nil {
				out.set(label, nil)
				continue
			}
			out.set(label, num(v))
		}
		return out, nil
	}
}

func groupedMode(ds models.Dataset, q url.Values) (interface{}, error) {
	g, err := groupsOf(ds, q)
	if err != nil {
		return nil, err
	}
	out := newObject()
	for _, label := range g.labels {
		if len(g.cells[label]) == 0 {
			out.set(label, nil)
			continue
		}
		out.set(label, modeOf(g.cells[label]))
	}
	return out, nil
}

func groupsOf(ds models.Dataset, q url.Values) (groups, error) {
	keyIdx, err := columnParam(ds, q, "group_by")
	if err != nil {
		return groups{}, err
	}
	valIdx, err := columnParam(ds, q, "column")
	if err != nil {
		return groups{}, err
	}
	return groupBy(ds, keyIdx, valIdx), nil
}

// pivot answers {row: {column: statistic}} keyed by the row_field and
// column values, aggregating value_field
func pivot(fn reducer) analysis {
	return func(ds models.Dataset, q url.Values) (interface{}, error) {
		rowIdx, err := columnParam(ds, q, "row_field")
		if err != nil {
			return nil, err
		}
		colIdx, err := columnParam(ds, q, "column")
		if err != nil {
			return nil, err
		}
		valIdx, err := columnParam(ds, q, "value_field")
		if err != nil {
			return nil, err
		}

		values := numericByRow(ds, valIdx)
		type bucket struct {
			cols   []string
			values map[string][]float64
		}
		var rowKeys []string
		buckets := make(map[string]*bucket)
		for r, row := range ds.Rows {
			v, ok := values[r]
			if !ok {
				continue
			}
			rk, ck := cell(row, rowIdx), cell(row, colIdx)
			b, seen := buckets[rk]
			if !seen {
				b = &bucket{values: make(map[string][]float64)}
				buckets[rk] = b
				rowKeys = append(rowKeys, rk)
			}
			if _, seen := b.values[ck]; !seen {
				b.cols = append(b.cols, ck)
			}
			b.values[ck] = append(b.values[ck], v)
		}

		out := newObject()
		for _, rk := range rowKeys {
			b := buckets[rk]
			inner := newObject()
			for _, ck := range b.cols {
				v, err := fn(b.values[ck])
				if err != nil {
					inner.set(ck, nil)
					continue
				}
				inner.set(ck, num(v))
			}
			out.set(rk, inner)
		}
		return out, nil
	}
}
