package mocks

import (
	"net/url"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

type correlator func(xs, ys []float64) (float64, error)

var correlators = map[string]correlator{
	"pearson":  pearson,
	"spearman": spearman,
}

func pearson(xs, ys []float64) (float64, error) {
	return stats.Pearson(xs, ys)
}

func spearman(xs, ys []float64) (float64, error) {
	return stats.Pearson(ranks(xs), ranks(ys))
}

// ranks assigns 1-based ranks, averaging ties
func ranks(values []float64) []float64 {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	out := make([]float64, len(values))
	for i := 0; i < len(order); {
		j := i
		for j+1 < len(order) && values[order[j+1]] == values[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[order[k]] = avg
		}
		i = j + 1
	}
	return out
}

// correlation answers {name: r} between the column and row_field columns
func correlation(name string, fn correlator) analysis {
	return func(ds models.Dataset, q url.Values) (interface{}, error) {
		xIdx, err := columnParam(ds, q, "column")
		if err != nil {
			return nil, err
		}
		yIdx, err := columnParam(ds, q, "row_field")
		if err != nil {
			return nil, err
		}
		xs, ys := pairs(ds, xIdx, yIdx)
		if len(xs) < 2 {
			return nil, invalid("Invalid input: need at least two paired values")
		}
		r, err := fn(xs, ys)
		if err != nil {
			return nil, err
		}
		out := newObject()
		out.set(name, num(r))
		return out, nil
	}
}

// correlationMatrix answers {colA: {colB: r}} for every pair of the
// repeated column parameter
func correlationMatrix(ds models.Dataset, q url.Values) (interface{}, error) {
	names := q["column"]
	if len(names) < 2 {
		return nil, invalid("Invalid input: need at least two columns")
	}
	method := q.Get("method")
	if method == "" {
		method = "pearson"
	}
	fn, ok := correlators[method]
	if !ok {
		return nil, invalid("Invalid input: unknown correlation method %s", method)
	}

	idx := make([]int, len(names))
	for i, name := range names {
		var err error
		if idx[i], err = columnIndex(ds, name); err != nil {
			return nil, err
		}
	}

	out := newObject()
	for i, a := range names {
		row := newObject()
		for j, b := range names {
			xs, ys := pairs(ds, idx[i], idx[j])
			r, err := fn(xs, ys)
			if err != nil || len(xs) < 2 {
				row.set(b, nil)
				continue
			}
			row.set(b, num(r))
		}
		out.set(a, row)
	}
	return out, nil
}
