package mocks

import (
	"fmt"
	"math"
	"net/url"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

const (
	defaultBins      = 10
	defaultKDEPoints = 50
	defaultZScore    = 2.0
)

// histogram answers {labels, counts} over evenly spaced bins
func histogram(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	bins, err := intParam(q, "num_bins", defaultBins)
	if err != nil {
		return nil, err
	}
	data := numeric(ds, idx)
	if len(data) == 0 {
		return nil, invalid("no data points provided")
	}
	if bins <= 0 {
		return nil, invalid("number of bins must be positive")
	}

	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	counts := make([]int, bins)
	for _, v := range data {
		i := int((v - lo) / width)
		if i == bins {
			i--
		}
		counts[i]++
	}

	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("[%.2f, %.2f]", lo+width*float64(i), lo+width*float64(i+1))
	}

	out := newObject()
	out.set("labels", labels)
	out.set("counts", counts)
	return out, nil
}

// kde answers {labels, densities} for a Gaussian kernel density estimate.
// Without an explicit bandwidth Silverman's rule of thumb is used.
func kde(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	points, err := intParam(q, "num_points", defaultKDEPoints)
	if err != nil {
		return nil, err
	}
	bandwidth, err := floatParam(q, "bandwidth", 0)
	if err != nil {
		return nil, err
	}

	data := numeric(ds, idx)
	if len(data) == 0 {
		return nil, invalid("no data points provided")
	}
	if points < 2 {
		return nil, invalid("number of output points must be at least 2")
	}
	if bandwidth <= 0 {
		sd, _ := stats.StandardDeviationSample(data)
		bandwidth = 1.06 * sd * math.Pow(float64(len(data)), -0.2)
		if bandwidth <= 0 || math.IsNaN(bandwidth) {
			bandwidth = 1
		}
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	step := (hi - lo) / float64(points-1)

	n := float64(len(sorted))
	norm := 1 / (n * bandwidth * math.Sqrt(2*math.Pi))
	labels := make([]string, points)
	densities := make([]float64, points)
	for i := range labels {
		x := lo + float64(i)*step
		var sum float64
		for _, xi := range sorted {
			u := (x - xi) / bandwidth
			sum += math.Exp(-0.5 * u * u)
		}
		labels[i] = fmt.Sprintf("%.2f", x)
		densities[i] = norm * sum
	}

	out := newObject()
	out.set("labels", labels)
	out.set("densities", densities)
	return out, nil
}

// zscoreOutliers answers {indices} naming the rows whose z-score exceeds
// the threshold in absolute value
func zscoreOutliers(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	threshold, err := floatParam(q, "threshold", defaultZScore)
	if err != nil {
		return nil, err
	}
	values, rows := byRow(ds, idx)
	if len(values) == 0 {
		return nil, invalid("Invalid input. Expecting non-empty 'data'.")
	}

	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviationSample(values)
	indices := []int{}
	if sd > 0 {
		for i, v := range values {
			if math.Abs((v-mean)/sd) > threshold {
				indices = append(indices, rows[i])
			}
		}
	}
	return map[string]interface{}{"indices": indices}, nil
}

// fences returns the quartiles and the 1.5 IQR outlier bounds
func fences(values []float64) (q1, q3, iqr, lower, upper float64, err error) {
	quartiles, err := stats.Quartile(values)
	if err != nil {
		return 0, 0, 0, 0, 0, invalid("Invalid input: %v", err)
	}
	q1, q3 = quartiles.Q1, quartiles.Q3
	iqr = q3 - q1
	return q1, q3, iqr, q1 - 1.5*iqr, q3 + 1.5*iqr, nil
}

// iqrOutliers answers {indices} naming the rows outside the IQR fences
func iqrOutliers(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	values, rows := byRow(ds, idx)
	_, _, _, lower, upper, err := fences(values)
	if err != nil {
		return nil, err
	}

	indices := []int{}
	for i, v := range values {
		if v < lower || v > upper {
			indices = append(indices, rows[i])
		}
	}
	return map[string]interface{}{"indices": indices}, nil
}

// boxplot answers {labels, values, stats} with the quartiles and fences
func boxplot(ds models.Dataset, q url.Values) (interface{}, error) {
	idx, err := columnParam(ds, q, "column")
	if err != nil {
		return nil, err
	}
	q1, q3, iqr, lower, upper, err := fences(numeric(ds, idx))
	if err != nil {
		return nil, err
	}

	summary := newObject()
	summary.set("Q1", q1)
	summary.set("Q3", q3)
	summary.set("IQR", iqr)
	summary.set("lower_outlier", lower)
	summary.set("upper_outlier", upper)

	out := newObject()
	out.set("labels", []string{"Q1", "Q3", "Lower Outlier", "Upper Outlier"})
	out.set("values", []float64{q1, q3, lower, upper})
	out.set("stats", summary)
	return out, nil
}
