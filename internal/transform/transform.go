// Package transform turns the raw JSON payloads returned by the analytics
// service into the canonical chart model.
//
// Every function here is pure: the same payload always produces a
// structurally identical model, and nothing is cached between calls.
package transform

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Input bundles a raw payload with the side inputs some families need
type Input struct {
	Method    string
	SubMethod string
	Payload   gjson.Result

	// ColumnData is the original column the outlier indices refer to
	ColumnData []models.DataPoint
	// Headers are the dataset headers, used by filter-sort
	Headers []string
	// Paired holds the joined rows of a paired-statistic method
	Paired []PairedRow
}

// Func maps one method's input to the canonical chart model
type Func func(in Input) models.ChartModel

var scalarMethods = []string{
	"mean", "median", "mode", "stddev", "variance",
	"min", "max", "sum", "count", "range",
}

var table = func() map[string]Func {
	t := map[string]Func{
		"pearson-correlation":  func(in Input) models.ChartModel { return Pearson(in.Payload) },
		"spearman-correlation": func(in Input) models.ChartModel { return Spearman(in.Payload) },
		"correlation-matrix":   func(in Input) models.ChartModel { return CorrelationMatrix(in.Payload) },

		"histogram": func(in Input) models.ChartModel { return Histogram(in.Payload, "Histogram") },
		"kde":       func(in Input) models.ChartModel { return KDE(in.Payload, "KDE") },

		"zscore-outliers": func(in Input) models.ChartModel { return ZScoreOutliers(in.Payload, in.ColumnData) },
		"iqr-outliers":    func(in Input) models.ChartModel { return IQROutliers(in.Payload, in.ColumnData) },
		"boxplot":         func(in Input) models.ChartModel { return BoxPlot(in.Payload) },

		"drop-rows-with-missing": func(in Input) models.ChartModel {
			return DroppedRows(in.Payload, catalog.LabelOf(in.Method))
		},
		"fill-missing-with": func(in Input) models.ChartModel {
			return FilledMissing(in.Payload, catalog.LabelOf(in.Method))
		},
		"apply-log-transformation": func(in Input) models.ChartModel {
			return LogTransformed(in.Payload, catalog.LabelOf(in.Method))
		},
		"normalize-column": func(in Input) models.ChartModel {
			return NormalizedColumn(in.Payload, catalog.LabelOf(in.Method))
		},
		"standardize-column": func(in Input) models.ChartModel { return StandardizedColumns(in.Payload) },
		"filter-sort":        func(in Input) models.ChartModel { return FilteredSorted(in.Payload, in.Headers) },
	}

	for _, name := range scalarMethods {
		t[name] = func(in Input) models.ChartModel { return Scalar(in.Payload, in.Method) }
	}

	for _, m := range catalog.Methods() {
		switch {
		case m.IsPaired():
			pair := *m.Pair
			t[m.Name] = func(in Input) models.ChartModel { return Paired(in.Paired, pair) }
		case strings.HasPrefix(m.Name, "grouped-"):
			t[m.Name] = func(in Input) models.ChartModel {
				return Grouped(in.Payload, catalog.LabelOf(in.Method))
			}
		case strings.HasPrefix(m.Name, "pivot-"):
			t[m.Name] = func(in Input) models.ChartModel { return Pivot(in.Payload) }
		}
	}
	return t
}()

// For returns the transformer of a method
func For(method string) (Func, bool) {
	fn, ok := table[method]
	return fn, ok
}

// Apply runs the transformer of in.Method
func Apply(in Input) (models.ChartModel, bool) {
	fn, ok := For(in.Method)
	if !ok {
		return models.ChartModel{}, false
	}
	return fn(in), true
}

// Point converts a JSON scalar into a data point, keeping text as text
func Point(r gjson.Result) models.DataPoint {
	return point(r)
}

func point(r gjson.Result) models.DataPoint {
	switch r.Type {
	case gjson.Number:
		return models.Number(r.Float())
	case gjson.String:
		return models.Text(r.Str)
	case gjson.True:
		return models.Number(1)
	case gjson.False:
		return models.Number(0)
	default:
		return models.Null()
	}
}

// numericPoint converts a JSON scalar into a number, parsing strings;
// anything that is not a finite number becomes null
func numericPoint(r gjson.Result) models.DataPoint {
	switch r.Type {
	case gjson.Number:
		return models.Number(r.Float())
	case gjson.String:
		if v, err := strconv.ParseFloat(r.Str, 64); err == nil && models.IsFinite(v) {
			return models.Number(v)
		}
	}
	return models.Null()
}

// field looks up a top-level key without interpreting gjson path syntax
func field(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}

// entries returns the key/value pairs of an object in document order
func entries(obj gjson.Result) (keys []string, values []gjson.Result) {
	obj.ForEach(func(k, v gjson.Result) bool {
		keys = append(keys, k.String())
		values = append(values, v)
		return true
	})
	return keys, values
}

func barStyle(i int) models.Style {
	return models.Style{
		BackgroundColor: catalog.CSS(catalog.SeriesFill(i)),
		BorderColor:     catalog.CSS(catalog.SeriesColor(i)),
		BorderWidth:     1,
	}
}

func lineStyle(i int, fill bool) models.Style {
	return models.Style{
		BackgroundColor: catalog.CSS(catalog.SeriesFill(i)),
		BorderColor:     catalog.CSS(catalog.SeriesColor(i)),
		BorderWidth:     1,
		Fill:            fill,
		Tension:         0.1,
	}
}

// single builds a one-series chart
func single(title, seriesLabel string, labels []string, data []models.DataPoint, style models.Style) models.ChartModel {
	if labels == nil {
		labels = []string{}
	}
	if data == nil {
		data = []models.DataPoint{}
	}
	return models.ChartModel{
		Labels:   labels,
		Datasets: []models.Series{{Label: seriesLabel, Data: data, Style: style}},
		Title:    title,
	}
}
