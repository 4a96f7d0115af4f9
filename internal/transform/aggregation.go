package transform

import (
	"sort"

	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Grouped renders a flat label -> value map as one series, keeping the
// payload's key order
func Grouped(payload gjson.Result, label string) models.ChartModel {
	keys, values := entries(payload)
	data := make([]models.DataPoint, len(values))
	for i, v := range values {
		data[i] = point(v)
	}
	return single(label, label, keys, data, barStyle(0))
}

// Pivot renders a two-level row -> column -> value map. Rows keep payload
// order; columns are the sorted union over all rows, and a row missing a
// column gets an explicit null.
func Pivot(payload gjson.Result) models.ChartModel {
	rowLabels, rowValues := entries(payload)

	cells := make([]map[string]gjson.Result, len(rowValues))
	seen := make(map[string]bool)
	var columns []string
	for i, row := range rowValues {
		cells[i] = make(map[string]gjson.Result)
		row.ForEach(func(k, v gjson.Result) bool {
			col := k.String()
			cells[i][col] = v
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
			return true
		})
	}
	sort.Strings(columns)

	datasets := make([]models.Series, len(columns))
	for c, col := range columns {
		data := make([]models.DataPoint, len(rowLabels))
		for r := range rowLabels {
			if v, ok := cells[r][col]; ok {
				data[r] = point(v)
			}
		}
		datasets[c] = models.Series{Label: col, Data: data, Style: barStyle(c)}
	}

	if rowLabels == nil {
		rowLabels = []string{}
	}
	return models.ChartModel{
		Labels:   rowLabels,
		Datasets: datasets,
		Title:    "Pivot Table",
	}
}
