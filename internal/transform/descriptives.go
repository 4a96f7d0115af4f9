package transform

import (
	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Scalar renders a scalar wrapper payload such as {"mean": 20} as a
// single-bar chart labeled with the human-readable statistic name
func Scalar(payload gjson.Result, method string) models.ChartModel {
	label := catalog.LabelOf(method)
	return single(
		label,
		label,
		[]string{label},
		[]models.DataPoint{point(field(payload, method))},
		barStyle(scalarColor(method)),
	)
}

// scalarColor gives every statistic a stable palette slot
func scalarColor(method string) int {
	for i, name := range scalarMethods {
		if name == method {
			return i
		}
	}
	return 0
}

// PairedRow is one group of a paired-statistic result after the join
type PairedRow struct {
	Label string
	Left  models.DataPoint
	Right models.DataPoint
}

// Paired renders two joined grouped statistics as a two-series bar chart
func Paired(rows []PairedRow, pair catalog.Pair) models.ChartModel {
	labels := make([]string, len(rows))
	left := make([]models.DataPoint, len(rows))
	right := make([]models.DataPoint, len(rows))
	for i, row := range rows {
		labels[i] = row.Label
		left[i] = row.Left
		right[i] = row.Right
	}

	return models.ChartModel{
		Labels: labels,
		Datasets: []models.Series{
			{Label: pair.LeftLabel, Data: left, Style: barStyle(0)},
			{Label: pair.RightLabel, Data: right, Style: barStyle(5)},
		},
		Title: "Grouped " + pair.LeftLabel + " and " + pair.RightLabel,
	}
}
