package transform

import (
	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Pearson renders {"pearson": r} as a single bar
func Pearson(payload gjson.Result) models.ChartModel {
	const label = "Pearson Correlation"
	return single(label, label, []string{label}, []models.DataPoint{point(field(payload, "pearson"))}, barStyle(0))
}

// Spearman renders {"spearman": r} as a single bar
func Spearman(payload gjson.Result) models.ChartModel {
	const label = "Spearman Correlation"
	return single(label, label, []string{label}, []models.DataPoint{point(field(payload, "spearman"))}, barStyle(2))
}

// CorrelationMatrix flattens a label -> label -> value map into sparse
// {x: column, y: row, v: value} cells. Cells whose value is not numeric are
// left out, so an undefined self-correlation is absent rather than zero.
func CorrelationMatrix(payload gjson.Result) models.ChartModel {
	labels, rows := entries(payload)

	var data []models.DataPoint
	var colors []string
	for r, rowLabel := range labels {
		cells := make(map[string]gjson.Result)
		rows[r].ForEach(func(k, v gjson.Result) bool {
			cells[k.String()] = v
			return true
		})

		for _, colLabel := range labels {
			v, ok := cells[colLabel]
			if !ok || v.Type != gjson.Number {
				continue
			}
			data = append(data, models.Cell(models.MatrixCell{X: colLabel, Y: rowLabel, V: v.Float()}))
			colors = append(colors, catalog.CSS(catalog.MatrixColor(v.Float())))
		}
	}

	const label = "Correlation Matrix"
	chart := single(label, label, labels, data, models.Style{})
	chart.Datasets[0].Style.PointColors = colors
	return chart
}
