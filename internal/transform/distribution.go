package transform

import (
	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Histogram renames {labels, counts} into the chart model
func Histogram(payload gjson.Result, label string) models.ChartModel {
	labels, data := labeled(payload, "counts")
	return single(label, label, labels, data, barStyle(3))
}

// KDE renames {labels, densities} into the chart model
func KDE(payload gjson.Result, label string) models.ChartModel {
	labels, data := labeled(payload, "densities")
	return single(label, label, labels, data, lineStyle(0, true))
}

func labeled(payload gjson.Result, valuesKey string) ([]string, []models.DataPoint) {
	rawLabels := field(payload, "labels").Array()
	rawValues := field(payload, valuesKey).Array()

	labels := make([]string, len(rawLabels))
	data := make([]models.DataPoint, len(rawLabels))
	for i, l := range rawLabels {
		labels[i] = l.String()
		if i < len(rawValues) {
			data[i] = point(rawValues[i])
		}
	}
	return labels, data
}
