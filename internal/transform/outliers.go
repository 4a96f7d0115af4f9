package transform

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// ZScoreOutliers marks the z-score outliers of column
func ZScoreOutliers(payload gjson.Result, column []models.DataPoint) models.ChartModel {
	return outliers(payload, column, "Z-Score Outliers", 2)
}

// IQROutliers marks the IQR outliers of column
func IQROutliers(payload gjson.Result, column []models.DataPoint) models.ChartModel {
	return outliers(payload, column, "IQR Outliers", 0)
}

// outliers keeps one point per original row: the original value where the
// row index is listed in the payload's indices, null everywhere else
func outliers(payload gjson.Result, column []models.DataPoint, label string, color int) models.ChartModel {
	indices := field(payload, "indices").Array()
	marked := make(map[int]bool, len(indices))
	for _, idx := range indices {
		marked[int(idx.Int())] = true
	}

	labels := make([]string, len(column))
	data := make([]models.DataPoint, len(column))
	found := 0
	for i, v := range column {
		labels[i] = strconv.Itoa(i)
		if marked[i] {
			data[i] = v
			found++
		}
	}

	title := label
	if found == 0 {
		title = "No " + label + " Found"
	}
	return single(title, label, labels, data, barStyle(color))
}

// BoxPlot fans the payload's summary out to one box per label.
//
// The median is the midpoint of Q1 and Q3, not the true median of the data;
// consumers rely on this.
func BoxPlot(payload gjson.Result) models.ChartModel {
	statsObj := field(payload, "stats")
	q1 := field(statsObj, "Q1").Float()
	q3 := field(statsObj, "Q3").Float()
	summary := models.BoxSummary{
		Min:    field(statsObj, "lower_outlier").Float(),
		Q1:     q1,
		Median: (q1 + q3) / 2,
		Q3:     q3,
		Max:    field(statsObj, "upper_outlier").Float(),
	}

	rawLabels := field(payload, "labels").Array()
	labels := make([]string, len(rawLabels))
	data := make([]models.DataPoint, len(rawLabels))
	for i, l := range rawLabels {
		labels[i] = l.String()
		data[i] = models.Box(summary)
	}

	stats := make(map[string]float64)
	statsObj.ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.Number {
			stats[k.String()] = v.Float()
		}
		return true
	})

	chart := single("Box Plot", "Box Plot", labels, data, barStyle(6))
	chart.Stats = stats
	return chart
}
