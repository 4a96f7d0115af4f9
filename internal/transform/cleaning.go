package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// tableRows returns the row arrays of a {rows: [[...]]} payload
func tableRows(payload gjson.Result) []gjson.Result {
	rows := field(payload, "rows")
	if !rows.Exists() {
		rows = field(payload, "data")
	}
	return rows.Array()
}

// DroppedRows renders the rows that survived drop-rows-with-missing. The
// first row is the header and is skipped; each remaining row is labeled by
// its joined cells and valued by its first numeric cell.
func DroppedRows(payload gjson.Result, label string) models.ChartModel {
	rows := tableRows(payload)
	if len(rows) > 0 {
		rows = rows[1:]
	}

	labels := make([]string, len(rows))
	data := make([]models.DataPoint, len(rows))
	for i, row := range rows {
		cells := row.Array()
		parts := make([]string, len(cells))
		for j, cell := range cells {
			parts[j] = cell.String()
			if data[i].IsNull() {
				data[i] = numericPoint(cell)
			}
		}
		labels[i] = strings.Join(parts, ", ")
	}
	return single(label, label, labels, data, barStyle(3))
}

// FilledMissing labels rows by position and values them by their first cell
func FilledMissing(payload gjson.Result, label string) models.ChartModel {
	rows := tableRows(payload)
	labels := make([]string, len(rows))
	data := make([]models.DataPoint, len(rows))
	for i, row := range rows {
		labels[i] = fmt.Sprintf("Row %d", i+1)
		data[i] = numericPoint(row.Get("0"))
	}
	return single(label, label, labels, data, barStyle(0))
}

// LogTransformed uses the transformed first cell as both label and value
func LogTransformed(payload gjson.Result, label string) models.ChartModel {
	rows := tableRows(payload)
	labels := make([]string, len(rows))
	data := make([]models.DataPoint, len(rows))
	for i, row := range rows {
		first := row.Get("0")
		labels[i] = first.String()
		data[i] = numericPoint(first)
	}
	return single(label, label, labels, data, lineStyle(6, false))
}

// NormalizedColumn renders [original, normalized] pairs: the original value
// labels the point and the normalized value is plotted
func NormalizedColumn(payload gjson.Result, label string) models.ChartModel {
	rows := tableRows(payload)
	labels := make([]string, len(rows))
	data := make([]models.DataPoint, len(rows))
	for i, row := range rows {
		labels[i] = row.Get("0").String()
		data[i] = numericPoint(row.Get("1"))
	}
	return single(label, label, labels, data, lineStyle(3, false))
}

// StandardizedColumns renders a column name -> values map as one line per
// column over a shared positional axis
func StandardizedColumns(payload gjson.Result) models.ChartModel {
	names, arrays := entries(payload)

	n := 0
	if len(arrays) > 0 {
		n = len(arrays[0].Array())
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}

	datasets := make([]models.Series, len(names))
	for c, name := range names {
		values := arrays[c].Array()
		data := make([]models.DataPoint, n)
		for i := 0; i < n && i < len(values); i++ {
			data[i] = numericPoint(values[i])
		}
		datasets[c] = models.Series{Label: name, Data: data, Style: lineStyle(c, false)}
	}

	return models.ChartModel{
		Labels:   labels,
		Datasets: datasets,
		Title:    "Standardized Columns",
	}
}

// FilteredSorted renders the {data: [{...}]} objects of filter-sort,
// labeling by the first header and plotting the second
func FilteredSorted(payload gjson.Result, headers []string) models.ChartModel {
	const label = "Filtered and Sorted Data"
	if len(headers) < 2 {
		return single(label, label, nil, nil, barStyle(3))
	}

	objects := field(payload, "data").Array()
	labels := make([]string, len(objects))
	data := make([]models.DataPoint, len(objects))
	for i, obj := range objects {
		labels[i] = field(obj, headers[0]).String()
		data[i] = numericPoint(field(obj, headers[1]))
	}
	return single(label, label, labels, data, barStyle(3))
}
