package transform

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

func nums(vs ...float64) []models.DataPoint {
	out := make([]models.DataPoint, len(vs))
	for i, v := range vs {
		out[i] = models.Number(v)
	}
	return out
}

// pointsJSON renders points the way the rendering boundary sees them
func pointsJSON(t *testing.T, points []models.DataPoint) string {
	t.Helper()
	b, err := json.Marshal(points)
	if err != nil {
		t.Fatalf("marshal points: %v", err)
	}
	return string(b)
}

func TestEveryCatalogMethodHasTransformer(t *testing.T) {
	for _, m := range catalog.Methods() {
		if _, ok := For(m.Name); !ok {
			t.Errorf("method %q has no transformer", m.Name)
		}
	}
}

func TestApplyUnknownMethod(t *testing.T) {
	if _, ok := Apply(Input{Method: "no-such-method"}); ok {
		t.Error("expected unknown method to have no transformer")
	}
}

func TestGrouped(t *testing.T) {
	chart := Grouped(gjson.Parse(`{"A":1,"B":2}`), "L")

	if !reflect.DeepEqual(chart.Labels, []string{"A", "B"}) {
		t.Errorf("labels = %v, want [A B]", chart.Labels)
	}
	if len(chart.Datasets) != 1 {
		t.Fatalf("expected 1 series, got %d", len(chart.Datasets))
	}
	if chart.Datasets[0].Label != "L" {
		t.Errorf("series label = %q, want L", chart.Datasets[0].Label)
	}
	if got := pointsJSON(t, chart.Datasets[0].Data); got != "[1,2]" {
		t.Errorf("data = %s, want [1,2]", got)
	}
}

func TestGroupedKeepsPayloadOrder(t *testing.T) {
	chart := Grouped(gjson.Parse(`{"zeta":3,"alpha":1,"mid":2}`), "L")
	if !reflect.DeepEqual(chart.Labels, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("labels = %v, want payload order", chart.Labels)
	}
}

func TestPivot(t *testing.T) {
	chart := Pivot(gjson.Parse(`{"R1":{"C1":10},"R2":{"C1":5,"C2":7}}`))

	if !reflect.DeepEqual(chart.Labels, []string{"R1", "R2"}) {
		t.Errorf("labels = %v, want [R1 R2]", chart.Labels)
	}
	if len(chart.Datasets) != 2 {
		t.Fatalf("expected 2 series, got %d", len(chart.Datasets))
	}

	tests := []struct {
		label string
		data  string
	}{
		{"C1", "[10,5]"},
		{"C2", "[null,7]"},
	}
	for i, tt := range tests {
		ds := chart.Datasets[i]
		if ds.Label != tt.label {
			t.Errorf("series %d label = %q, want %q", i, ds.Label, tt.label)
		}
		if got := pointsJSON(t, ds.Data); got != tt.data {
			t.Errorf("series %q data = %s, want %s", ds.Label, got, tt.data)
		}
	}
}

func TestPivotSortsColumnsButNotRows(t *testing.T) {
	chart := Pivot(gjson.Parse(`{"Z":{"b":1,"a":2},"A":{"c":3}}`))

	if !reflect.DeepEqual(chart.Labels, []string{"Z", "A"}) {
		t.Errorf("labels = %v, want rows in payload order", chart.Labels)
	}
	var series []string
	for _, ds := range chart.Datasets {
		series = append(series, ds.Label)
		if len(ds.Data) != len(chart.Labels) {
			t.Errorf("series %q has %d points, want %d", ds.Label, len(ds.Data), len(chart.Labels))
		}
	}
	if !reflect.DeepEqual(series, []string{"a", "b", "c"}) {
		t.Errorf("series = %v, want [a b c]", series)
	}
}

func TestZScoreOutliers(t *testing.T) {
	column := nums(10, 20, 30)

	tests := []struct {
		name    string
		payload string
		data    string
		title   string
	}{
		{"found", `{"indices":[0,2]}`, "[10,null,30]", "Z-Score Outliers"},
		{"none", `{"indices":[]}`, "[null,null,null]", "No Z-Score Outliers Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := ZScoreOutliers(gjson.Parse(tt.payload), column)
			if got := pointsJSON(t, chart.Datasets[0].Data); got != tt.data {
				t.Errorf("data = %s, want %s", got, tt.data)
			}
			if chart.Title != tt.title {
				t.Errorf("title = %q, want %q", chart.Title, tt.title)
			}
			if !reflect.DeepEqual(chart.Labels, []string{"0", "1", "2"}) {
				t.Errorf("labels = %v, want one per original row", chart.Labels)
			}
		})
	}
}

func TestIQROutliersTitle(t *testing.T) {
	chart := IQROutliers(gjson.Parse(`{"indices":[]}`), nums(1, 2))
	if chart.Title != "No IQR Outliers Found" {
		t.Errorf("title = %q", chart.Title)
	}
	chart = IQROutliers(gjson.Parse(`{"indices":[1]}`), nums(1, 2))
	if chart.Title != "IQR Outliers" {
		t.Errorf("title = %q", chart.Title)
	}
}

func TestOutlierTitleIgnoresIndicesOutsideColumn(t *testing.T) {
	chart := ZScoreOutliers(gjson.Parse(`{"indices":[5,9]}`), nums(1, 2))
	if chart.Title != "No Z-Score Outliers Found" {
		t.Errorf("title = %q, want none found when no row is marked", chart.Title)
	}
	if got := pointsJSON(t, chart.Datasets[0].Data); got != "[null,null]" {
		t.Errorf("data = %s", got)
	}
}

func TestNonFiniteCellsBecomeNull(t *testing.T) {
	tests := []struct {
		name  string
		chart models.ChartModel
		data  string
	}{
		{"fill missing", FilledMissing(gjson.Parse(`{"rows":[["NaN"],["2"]]}`), "Filled"), "[null,2]"},
		{"log transform", LogTransformed(gjson.Parse(`{"rows":[["Inf","x"],["1","e"]]}`), "Log"), "[null,1]"},
		{"normalize", NormalizedColumn(gjson.Parse(`{"rows":[["a","-Inf"],["b","0.5"]]}`), "Normalized"), "[null,0.5]"},
		{"drop rows", DroppedRows(gjson.Parse(`{"rows":[["v"],["NaN"],["3"]]}`), "Cleaned"), "[null,3]"},
		{"filter sort", FilteredSorted(gjson.Parse(`{"data":[{"k":"a","v":"NaN"},{"k":"b","v":"4"}]}`), []string{"k", "v"}), "[null,4]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointsJSON(t, tt.chart.Datasets[0].Data); got != tt.data {
				t.Errorf("data = %s, want %s", got, tt.data)
			}
		})
	}
}

func TestCorrelationMatrix(t *testing.T) {
	chart := CorrelationMatrix(gjson.Parse(`{"A":{"B":0.5},"B":{"A":0.5}}`))

	want := []models.MatrixCell{
		{X: "B", Y: "A", V: 0.5},
		{X: "A", Y: "B", V: 0.5},
	}
	var got []models.MatrixCell
	for _, p := range chart.Datasets[0].Data {
		cell, ok := p.CellValue()
		if !ok {
			t.Fatalf("expected matrix cell, got %v", p)
		}
		got = append(got, cell)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cells = %v, want %v", got, want)
	}
	if len(chart.Datasets[0].Style.PointColors) != len(got) {
		t.Errorf("expected one color per cell, got %d", len(chart.Datasets[0].Style.PointColors))
	}
}

func TestCorrelationMatrixSkipsNonNumericCells(t *testing.T) {
	chart := CorrelationMatrix(gjson.Parse(`{"A":{"A":null,"B":-0.2},"B":{"A":-0.2,"B":"n/a"}}`))
	if n := len(chart.Datasets[0].Data); n != 2 {
		t.Errorf("expected 2 cells, got %d", n)
	}
	for _, p := range chart.Datasets[0].Data {
		cell, _ := p.CellValue()
		if cell.X == cell.Y {
			t.Errorf("self cell %v should be absent", cell)
		}
	}
}

func TestScalar(t *testing.T) {
	chart := Scalar(gjson.Parse(`{"stddev":2.5}`), "stddev")
	if !reflect.DeepEqual(chart.Labels, []string{"Std Dev"}) {
		t.Errorf("labels = %v", chart.Labels)
	}
	if got := pointsJSON(t, chart.Datasets[0].Data); got != "[2.5]" {
		t.Errorf("data = %s", got)
	}
}

func TestCorrelationScalars(t *testing.T) {
	p := Pearson(gjson.Parse(`{"pearson":0.9}`))
	if p.Labels[0] != "Pearson Correlation" || pointsJSON(t, p.Datasets[0].Data) != "[0.9]" {
		t.Errorf("unexpected pearson chart %+v", p)
	}
	s := Spearman(gjson.Parse(`{"spearman":-1}`))
	if s.Labels[0] != "Spearman Correlation" || pointsJSON(t, s.Datasets[0].Data) != "[-1]" {
		t.Errorf("unexpected spearman chart %+v", s)
	}
}

func TestHistogramAndKDE(t *testing.T) {
	h := Histogram(gjson.Parse(`{"labels":["[0.00, 1.00]","[1.00, 2.00]"],"counts":[3,4]}`), "Histogram")
	if len(h.Labels) != 2 || pointsJSON(t, h.Datasets[0].Data) != "[3,4]" {
		t.Errorf("unexpected histogram %+v", h)
	}

	k := KDE(gjson.Parse(`{"labels":["0.00","0.50"],"densities":[0.1,0.2]}`), "KDE")
	if pointsJSON(t, k.Datasets[0].Data) != "[0.1,0.2]" {
		t.Errorf("unexpected kde data")
	}
	if !k.Datasets[0].Style.Fill {
		t.Error("kde should be filled")
	}
}

func TestBoxPlotMedianIsQuartileMidpoint(t *testing.T) {
	payload := `{
		"labels":["Q1","Q3","Lower Outlier","Upper Outlier"],
		"stats":{"Q1":10,"Q3":30,"IQR":20,"lower_outlier":-20,"upper_outlier":60}
	}`
	chart := BoxPlot(gjson.Parse(payload))

	if len(chart.Datasets[0].Data) != 4 {
		t.Fatalf("expected one box per label, got %d", len(chart.Datasets[0].Data))
	}
	box, ok := chart.Datasets[0].Data[0].BoxValue()
	if !ok {
		t.Fatal("expected box point")
	}
	want := models.BoxSummary{Min: -20, Q1: 10, Median: 20, Q3: 30, Max: 60}
	if box != want {
		t.Errorf("box = %+v, want %+v", box, want)
	}
	if chart.Stats["IQR"] != 20 {
		t.Errorf("stats passthrough missing IQR: %v", chart.Stats)
	}
}

func TestCleaningFamily(t *testing.T) {
	t.Run("drop rows skips header", func(t *testing.T) {
		chart := DroppedRows(gjson.Parse(`{"rows":[["name","age"],["ann","31"],["bob","40"]]}`), "Cleaned Dataset")
		if !reflect.DeepEqual(chart.Labels, []string{"ann, 31", "bob, 40"}) {
			t.Errorf("labels = %v", chart.Labels)
		}
		if got := pointsJSON(t, chart.Datasets[0].Data); got != "[31,40]" {
			t.Errorf("data = %s", got)
		}
	})

	t.Run("fill missing labels by position", func(t *testing.T) {
		chart := FilledMissing(gjson.Parse(`{"rows":[["1","x"],["0","y"]]}`), "Filled")
		if !reflect.DeepEqual(chart.Labels, []string{"Row 1", "Row 2"}) {
			t.Errorf("labels = %v", chart.Labels)
		}
		if got := pointsJSON(t, chart.Datasets[0].Data); got != "[1,0]" {
			t.Errorf("data = %s", got)
		}
	})

	t.Run("normalize accepts data key", func(t *testing.T) {
		chart := NormalizedColumn(gjson.Parse(`{"data":[["10","0"],["20","1"]]}`), "Normalized")
		if !reflect.DeepEqual(chart.Labels, []string{"10", "20"}) {
			t.Errorf("labels = %v", chart.Labels)
		}
		if got := pointsJSON(t, chart.Datasets[0].Data); got != "[0,1]" {
			t.Errorf("data = %s", got)
		}
	})

	t.Run("standardize one line per column", func(t *testing.T) {
		chart := StandardizedColumns(gjson.Parse(`{"a":[-1,0,1],"b":[1,0,-1]}`))
		if !reflect.DeepEqual(chart.Labels, []string{"0", "1", "2"}) {
			t.Errorf("labels = %v", chart.Labels)
		}
		if len(chart.Datasets) != 2 || chart.Datasets[1].Label != "b" {
			t.Errorf("unexpected datasets %+v", chart.Datasets)
		}
	})

	t.Run("filter sort uses headers", func(t *testing.T) {
		chart := FilteredSorted(gjson.Parse(`{"data":[{"name":"x","score":"3"},{"name":"y","score":"1"}]}`), []string{"name", "score"})
		if !reflect.DeepEqual(chart.Labels, []string{"x", "y"}) {
			t.Errorf("labels = %v", chart.Labels)
		}
		if got := pointsJSON(t, chart.Datasets[0].Data); got != "[3,1]" {
			t.Errorf("data = %s", got)
		}
	})
}

func TestPaired(t *testing.T) {
	pair, _ := catalog.Lookup("mean-median")
	rows := []PairedRow{
		{Label: "east", Left: models.Number(1), Right: models.Number(2)},
		{Label: "west", Left: models.Number(3), Right: models.Null()},
	}
	chart := Paired(rows, *pair.Pair)

	if chart.Title != "Grouped Mean and Median" {
		t.Errorf("title = %q", chart.Title)
	}
	if len(chart.Datasets) != 2 {
		t.Fatalf("expected 2 series, got %d", len(chart.Datasets))
	}
	if got := pointsJSON(t, chart.Datasets[1].Data); got != "[2,null]" {
		t.Errorf("right series = %s", got)
	}
}

func TestTransformersAreIdempotent(t *testing.T) {
	tests := []struct {
		method  string
		payload string
	}{
		{"grouped-sum", `{"A":1,"B":2}`},
		{"pivot-mean", `{"R1":{"C1":10},"R2":{"C1":5,"C2":7}}`},
		{"correlation-matrix", `{"A":{"B":0.5},"B":{"A":0.5}}`},
		{"zscore-outliers", `{"indices":[1]}`},
		{"boxplot", `{"labels":["Q1","Q3"],"stats":{"Q1":1,"Q3":3}}`},
		{"mean", `{"mean":4}`},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			in := Input{Method: tt.method, Payload: gjson.Parse(tt.payload), ColumnData: nums(1, 2, 3)}
			first, ok := Apply(in)
			if !ok {
				t.Fatalf("no transformer for %s", tt.method)
			}
			second, _ := Apply(in)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("transform of %s is not idempotent", tt.method)
			}
		})
	}
}

func TestSeriesAlignWithLabels(t *testing.T) {
	chart := Grouped(gjson.Parse(`{"A":1,"B":"text","C":null}`), "L")
	got := pointsJSON(t, chart.Datasets[0].Data)
	if !strings.HasPrefix(got, "[1,") || !strings.HasSuffix(got, ",null]") {
		t.Errorf("data = %s", got)
	}
	if len(chart.Datasets[0].Data) != len(chart.Labels) {
		t.Error("series length differs from label count")
	}
}
