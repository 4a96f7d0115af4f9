package charts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

func barState() models.ChartState {
	return models.ChartState{
		Method:    "grouped-sum",
		Archetype: models.ArchetypeBar,
		Chart: models.ChartModel{
			Title:  "Grouped Sum",
			Labels: []string{"North", "South", "East"},
			Datasets: []models.Series{{
				Label: "Grouped Sum",
				Data:  []models.DataPoint{models.Number(55), models.Null(), models.Number(10)},
				Style: models.Style{BackgroundColor: "rgba(78,121,167,0.6)"},
			}},
		},
	}
}

func lineState() models.ChartState {
	return models.ChartState{
		Method:    "kde",
		Archetype: models.ArchetypeLine,
		Chart: models.ChartModel{
			Title:  "KDE",
			Labels: []string{"1.00", "2.00", "3.00"},
			Datasets: []models.Series{{
				Label: "Density",
				Data:  []models.DataPoint{models.Number(0.1), models.Number(0.4), models.Number(0.2)},
				Style: models.Style{Fill: true, Tension: 0.4},
			}},
		},
	}
}

func boxState() models.ChartState {
	box := models.Box(models.BoxSummary{Min: -4.5, Q1: 3, Median: 5.5, Q3: 8, Max: 15.5})
	return models.ChartState{
		Method:    "boxplot",
		Archetype: models.ArchetypeBoxPlot,
		Chart: models.ChartModel{
			Title:    "Box Plot",
			Labels:   []string{"Q1", "Q3"},
			Datasets: []models.Series{{Label: "Box Plot", Data: []models.DataPoint{box, box}}},
		},
	}
}

func matrixState() models.ChartState {
	return models.ChartState{
		Method:    "correlation-matrix",
		Archetype: models.ArchetypeMatrix,
		Chart: models.ChartModel{
			Title:  "Correlation Matrix",
			Labels: []string{"units", "revenue"},
			Datasets: []models.Series{{
				Label: "Correlation Matrix",
				Data: []models.DataPoint{
					models.Cell(models.MatrixCell{X: "units", Y: "units", V: 1}),
					models.Cell(models.MatrixCell{X: "revenue", Y: "units", V: -0.4}),
				},
				Style: models.Style{PointColors: []string{"rgba(0,0,255,1.0)", "rgba(179,0,77,1.0)"}},
			}},
		},
	}
}

func allStates() []models.ChartState {
	stacked := barState()
	stacked.Archetype = models.ArchetypeStackedBar
	stacked.Chart.Datasets = append(stacked.Chart.Datasets, models.Series{
		Label: "Other",
		Data:  []models.DataPoint{models.Number(-3), models.Number(4), models.Number(1)},
	})
	return []models.ChartState{barState(), stacked, lineState(), boxState(), matrixState()}
}

func TestNewChartGenerator(t *testing.T) {
	generator := NewChartGenerator(0, 0)
	if generator == nil {
		t.Fatal("NewChartGenerator returned nil")
	}
	if generator.width != 900 || generator.height != 450 {
		t.Errorf("Expected default size 900x450, got %dx%d", generator.width, generator.height)
	}

	generator = NewChartGenerator(640, 320)
	if generator.width != 640 || generator.height != 320 {
		t.Errorf("Expected size 640x320, got %dx%d", generator.width, generator.height)
	}
}

func TestRenderAllFormats(t *testing.T) {
	generator := NewChartGenerator(640, 320)

	for _, state := range allStates() {
		for _, format := range []Format{FormatSnippet, FormatHTML, FormatPNG} {
			t.Run(string(state.Archetype)+"/"+string(format), func(t *testing.T) {
				var buf bytes.Buffer
				if err := generator.Render(&buf, state, format); err != nil {
					t.Fatalf("Render failed: %v", err)
				}
				if buf.Len() == 0 {
					t.Fatal("Render wrote nothing")
				}
				if format == FormatPNG && !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
					t.Error("Expected PNG signature")
				}
				if format == FormatHTML && !strings.Contains(buf.String(), "echarts") {
					t.Error("Expected go-echarts page")
				}
			})
		}
	}
}

func TestRenderRejectsUnknown(t *testing.T) {
	generator := NewChartGenerator(0, 0)
	var buf bytes.Buffer

	state := barState()
	state.Archetype = "pie"
	if err := generator.Render(&buf, state, FormatSnippet); err == nil {
		t.Error("Expected error for unsupported archetype")
	}

	if err := generator.Render(&buf, barState(), Format("svg")); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestPNGRequiresSeries(t *testing.T) {
	generator := NewChartGenerator(0, 0)
	state := barState()
	state.Chart.Datasets = nil

	var buf bytes.Buffer
	if err := generator.PNG(&buf, state); err == nil {
		t.Error("Expected error for chart without series")
	}
}

func TestCategoryTicks(t *testing.T) {
	labels := make([]string, 50)
	for i := range labels {
		labels[i] = string(rune('a' + i%26))
	}

	ticks := categoryTicks(labels)
	if len(ticks) > maxTicks {
		t.Errorf("Expected at most %d ticks, got %d", maxTicks, len(ticks))
	}
	if ticks[0].Label != "a" || ticks[0].Value != 0 {
		t.Errorf("Expected first tick at 0 labeled a, got %+v", ticks[0])
	}

	if got := categoryTicks([]string{"x", "y"}); len(got) != 2 {
		t.Errorf("Expected 2 ticks, got %d", len(got))
	}
}

func TestBarBounds(t *testing.T) {
	v := func(f float64) *float64 { return &f }

	grouped := barSeries{Groups: []barGroup{{v(3), v(-2)}, {v(5), nil}}}
	if lo, hi := grouped.bounds(); lo != -2 || hi != 5 {
		t.Errorf("grouped bounds = (%v, %v), expected (-2, 5)", lo, hi)
	}

	stacked := barSeries{Stacked: true, Groups: []barGroup{{v(3), v(4), v(-2)}, {v(1), nil}}}
	if lo, hi := stacked.bounds(); lo != -2 || hi != 7 {
		t.Errorf("stacked bounds = (%v, %v), expected (-2, 7)", lo, hi)
	}
}
