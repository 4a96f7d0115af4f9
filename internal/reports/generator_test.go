package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/Bgoodwin24/insightforge/internal/charts"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

func testGenerator() *Generator {
	g := NewGenerator(charts.NewChartGenerator(0, 0), "1.2.3")
	g.now = func() time.Time { return time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC) }
	return g
}

func pairedState() models.ChartState {
	return models.ChartState{
		Group:     "descriptives",
		Method:    "mean-median",
		Archetype: models.ArchetypeBar,
		Chart: models.ChartModel{
			Title:  "Grouped Mean and Median",
			Labels: []string{"North", "South|West"},
			Datasets: []models.Series{
				{Label: "Mean", Data: []models.DataPoint{models.Number(27.5), models.Number(10)}},
				{Label: "Median", Data: []models.DataPoint{models.Number(27.5), models.Null()}},
			},
		},
	}
}

func TestMarkdownTable(t *testing.T) {
	md := testGenerator().Markdown(pairedState())

	for _, want := range []string{
		"# Grouped Mean and Median",
		"- **Method:** `mean-median`",
		"| Label | Mean | Median |",
		"| North | 27.5 | 27.5 |",
		`| South\|West | 10 | - |`,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownTruncatesRows(t *testing.T) {
	state := pairedState()
	state.Chart.Labels = make([]string, maxTableRows+5)
	for i := range state.Chart.Labels {
		state.Chart.Labels[i] = "row"
	}

	md := testGenerator().Markdown(state)
	if !strings.Contains(md, "_5 more rows not shown._") {
		t.Errorf("Expected truncation note:\n%s", md)
	}
}

func TestMarkdownStats(t *testing.T) {
	state := models.ChartState{
		Method:    "boxplot",
		Archetype: models.ArchetypeBoxPlot,
		Chart: models.ChartModel{
			Title: "Box Plot",
			Stats: map[string]float64{"Q1": 3, "Q3": 8, "IQR": 5},
		},
	}
	md := testGenerator().Markdown(state)
	if !strings.Contains(md, "| IQR | 5 |") || !strings.Contains(md, "## Statistics") {
		t.Errorf("Expected statistics table:\n%s", md)
	}
	if strings.Contains(md, "## Values") {
		t.Error("Box plot should not render a values table")
	}
}

func TestGenerateHTML(t *testing.T) {
	page, err := testGenerator().GenerateHTML(pairedState())
	if err != nil {
		t.Fatalf("GenerateHTML failed: %v", err)
	}

	for _, want := range []string{
		"<title>Grouped Mean and Median</title>",
		`<h1 id="grouped-mean-and-median">Grouped Mean and Median</h1>`,
		`id="chart-mean-median"`,
		"echarts.init",
		"insightforge 1.2.3",
		"Wed, 17 Sep 2025 12:00:00 UTC",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}
