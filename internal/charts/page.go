package charts

import (
	"fmt"
	"io"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

type pageRenderer interface {
	Render(w io.Writer) error
}

// Page writes a standalone go-echarts HTML page for state
func (cg *ChartGenerator) Page(w io.Writer, state models.ChartState) error {
	var page pageRenderer
	switch state.Archetype {
	case models.ArchetypeBar, models.ArchetypeStackedBar:
		page = cg.barPage(state)
	case models.ArchetypeLine:
		page = cg.linePage(state)
	case models.ArchetypeBoxPlot:
		page = cg.boxPlotPage(state)
	case models.ArchetypeMatrix:
		page = cg.heatMapPage(state)
	default:
		return fmt.Errorf("unsupported archetype %q", state.Archetype)
	}
	return page.Render(w)
}

func (cg *ChartGenerator) globalOpts(title string) []echarts.GlobalOpts {
	return []echarts.GlobalOpts{
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     fmt.Sprintf("%dpx", cg.width),
			Height:    fmt.Sprintf("%dpx", cg.height),
		}),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: true}),
		echarts.WithLegendOpts(opts.Legend{Show: true, Bottom: "0"}),
	}
}

func (cg *ChartGenerator) barPage(state models.ChartState) *echarts.Bar {
	bar := echarts.NewBar()
	bar.SetGlobalOptions(cg.globalOpts(state.Chart.Title)...)
	bar.SetXAxis(state.Chart.Labels)

	for _, s := range state.Chart.Datasets {
		raw := values(s)
		data := make([]opts.BarData, len(raw))
		for i, v := range raw {
			data[i] = opts.BarData{Value: v}
		}
		seriesOpts := []echarts.SeriesOpts{
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: s.Style.BackgroundColor, BorderColor: s.Style.BorderColor}),
		}
		if state.Archetype == models.ArchetypeStackedBar {
			seriesOpts = append(seriesOpts, echarts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
		}
		bar.AddSeries(s.Label, data, seriesOpts...)
	}
	return bar
}

func (cg *ChartGenerator) linePage(state models.ChartState) *echarts.Line {
	line := echarts.NewLine()
	line.SetGlobalOptions(cg.globalOpts(state.Chart.Title)...)
	line.SetXAxis(state.Chart.Labels)

	for _, s := range state.Chart.Datasets {
		raw := values(s)
		data := make([]opts.LineData, len(raw))
		for i, v := range raw {
			data[i] = opts.LineData{Value: v}
		}
		seriesOpts := []echarts.SeriesOpts{
			echarts.WithLineChartOpts(opts.LineChart{Smooth: s.Style.Tension > 0}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: s.Style.BorderColor}),
		}
		if s.Style.Fill {
			seriesOpts = append(seriesOpts, echarts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.3}))
		}
		line.AddSeries(s.Label, data, seriesOpts...)
	}
	return line
}

func (cg *ChartGenerator) boxPlotPage(state models.ChartState) *echarts.BoxPlot {
	box := echarts.NewBoxPlot()
	box.SetGlobalOptions(cg.globalOpts(state.Chart.Title)...)
	box.SetXAxis(state.Chart.Labels)

	for _, s := range state.Chart.Datasets {
		rows := boxes(s)
		data := make([]opts.BoxPlotData, len(rows))
		for i, row := range rows {
			data[i] = opts.BoxPlotData{Value: row}
		}
		box.AddSeries(s.Label, data)
	}
	return box
}

func (cg *ChartGenerator) heatMapPage(state models.ChartState) *echarts.HeatMap {
	labels := state.Chart.Labels
	heatmap := echarts.NewHeatMap()
	heatmap.SetGlobalOptions(append(cg.globalOpts(state.Chart.Title),
		echarts.WithXAxisOpts(opts.XAxis{Type: "category", Data: labels}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
		echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(catalog.MatrixDomain[0]),
			Max:        float32(catalog.MatrixDomain[1]),
			InRange: &opts.VisualMapInRange{
				Color: []string{
					catalog.CSS(catalog.MatrixColor(catalog.MatrixDomain[0])),
					catalog.CSS(catalog.MatrixColor(catalog.MatrixDomain[1])),
				},
			},
		}),
	)...)

	idx := indexOf(labels)
	for _, s := range state.Chart.Datasets {
		cs, _ := cells(s)
		data := make([]opts.HeatMapData, len(cs))
		for i, c := range cs {
			data[i] = opts.HeatMapData{Value: [3]interface{}{idx[c.X], idx[c.Y], c.V}}
		}
		heatmap.AddSeries(s.Label, data)
	}
	return heatmap
}
