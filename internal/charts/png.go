package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// maxTicks caps category labels on the x axis; denser axes show every nth
const maxTicks = 20

// PNG writes a static image of state
func (cg *ChartGenerator) PNG(w io.Writer, state models.ChartState) error {
	c := state.Chart
	if len(c.Datasets) == 0 {
		return fmt.Errorf("chart %q has no series", c.Title)
	}

	graph := chart.Chart{
		Title:      c.Title,
		TitleStyle: chart.Style{FontSize: 16, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 70, Right: 30, Bottom: 70},
		},
		Width:  cg.width,
		Height: cg.height,
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 9},
			Ticks: categoryTicks(c.Labels),
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(max(len(c.Labels), 1)) - 0.5},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 230, G: 230, B: 230, A: 255},
				StrokeWidth: 1,
			},
		},
	}

	var lo, hi float64
	switch state.Archetype {
	case models.ArchetypeBar, models.ArchetypeStackedBar:
		bars := barSeries{Stacked: state.Archetype == models.ArchetypeStackedBar}
		for i := range c.Labels {
			group := make(barGroup, len(c.Datasets))
			for s, ds := range c.Datasets {
				if i < len(ds.Data) {
					if v, ok := ds.Data[i].Float(); ok {
						group[s] = &v
					}
				}
			}
			bars.Groups = append(bars.Groups, group)
		}
		for s := range c.Datasets {
			bars.Colors = append(bars.Colors, catalog.SeriesColor(s))
		}
		lo, hi = bars.bounds()
		graph.Series = append(graph.Series, bars)

	case models.ArchetypeLine:
		lo, hi = math.Inf(1), math.Inf(-1)
		for s, ds := range c.Datasets {
			var xs, ys []float64
			for i, p := range ds.Data {
				if v, ok := p.Float(); ok {
					xs = append(xs, float64(i))
					ys = append(ys, v)
					lo, hi = math.Min(lo, v), math.Max(hi, v)
				}
			}
			if len(xs) == 0 {
				continue
			}
			color := catalog.SeriesColor(s)
			style := chart.Style{StrokeColor: color, StrokeWidth: 2}
			if ds.Style.Fill {
				style.FillColor = color.WithAlpha(60)
			}
			graph.Series = append(graph.Series, chart.ContinuousSeries{
				Name:    ds.Label,
				Style:   style,
				XValues: xs,
				YValues: ys,
			})
		}

	case models.ArchetypeBoxPlot:
		bx := boxSeries{Color: catalog.SeriesColor(0)}
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, row := range boxes(c.Datasets[0]) {
			bx.Boxes = append(bx.Boxes, row)
			lo, hi = math.Min(lo, row[0]), math.Max(hi, row[4])
		}
		graph.Series = append(graph.Series, bx)

	case models.ArchetypeMatrix:
		idx := indexOf(c.Labels)
		hs := heatmapSeries{}
		cs, _ := cells(c.Datasets[0])
		for _, cell := range cs {
			hs.Cells = append(hs.Cells, heatmapCell{
				x:     float64(idx[cell.X]),
				y:     float64(idx[cell.Y]),
				color: catalog.MatrixColor(cell.V),
			})
		}
		graph.YAxis.Ticks = categoryTicks(c.Labels)
		graph.YAxis.GridMajorStyle = chart.Style{}
		lo, hi = -0.5, float64(max(len(c.Labels), 1))-0.5
		graph.Series = append(graph.Series, hs)

	default:
		return fmt.Errorf("unsupported archetype %q", state.Archetype)
	}

	if len(graph.Series) == 0 {
		return fmt.Errorf("chart %q has no plottable values", c.Title)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		lo, hi = 0, 1
	}
	if state.Archetype != models.ArchetypeMatrix {
		lo, hi = pad(lo, hi)
	}
	graph.YAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}

	if len(c.Datasets) > 1 {
		for s, ds := range c.Datasets {
			graph.Series = append(graph.Series, legendOnlySeries{name: ds.Label, color: catalog.SeriesColor(s)})
		}
		graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	}

	return graph.Render(chart.PNG, w)
}

// categoryTicks places one tick per label at its integer position
func categoryTicks(labels []string) []chart.Tick {
	step := 1
	if len(labels) > maxTicks {
		step = int(math.Ceil(float64(len(labels)) / maxTicks))
	}
	ticks := make([]chart.Tick, 0, len(labels)/step+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	return ticks
}

// pad widens a value range by a tenth on each side, keeping it non-empty
func pad(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 1, hi + 1
	}
	margin := (hi - lo) * 0.1
	if lo < 0 {
		lo -= margin
	}
	return lo, hi + margin
}
