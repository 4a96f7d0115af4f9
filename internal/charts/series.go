package charts

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// legendOnlySeries is a dummy series used only to populate the chart legend
type legendOnlySeries struct {
	name  string
	color drawing.Color
}

func (ls legendOnlySeries) GetName() string { return ls.name }
func (ls legendOnlySeries) GetStyle() chart.Style {
	return chart.Style{FillColor: ls.color, StrokeColor: ls.color}
}
func (ls legendOnlySeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (ls legendOnlySeries) Len() int                  { return 0 }
func (ls legendOnlySeries) Validate() error           { return nil }
func (ls legendOnlySeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
}

// rect fills the rectangle between two points in value space
func rect(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, x0, y0, x1, y1 float64, fill, stroke drawing.Color) {
	px0 := canvasBox.Left + xrange.Translate(x0)
	px1 := canvasBox.Left + xrange.Translate(x1)
	py0 := canvasBox.Bottom - yrange.Translate(y0)
	py1 := canvasBox.Bottom - yrange.Translate(y1)
	if px1 < px0 {
		px0, px1 = px1, px0
	}
	if py1 < py0 {
		py0, py1 = py1, py0
	}
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(1)
	r.MoveTo(px0, py0)
	r.LineTo(px1, py0)
	r.LineTo(px1, py1)
	r.LineTo(px0, py1)
	r.LineTo(px0, py0)
	r.Close()
	r.FillStroke()
}

func line(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, x0, y0, x1, y1 float64, color drawing.Color, width float64) {
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	r.MoveTo(canvasBox.Left+xrange.Translate(x0), canvasBox.Bottom-yrange.Translate(y0))
	r.LineTo(canvasBox.Left+xrange.Translate(x1), canvasBox.Bottom-yrange.Translate(y1))
	r.Stroke()
}

// barGroup is one category's bars, one value per dataset; nil values
// leave a gap
type barGroup []*float64

// barSeries draws grouped or stacked bars centered on integer x positions
type barSeries struct {
	Groups  []barGroup
	Colors  []drawing.Color
	Stacked bool
}

func (bs barSeries) GetName() string           { return "bars" }
func (bs barSeries) GetStyle() chart.Style     { return chart.Style{} }
func (bs barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bs barSeries) Len() int                  { return len(bs.Groups) }
func (bs barSeries) Validate() error           { return nil }
func (bs barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	const slot = 0.8
	for i, group := range bs.Groups {
		left := float64(i) - slot/2
		width := slot / float64(max(len(group), 1))
		var pos, neg float64
		for s, v := range group {
			if v == nil {
				continue
			}
			color := bs.Colors[s%len(bs.Colors)]
			if bs.Stacked {
				base := &pos
				if *v < 0 {
					base = &neg
				}
				rect(r, canvasBox, xrange, yrange, left, *base, left+slot, *base+*v, color.WithAlpha(180), color)
				*base += *v
				continue
			}
			x0 := left + float64(s)*width
			rect(r, canvasBox, xrange, yrange, x0, 0, x0+width, *v, color.WithAlpha(180), color)
		}
	}
}

// bounds returns the value extent of the bars including the zero baseline
func (bs barSeries) bounds() (lo, hi float64) {
	for _, group := range bs.Groups {
		var pos, neg float64
		for _, v := range group {
			if v == nil {
				continue
			}
			if bs.Stacked {
				if *v < 0 {
					neg += *v
				} else {
					pos += *v
				}
				lo, hi = min(lo, neg), max(hi, pos)
				continue
			}
			lo, hi = min(lo, *v), max(hi, *v)
		}
	}
	return lo, hi
}

// boxSeries draws one box and whiskers per category
type boxSeries struct {
	Boxes [][]float64 // min, q1, median, q3, max
	Color drawing.Color
}

func (bx boxSeries) GetName() string           { return "boxes" }
func (bx boxSeries) GetStyle() chart.Style     { return chart.Style{} }
func (bx boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bx boxSeries) Len() int                  { return len(bx.Boxes) }
func (bx boxSeries) Validate() error           { return nil }
func (bx boxSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	const half = 0.3
	for i, b := range bx.Boxes {
		x := float64(i)
		line(r, canvasBox, xrange, yrange, x, b[0], x, b[4], bx.Color, 1)
		line(r, canvasBox, xrange, yrange, x-half/2, b[0], x+half/2, b[0], bx.Color, 1)
		line(r, canvasBox, xrange, yrange, x-half/2, b[4], x+half/2, b[4], bx.Color, 1)
		rect(r, canvasBox, xrange, yrange, x-half, b[1], x+half, b[3], bx.Color.WithAlpha(120), bx.Color)
		line(r, canvasBox, xrange, yrange, x-half, b[2], x+half, b[2], drawing.ColorBlack, 2)
	}
}

// heatmapCell represents one matrix cell
type heatmapCell struct {
	x, y  float64
	color drawing.Color
}

// heatmapSeries renders a grid of unit squares centered on integer positions
type heatmapSeries struct {
	Cells []heatmapCell
}

func (hs heatmapSeries) GetName() string           { return "heatmap" }
func (hs heatmapSeries) GetStyle() chart.Style     { return chart.Style{} }
func (hs heatmapSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (hs heatmapSeries) Len() int                  { return len(hs.Cells) }
func (hs heatmapSeries) Validate() error           { return nil }
func (hs heatmapSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	border := drawing.Color{R: 255, G: 255, B: 255, A: 120}
	for _, c := range hs.Cells {
		rect(r, canvasBox, xrange, yrange, c.x-0.5, c.y-0.5, c.x+0.5, c.y+0.5, c.color, border)
	}
}
