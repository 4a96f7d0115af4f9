package catalog

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette is cycled by series index for qualitative series
var palette = []drawing.Color{
	drawing.ColorFromHex("4e79a7"),
	drawing.ColorFromHex("f28e2b"),
	drawing.ColorFromHex("e15759"),
	drawing.ColorFromHex("76b7b2"),
	drawing.ColorFromHex("59a14f"),
	drawing.ColorFromHex("edc949"),
	drawing.ColorFromHex("af7aa1"),
	drawing.ColorFromHex("ff9da7"),
}

// SeriesColor returns the palette color of series i
func SeriesColor(i int) drawing.Color {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// SeriesFill returns the translucent fill of series i
func SeriesFill(i int) drawing.Color {
	return SeriesColor(i).WithAlpha(153)
}

// MatrixDomain is the value range matrix colors are interpolated over
var MatrixDomain = [2]float64{-1, 1}

// MatrixColor interpolates linearly from red (domain min) to blue (domain max).
// Values outside the domain are clamped.
func MatrixColor(v float64) drawing.Color {
	lo, hi := MatrixDomain[0], MatrixDomain[1]
	if math.IsNaN(v) {
		v = lo
	}
	t := (math.Min(math.Max(v, lo), hi) - lo) / (hi - lo)
	return drawing.Color{
		R: uint8(math.Round(255 * (1 - t))),
		G: 0,
		B: uint8(math.Round(255 * t)),
		A: 255,
	}
}

// CSS renders a color as a CSS rgba() string
func CSS(c drawing.Color) string {
	return c.String()
}
