// Package charts renders a normalized chart state for display: as an
// embeddable ECharts snippet, a standalone go-echarts page or a static PNG.
package charts

import (
	"fmt"
	"io"

	"github.com/Bgoodwin24/insightforge/internal/logger"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Format selects an output of the generator
type Format string

const (
	FormatSnippet Format = "snippet"
	FormatHTML    Format = "html"
	FormatPNG     Format = "png"
)

// ChartGenerator renders chart states
type ChartGenerator struct {
	width  int
	height int
	log    *logger.Logger
}

// NewChartGenerator creates a generator producing images of the given size
func NewChartGenerator(width, height int) *ChartGenerator {
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 450
	}
	return &ChartGenerator{
		width:  width,
		height: height,
		log:    logger.WithComponent("charts"),
	}
}

// Render writes state to w in the requested format
func (cg *ChartGenerator) Render(w io.Writer, state models.ChartState, format Format) error {
	if !supported(state.Archetype) {
		return fmt.Errorf("unsupported archetype %q", state.Archetype)
	}

	var err error
	switch format {
	case FormatSnippet:
		var snippet ChartSnippet
		if snippet, err = cg.Snippet(state); err == nil {
			_, err = io.WriteString(w, snippet.HTML)
		}
	case FormatHTML:
		err = cg.Page(w, state)
	case FormatPNG:
		err = cg.PNG(w, state)
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart for %s: %w", format, state.Method, err)
	}

	cg.log.Debug("chart rendered", map[string]interface{}{
		"method":    state.Method,
		"archetype": string(state.Archetype),
		"format":    string(format),
	})
	return nil
}

func supported(a models.Archetype) bool {
	for _, known := range models.Archetypes {
		if a == known {
			return true
		}
	}
	return false
}

// values returns the numeric values of a series with nulls kept as nil,
// the form ECharts expects for gaps
func values(s models.Series) []interface{} {
	out := make([]interface{}, len(s.Data))
	for i, p := range s.Data {
		if v, ok := p.Float(); ok && p.Kind() != models.CellPoint {
			out[i] = v
		}
	}
	return out
}

// boxes returns the [min, q1, median, q3, max] rows of a box-plot series
func boxes(s models.Series) [][]float64 {
	out := make([][]float64, 0, len(s.Data))
	for _, p := range s.Data {
		if b, ok := p.BoxValue(); ok {
			out = append(out, []float64{b.Min, b.Q1, b.Median, b.Q3, b.Max})
		}
	}
	return out
}

// cells returns the matrix cells of a series with their colors
func cells(s models.Series) ([]models.MatrixCell, []string) {
	var out []models.MatrixCell
	var colors []string
	for i, p := range s.Data {
		if c, ok := p.CellValue(); ok {
			out = append(out, c)
			if i < len(s.Style.PointColors) {
				colors = append(colors, s.Style.PointColors[i])
			} else {
				colors = append(colors, "")
			}
		}
	}
	return out, colors
}

func indexOf(labels []string) map[string]int {
	out := make(map[string]int, len(labels))
	for i, l := range labels {
		out[l] = i
	}
	return out
}
