package models

// Archetype is the canonical chart shape a method renders to
type Archetype string

const (
	ArchetypeBar        Archetype = "bar"
	ArchetypeLine       Archetype = "line"
	ArchetypeStackedBar Archetype = "stackedBar"
	ArchetypeBoxPlot    Archetype = "boxplot"
	ArchetypeMatrix     Archetype = "matrix"
)

// Archetypes lists every supported archetype in display order
var Archetypes = []Archetype{
	ArchetypeBar,
	ArchetypeLine,
	ArchetypeStackedBar,
	ArchetypeBoxPlot,
	ArchetypeMatrix,
}

// ChartModel is the uniform chart-ready structure every transformer produces.
//
// For every archetype except matrix and box-plot fan-out, each series carries
// exactly one data point per label.
type ChartModel struct {
	Labels   []string           `json:"labels" yaml:"labels"`
	Datasets []Series           `json:"datasets" yaml:"datasets"`
	Title    string             `json:"title" yaml:"title"`
	Stats    map[string]float64 `json:"stats,omitempty" yaml:"stats,omitempty"` // box-plot summary passthrough
}

// Series is one named data sequence of a chart
type Series struct {
	Label string      `json:"label" yaml:"label"`
	Data  []DataPoint `json:"data" yaml:"data"`
	Style Style       `json:"style" yaml:"style"`
}

// Style carries presentation hints for the rendering boundary
type Style struct {
	BackgroundColor string   `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	BorderColor     string   `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`
	BorderWidth     int      `json:"borderWidth,omitempty" yaml:"borderWidth,omitempty"`
	Fill            bool     `json:"fill,omitempty" yaml:"fill,omitempty"`
	Tension         float64  `json:"tension,omitempty" yaml:"tension,omitempty"`
	PointColors     []string `json:"pointColors,omitempty" yaml:"pointColors,omitempty"` // parallel to Data (matrix cells)
}

// ChartState is the chart currently displayed by the dashboard
type ChartState struct {
	Token     uint64     `json:"token" yaml:"token"`
	Group     string     `json:"group" yaml:"group"`
	Method    string     `json:"method" yaml:"method"`
	Archetype Archetype  `json:"archetype" yaml:"archetype"`
	Chart     ChartModel `json:"chart" yaml:"chart"`
}

// PointCount returns the number of data points of the widest series
func (c ChartModel) PointCount() int {
	n := 0
	for _, ds := range c.Datasets {
		if len(ds.Data) > n {
			n = len(ds.Data)
		}
	}
	return n
}
