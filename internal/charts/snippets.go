package charts

import (
	"encoding/json"
	"fmt"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

const echartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div holds a single root <div id="..." style="..."></div>, Script the
// <script> block that initializes the chart in that div and HTML both of
// them combined with the library include.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// Snippet builds the ECharts snippet for state
func (cg *ChartGenerator) Snippet(state models.ChartState) (ChartSnippet, error) {
	id := "chart-" + state.Method
	if state.Method == "" {
		id = "chart-analysis"
	}

	optJSON, err := json.Marshal(cg.option(state))
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%dpx;\"></div>", id, cg.height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<script src="%s"></script>
<div class="chart-container">
	<h3>%s</h3>
	%s
</div>
%s`, echartsCDN, state.Chart.Title, div, script)

	return ChartSnippet{ID: id, Title: state.Chart.Title, Div: div, Script: script, HTML: completeHTML}, nil
}

// option builds the ECharts option object for state
func (cg *ChartGenerator) option(state models.ChartState) map[string]interface{} {
	chart := state.Chart
	option := map[string]interface{}{
		"title":   map[string]interface{}{"text": chart.Title, "left": "center"},
		"tooltip": map[string]interface{}{"trigger": "axis"},
		"grid":    map[string]interface{}{"left": "8%", "right": "4%", "bottom": "8%", "containLabel": true},
		"xAxis":   map[string]interface{}{"type": "category", "data": chart.Labels},
		"yAxis":   map[string]interface{}{"type": "value"},
	}
	if len(chart.Datasets) > 1 {
		option["legend"] = map[string]interface{}{"top": "bottom"}
	}

	var series []interface{}
	switch state.Archetype {
	case models.ArchetypeBoxPlot:
		option["tooltip"] = map[string]interface{}{"trigger": "item"}
		for _, s := range chart.Datasets {
			series = append(series, map[string]interface{}{
				"name": s.Label,
				"type": "boxplot",
				"data": boxes(s),
			})
		}

	case models.ArchetypeMatrix:
		option["tooltip"] = map[string]interface{}{"position": "top"}
		option["yAxis"] = map[string]interface{}{"type": "category", "data": chart.Labels}
		option["visualMap"] = map[string]interface{}{
			"min":        catalog.MatrixDomain[0],
			"max":        catalog.MatrixDomain[1],
			"calculable": true,
			"orient":     "horizontal",
			"left":       "center",
			"bottom":     "0%",
			"inRange": map[string]interface{}{"color": []string{
				catalog.CSS(catalog.MatrixColor(catalog.MatrixDomain[0])),
				catalog.CSS(catalog.MatrixColor(catalog.MatrixDomain[1])),
			}},
		}
		idx := indexOf(chart.Labels)
		for _, s := range chart.Datasets {
			cs, _ := cells(s)
			data := make([]interface{}, 0, len(cs))
			for _, c := range cs {
				data = append(data, []interface{}{idx[c.X], idx[c.Y], c.V})
			}
			series = append(series, map[string]interface{}{
				"name":  s.Label,
				"type":  "heatmap",
				"data":  data,
				"label": map[string]interface{}{"show": true},
			})
		}

	default:
		option["tooltip"] = map[string]interface{}{"trigger": "axis", "axisPointer": map[string]interface{}{"type": "shadow"}}
		for _, s := range chart.Datasets {
			entry := map[string]interface{}{
				"name": s.Label,
				"type": "bar",
				"data": values(s),
			}
			if c := s.Style.BackgroundColor; c != "" {
				entry["itemStyle"] = map[string]interface{}{"color": c, "borderColor": s.Style.BorderColor}
			}
			switch state.Archetype {
			case models.ArchetypeStackedBar:
				entry["stack"] = "total"
			case models.ArchetypeLine:
				entry["type"] = "line"
				entry["connectNulls"] = false
				entry["smooth"] = s.Style.Tension > 0
				if s.Style.BorderColor != "" {
					entry["itemStyle"] = map[string]interface{}{"color": s.Style.BorderColor}
				}
				if s.Style.Fill {
					entry["areaStyle"] = map[string]interface{}{"opacity": 0.3}
				}
			}
			series = append(series, entry)
		}
	}
	option["series"] = series
	return option
}
