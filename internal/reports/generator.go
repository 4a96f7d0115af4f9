// Package reports turns a displayed chart into a shareable HTML page: a
// markdown summary of the result with the interactive chart embedded.
package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/Bgoodwin24/insightforge/internal/charts"
	"github.com/Bgoodwin24/insightforge/internal/logger"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// maxTableRows bounds the value table of the summary
const maxTableRows = 50

// Generator handles report generation and HTML conversion
type Generator struct {
	charts  *charts.ChartGenerator
	version string
	now     func() time.Time
	log     *logger.Logger
}

// NewGenerator creates a report generator embedding charts from cg
func NewGenerator(cg *charts.ChartGenerator, version string) *Generator {
	return &Generator{
		charts:  cg,
		version: version,
		now:     time.Now,
		log:     logger.WithComponent("reports"),
	}
}

// TemplateData is what the report template renders
type TemplateData struct {
	Title     string
	CSS       string
	Content   string
	Chart     string
	Generated string
	Version   string
}

// GenerateHTML renders state as a complete HTML page
func (g *Generator) GenerateHTML(state models.ChartState) (string, error) {
	snippet, err := g.charts.Snippet(state)
	if err != nil {
		return "", fmt.Errorf("failed to build chart snippet: %w", err)
	}

	data := TemplateData{
		Title:     state.Chart.Title,
		CSS:       reportCSS,
		Content:   g.markdownToHTML(g.Markdown(state)),
		Chart:     snippet.HTML,
		Generated: g.now().UTC().Format(time.RFC1123),
		Version:   g.version,
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"safeCSS": func(s string) template.CSS {
			return template.CSS(s)
		},
	}).Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	g.log.Debug("report generated", map[string]interface{}{
		"method": state.Method,
		"bytes":  buf.Len(),
	})
	return buf.String(), nil
}

// Markdown summarizes state: what ran, the box-plot statistics if any and a
// table of the plotted values
func (g *Generator) Markdown(state models.ChartState) string {
	var b strings.Builder
	c := state.Chart

	fmt.Fprintf(&b, "# %s\n\n", escape(c.Title))
	fmt.Fprintf(&b, "- **Method:** `%s`\n", state.Method)
	fmt.Fprintf(&b, "- **Group:** %s\n", state.Group)
	fmt.Fprintf(&b, "- **Chart:** %s\n", state.Archetype)
	fmt.Fprintf(&b, "- **Points:** %d\n\n", c.PointCount())

	if len(c.Stats) > 0 {
		keys := make([]string, 0, len(c.Stats))
		for k := range c.Stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("## Statistics\n\n| Statistic | Value |\n|---|---|\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %g |\n", escape(k), c.Stats[k])
		}
		b.WriteString("\n")
	}

	if state.Archetype == models.ArchetypeMatrix || state.Archetype == models.ArchetypeBoxPlot {
		return b.String()
	}
	if len(c.Labels) == 0 || len(c.Datasets) == 0 {
		b.WriteString("_No values to display._\n")
		return b.String()
	}

	b.WriteString("## Values\n\n| Label |")
	for _, s := range c.Datasets {
		fmt.Fprintf(&b, " %s |", escape(s.Label))
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---|", len(c.Datasets)))
	b.WriteString("\n")

	rows := min(len(c.Labels), maxTableRows)
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "| %s |", escape(c.Labels[i]))
		for _, s := range c.Datasets {
			v := "-"
			if i < len(s.Data) {
				v = s.Data[i].String()
			}
			fmt.Fprintf(&b, " %s |", escape(v))
		}
		b.WriteString("\n")
	}
	if len(c.Labels) > rows {
		fmt.Fprintf(&b, "\n_%d more rows not shown._\n", len(c.Labels)-rows)
	}
	return b.String()
}

// markdownToHTML converts markdown to HTML
func (g *Generator) markdownToHTML(markdownText string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(markdownText))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return string(markdown.Render(doc, renderer))
}

// escape keeps cell text from breaking table or emphasis syntax
func escape(s string) string {
	r := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
