package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// methodInfo is one catalog entry as listed by the methods command
type methodInfo struct {
	Name      string           `json:"name" yaml:"name"`
	Group     string           `json:"group" yaml:"group"`
	Label     string           `json:"label" yaml:"label"`
	Archetype models.Archetype `json:"archetype" yaml:"archetype"`
	Params    []string         `json:"params,omitempty" yaml:"params,omitempty"`
}

func newMethodsCmd() *cobra.Command {
	var format, group string

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List the analysis methods and the chart each renders to",
		Example: `  analyze methods
  analyze methods --group outliers
  analyze methods --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []methodInfo
			for _, m := range catalog.Methods() {
				if group != "" && m.Group != group {
					continue
				}
				archetype, _ := catalog.ResolveArchetype(m.Name)
				list = append(list, methodInfo{
					Name:      m.Name,
					Group:     m.Group,
					Label:     m.Label,
					Archetype: archetype,
					Params:    params(m.Requirements),
				})
			}
			if len(list) == 0 {
				return fmt.Errorf("no methods in group %q", group)
			}
			return writeMethods(cmd.OutOrStdout(), list, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, yaml")
	cmd.Flags().StringVar(&group, "group", "", "only list methods of this group")
	return cmd
}

func writeMethods(w io.Writer, list []methodInfo, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(list)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "GROUP\tMETHOD\tCHART\tPARAMS")
		for _, m := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Group, m.Name, m.Archetype, strings.Join(m.Params, ","))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported --format: %s (use table|json|yaml)", format)
	}
}

// params names the request parameters a method sends
func params(r catalog.Requirements) []string {
	var out []string
	if r.NeedsColumn || r.NeedsXY {
		out = append(out, "column")
	}
	if r.NeedsGroupBy {
		out = append(out, "group_by")
	}
	if r.NeedsRowField || r.NeedsXY {
		out = append(out, "row_field")
	}
	if r.NeedsValueField {
		out = append(out, "value_field")
	}
	if r.NeedsMultiColumn {
		out = append(out, "column[]")
	}
	if r.NeedsSubMethod {
		out = append(out, "method")
	}
	if r.NeedsFillValue {
		out = append(out, "default_value")
	}
	return out
}
