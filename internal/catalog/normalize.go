package catalog

import (
	"strings"

	"github.com/Bgoodwin24/insightforge/internal/models"
)

// cleaningOperations are matched by substring, in this order
var cleaningOperations = []string{
	"drop-rows-with-missing",
	"fill-missing-with",
	"apply-log-transformation",
	"normalize-column",
	"standardize-column",
	"filter-sort",
}

// Normalize collapses a method identifier into the key used to pick a chart
// archetype. Rules are applied in order and the first match wins.
func Normalize(method string) string {
	switch {
	case strings.HasPrefix(method, "zscore"), strings.HasPrefix(method, "iqr"):
		return strings.TrimSuffix(method, "-outliers")
	case strings.HasPrefix(method, "grouped-"):
		return "grouped"
	case strings.HasPrefix(method, "pivot-"):
		return "pivot"
	case strings.HasSuffix(method, "-correlation"):
		return strings.TrimSuffix(method, "-correlation")
	case method == "correlation-matrix":
		return "correlationmatrix"
	}

	for _, op := range cleaningOperations {
		if strings.Contains(method, op) {
			return strings.ReplaceAll(op, "-", "")
		}
	}

	return method
}

var archetypes = map[string]models.Archetype{
	// scalar descriptives
	"mean":     models.ArchetypeBar,
	"median":   models.ArchetypeBar,
	"mode":     models.ArchetypeBar,
	"stddev":   models.ArchetypeBar,
	"variance": models.ArchetypeBar,
	"min":      models.ArchetypeBar,
	"max":      models.ArchetypeBar,
	"sum":      models.ArchetypeBar,
	"count":    models.ArchetypeBar,
	"range":    models.ArchetypeBar,

	// paired statistics
	"mean-median":     models.ArchetypeBar,
	"stddev-variance": models.ArchetypeBar,
	"min-max":         models.ArchetypeBar,
	"range-stddev":    models.ArchetypeBar,
	"sum-count":       models.ArchetypeBar,
	"mode-median":     models.ArchetypeBar,

	"grouped": models.ArchetypeBar,
	"pivot":   models.ArchetypeBar,

	"pearson":           models.ArchetypeBar,
	"spearman":          models.ArchetypeBar,
	"correlationmatrix": models.ArchetypeMatrix,

	"histogram": models.ArchetypeBar,
	"kde":       models.ArchetypeLine,

	"zscore":  models.ArchetypeBar,
	"iqr":     models.ArchetypeBar,
	"boxplot": models.ArchetypeBoxPlot,

	"droprowswithmissing":    models.ArchetypeBar,
	"fillmissingwith":        models.ArchetypeBar,
	"applylogtransformation": models.ArchetypeLine,
	"normalizecolumn":        models.ArchetypeLine,
	"standardizecolumn":      models.ArchetypeLine,
	"filtersort":             models.ArchetypeBar,
}

// ArchetypeOf maps a normalized key to its chart archetype. A missing
// mapping is reported, never defaulted.
func ArchetypeOf(key string) (models.Archetype, bool) {
	a, ok := archetypes[key]
	return a, ok
}

// ResolveArchetype normalizes a method and maps it to its archetype
func ResolveArchetype(method string) (models.Archetype, bool) {
	return ArchetypeOf(Normalize(method))
}
