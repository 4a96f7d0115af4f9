package mocks

// registry maps method names to analyses. Paired descriptives are absent:
// clients issue their two grouped halves. Names the catalog does not list
// are never routed.
func (m *MockService) registry() map[string]analysis {
	methods := map[string]analysis{
		"mode":                     mode,
		"grouped-mode":             groupedMode,
		"pearson-correlation":      correlation("pearson", pearson),
		"spearman-correlation":     correlation("spearman", spearman),
		"correlation-matrix":       correlationMatrix,
		"histogram":                histogram,
		"kde":                      kde,
		"zscore-outliers":          zscoreOutliers,
		"iqr-outliers":             iqrOutliers,
		"boxplot":                  boxplot,
		"drop-rows-with-missing":   dropRowsWithMissing,
		"fill-missing-with":        fillMissingWith,
		"apply-log-transformation": applyLogTransformation,
		"normalize-column":         normalizeColumn,
		"standardize-column":       standardizeColumn,
		"filter-sort":              filterSort,
	}
	for name, fn := range reducers {
		methods[name] = scalar(name, fn)
		methods["grouped-"+name] = grouped(fn)
		methods["pivot-"+name] = pivot(fn)
	}

	return methods
}

