package catalog

// Service groups used in the analytics URL path
const (
	GroupDescriptives = "descriptives"
	GroupAggregation  = "aggregation"
	GroupCorrelation  = "correlation"
	GroupDistribution = "distribution"
	GroupOutliers     = "outliers"
	GroupCleaning     = "cleaning"
)

// Requirements describes which request parameters a method needs.
// The flags compose; some methods need several.
type Requirements struct {
	NeedsColumn      bool `json:"needsColumn,omitempty"`
	NeedsGroupBy     bool `json:"needsGroupBy,omitempty"`
	NeedsRowField    bool `json:"needsRowField,omitempty"`
	NeedsValueField  bool `json:"needsValueField,omitempty"`
	NeedsMultiColumn bool `json:"needsMultiColumn,omitempty"`
	NeedsSubMethod   bool `json:"needsSubMethod,omitempty"`
	NeedsXY          bool `json:"needsXY,omitempty"`
	NeedsFillValue   bool `json:"needsFillValue,omitempty"`
}

// IsEmpty reports whether no parameter is required
func (r Requirements) IsEmpty() bool {
	return r == Requirements{}
}

// Pair names the two grouped sub-methods of a paired-statistic method
type Pair struct {
	Left       string `json:"left"`
	Right      string `json:"right"`
	LeftLabel  string `json:"leftLabel"`
	RightLabel string `json:"rightLabel"`
}

// Method is one catalog entry
type Method struct {
	Name         string       `json:"name"`
	Group        string       `json:"group"`
	Label        string       `json:"label"`
	Requirements Requirements `json:"requirements"`
	Pair         *Pair        `json:"pair,omitempty"`
}

// IsPaired reports whether the method needs two merged fetches
func (m Method) IsPaired() bool {
	return m.Pair != nil
}

var (
	column      = Requirements{NeedsColumn: true}
	grouped     = Requirements{NeedsColumn: true, NeedsGroupBy: true}
	pivot       = Requirements{NeedsColumn: true, NeedsRowField: true, NeedsValueField: true}
	xy          = Requirements{NeedsColumn: true, NeedsRowField: true, NeedsXY: true}
	multiColumn = Requirements{NeedsMultiColumn: true}
)

func paired(name, left, right, leftLabel, rightLabel string) Method {
	return Method{
		Name:         name,
		Group:        GroupDescriptives,
		Label:        "Grouped " + leftLabel + " and " + rightLabel,
		Requirements: grouped,
		Pair: &Pair{
			Left:       "grouped-" + left,
			Right:      "grouped-" + right,
			LeftLabel:  leftLabel,
			RightLabel: rightLabel,
		},
	}
}

var methods = []Method{
	// Descriptive scalars
	{Name: "mean", Group: GroupDescriptives, Label: "Mean", Requirements: column},
	{Name: "median", Group: GroupDescriptives, Label: "Median", Requirements: column},
	{Name: "mode", Group: GroupDescriptives, Label: "Mode", Requirements: column},
	{Name: "stddev", Group: GroupDescriptives, Label: "Std Dev", Requirements: column},
	{Name: "variance", Group: GroupDescriptives, Label: "Variance", Requirements: column},
	{Name: "min", Group: GroupDescriptives, Label: "Min", Requirements: column},
	{Name: "max", Group: GroupDescriptives, Label: "Max", Requirements: column},
	{Name: "sum", Group: GroupDescriptives, Label: "Sum", Requirements: column},
	{Name: "count", Group: GroupDescriptives, Label: "Count", Requirements: column},
	{Name: "range", Group: GroupDescriptives, Label: "Range", Requirements: column},

	// Paired statistics
	paired("mean-median", "mean", "median", "Mean", "Median"),
	paired("stddev-variance", "stddev", "variance", "Std Dev", "Variance"),
	paired("min-max", "min", "max", "Min", "Max"),
	paired("range-stddev", "range", "stddev", "Range", "Std Dev"),
	paired("sum-count", "sum", "count", "Sum", "Count"),
	paired("mode-median", "mode", "median", "Mode", "Median"),

	// Aggregation
	{Name: "grouped-sum", Group: GroupAggregation, Label: "Grouped Sum", Requirements: grouped},
	{Name: "grouped-mean", Group: GroupAggregation, Label: "Grouped Mean", Requirements: grouped},
	{Name: "grouped-count", Group: GroupAggregation, Label: "Grouped Count", Requirements: grouped},
	{Name: "grouped-min", Group: GroupAggregation, Label: "Grouped Min", Requirements: grouped},
	{Name: "grouped-max", Group: GroupAggregation, Label: "Grouped Max", Requirements: grouped},
	{Name: "grouped-median", Group: GroupAggregation, Label: "Grouped Median", Requirements: grouped},
	{Name: "grouped-stddev", Group: GroupAggregation, Label: "Grouped Std Dev", Requirements: grouped},
	{Name: "grouped-variance", Group: GroupAggregation, Label: "Grouped Variance", Requirements: grouped},
	{Name: "grouped-mode", Group: GroupAggregation, Label: "Grouped Mode", Requirements: grouped},
	{Name: "grouped-range", Group: GroupAggregation, Label: "Grouped Range", Requirements: grouped},
	{Name: "pivot-sum", Group: GroupAggregation, Label: "Pivot Sum", Requirements: pivot},
	{Name: "pivot-mean", Group: GroupAggregation, Label: "Pivot Mean", Requirements: pivot},
	{Name: "pivot-min", Group: GroupAggregation, Label: "Pivot Min", Requirements: pivot},
	{Name: "pivot-max", Group: GroupAggregation, Label: "Pivot Max", Requirements: pivot},
	{Name: "pivot-count", Group: GroupAggregation, Label: "Pivot Count", Requirements: pivot},
	{Name: "pivot-median", Group: GroupAggregation, Label: "Pivot Median", Requirements: pivot},
	{Name: "pivot-stddev", Group: GroupAggregation, Label: "Pivot Std Dev", Requirements: pivot},

	// Correlation
	{Name: "pearson-correlation", Group: GroupCorrelation, Label: "Pearson Correlation", Requirements: xy},
	{Name: "spearman-correlation", Group: GroupCorrelation, Label: "Spearman Correlation", Requirements: xy},
	{Name: "correlation-matrix", Group: GroupCorrelation, Label: "Correlation Matrix",
		Requirements: Requirements{NeedsMultiColumn: true, NeedsSubMethod: true}},

	// Distribution
	{Name: "histogram", Group: GroupDistribution, Label: "Histogram", Requirements: column},
	{Name: "kde", Group: GroupDistribution, Label: "KDE", Requirements: column},

	// Outliers
	{Name: "zscore-outliers", Group: GroupOutliers, Label: "Z-Score Outliers", Requirements: column},
	{Name: "iqr-outliers", Group: GroupOutliers, Label: "IQR Outliers", Requirements: column},
	{Name: "boxplot", Group: GroupOutliers, Label: "Box Plot", Requirements: column},

	// Cleaning
	{Name: "drop-rows-with-missing", Group: GroupCleaning, Label: "Cleaned Dataset"},
	{Name: "fill-missing-with", Group: GroupCleaning, Label: "Dataset with Filled Values",
		Requirements: Requirements{NeedsFillValue: true}},
	{Name: "apply-log-transformation", Group: GroupCleaning, Label: "Log-Transformed Dataset", Requirements: column},
	{Name: "normalize-column", Group: GroupCleaning, Label: "Normalized Column", Requirements: column},
	{Name: "standardize-column", Group: GroupCleaning, Label: "Standardized Columns", Requirements: multiColumn},
	{Name: "filter-sort", Group: GroupCleaning, Label: "Filtered and Sorted Data", Requirements: column},
}

var byName = func() map[string]Method {
	m := make(map[string]Method, len(methods))
	for _, method := range methods {
		m[method.Name] = method
	}
	return m
}()

// Lookup returns the catalog entry for a method identifier
func Lookup(name string) (Method, bool) {
	m, ok := byName[name]
	return m, ok
}

// Methods returns every catalog entry in display order
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// Groups returns the method identifiers of each group, in display order
func Groups() map[string][]string {
	groups := make(map[string][]string)
	for _, m := range methods {
		groups[m.Group] = append(groups[m.Group], m.Name)
	}
	return groups
}

// RequirementsOf returns the request parameters a method needs.
// Unknown methods need nothing.
func RequirementsOf(name string) Requirements {
	return byName[name].Requirements
}

// LabelOf returns the human-readable name of a method, or the identifier itself
func LabelOf(name string) string {
	if m, ok := byName[name]; ok && m.Label != "" {
		return m.Label
	}
	return name
}

// SubMethods lists the accepted sub-method selectors of correlation-matrix
var SubMethods = []string{"pearson", "spearman"}

// DefaultSubMethod is used when a method needs a sub-method and none was given
const DefaultSubMethod = "pearson"

// DefaultFillValue is used by fill-missing-with when no value was given
const DefaultFillValue = "0"
