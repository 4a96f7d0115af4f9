package dispatcher

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/Bgoodwin24/insightforge/internal/catalog"
	"github.com/Bgoodwin24/insightforge/internal/models"
)

// Defaults are the column positions used to fill request parameters.
// They are chosen by position in the dataset, not by the user.
type Defaults struct {
	Column     int
	GroupBy    int
	RowField   int
	ValueField int
}

// DefaultIndices returns the stock column positions
func DefaultIndices() Defaults {
	return Defaults{Column: 6, GroupBy: 1, RowField: 2, ValueField: 5}
}

// resolved holds the parameters resolved for one request
type resolved struct {
	query       url.Values
	columnIndex int
}

// resolve builds the outbound query from the method's requirements,
// appending only the parameters the method needs
func (d Defaults) resolve(req Request, reqs catalog.Requirements) (resolved, error) {
	out := resolved{query: url.Values{}, columnIndex: -1}
	ds := req.Dataset

	if _, err := uuid.Parse(ds.ID); err != nil {
		return out, fmt.Errorf("%w: dataset id %q is not valid", ErrMissingPrerequisite, ds.ID)
	}
	out.query.Set("dataset_id", ds.ID)

	column := func(param string, idx int) error {
		name, ok := ds.Column(idx)
		if !ok {
			return fmt.Errorf("%w: %s needs column %d but dataset has %d columns",
				ErrMissingPrerequisite, param, idx, len(ds.Columns))
		}
		out.query.Set(param, name)
		return nil
	}

	if reqs.NeedsColumn || reqs.NeedsXY {
		if err := column("column", d.Column); err != nil {
			return out, err
		}
		out.columnIndex = d.Column
	}
	if reqs.NeedsGroupBy {
		if err := column("group_by", d.GroupBy); err != nil {
			return out, err
		}
	}
	if reqs.NeedsRowField || reqs.NeedsXY {
		if err := column("row_field", d.RowField); err != nil {
			return out, err
		}
	}
	if reqs.NeedsValueField {
		if err := column("value_field", d.ValueField); err != nil {
			return out, err
		}
	}
	if reqs.NeedsMultiColumn {
		numeric := ds.NumericColumns()
		if len(numeric) < 2 {
			return out, fmt.Errorf("%w: need at least 2 numeric columns, dataset has %d",
				ErrMissingPrerequisite, len(numeric))
		}
		for _, name := range numeric {
			out.query.Add("column", name)
		}
	}
	if reqs.NeedsSubMethod {
		sub := req.SubMethod
		if sub == "" {
			sub = catalog.DefaultSubMethod
		}
		if !validSubMethod(sub) {
			return out, fmt.Errorf("%w: sub-method %q", ErrUnknownMethod, sub)
		}
		out.query.Set("method", sub)
	}
	if reqs.NeedsFillValue {
		fill := req.FillValue
		if fill == "" {
			fill = catalog.DefaultFillValue
		}
		out.query.Set("default_value", fill)
	}
	return out, nil
}

func validSubMethod(sub string) bool {
	for _, s := range catalog.SubMethods {
		if s == sub {
			return true
		}
	}
	return false
}

// columnData returns the values the outlier indices refer to
func (r resolved) columnData(ds models.Dataset) []models.DataPoint {
	if r.columnIndex < 0 {
		return nil
	}
	return ds.ColumnValues(r.columnIndex)
}
