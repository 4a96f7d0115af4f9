package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// PointKind identifies which variant a DataPoint holds
type PointKind int

const (
	NullPoint PointKind = iota
	NumberPoint
	TextPoint
	BoxPoint
	CellPoint
)

// BoxSummary is a five-number box-plot summary
type BoxSummary struct {
	Min    float64 `json:"min" yaml:"min"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3" yaml:"q3"`
	Max    float64 `json:"max" yaml:"max"`
}

// MatrixCell is one cell of a category x category matrix
type MatrixCell struct {
	X string  `json:"x" yaml:"x"`
	Y string  `json:"y" yaml:"y"`
	V float64 `json:"v" yaml:"v"`
}

// DataPoint is a single chart value. The zero value is an explicit null,
// which keeps index alignment with the chart labels.
type DataPoint struct {
	kind PointKind
	num  float64
	text string
	box  BoxSummary
	cell MatrixCell
}

// Null returns an explicit "no value at this position" point
func Null() DataPoint { return DataPoint{} }

// Number returns a numeric point. NaN and infinities have no JSON encoding
// and become null.
func Number(v float64) DataPoint {
	if !IsFinite(v) {
		return Null()
	}
	return DataPoint{kind: NumberPoint, num: v}
}

// IsFinite reports whether v is neither NaN nor an infinity
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Text returns a textual scalar point (e.g. the mode of a categorical column)
func Text(s string) DataPoint { return DataPoint{kind: TextPoint, text: s} }

// Box returns a box-plot point
func Box(b BoxSummary) DataPoint { return DataPoint{kind: BoxPoint, box: b} }

// Cell returns a matrix cell point
func Cell(c MatrixCell) DataPoint { return DataPoint{kind: CellPoint, cell: c} }

// Kind reports the variant held by the point
func (p DataPoint) Kind() PointKind { return p.kind }

// IsNull reports whether the point is an explicit null
func (p DataPoint) IsNull() bool { return p.kind == NullPoint }

// Float returns the numeric value. Text points are parsed when possible.
func (p DataPoint) Float() (float64, bool) {
	switch p.kind {
	case NumberPoint:
		return p.num, true
	case TextPoint:
		v, err := strconv.ParseFloat(p.text, 64)
		return v, err == nil && IsFinite(v)
	case CellPoint:
		return p.cell.V, true
	default:
		return 0, false
	}
}

// BoxValue returns the box summary held by the point
func (p DataPoint) BoxValue() (BoxSummary, bool) {
	return p.box, p.kind == BoxPoint
}

// CellValue returns the matrix cell held by the point
func (p DataPoint) CellValue() (MatrixCell, bool) {
	return p.cell, p.kind == CellPoint
}

// String renders the point for tables and logs
func (p DataPoint) String() string {
	switch p.kind {
	case NumberPoint:
		return strconv.FormatFloat(p.num, 'g', 6, 64)
	case TextPoint:
		return p.text
	case BoxPoint:
		return fmt.Sprintf("[%g, %g, %g, %g, %g]", p.box.Min, p.box.Q1, p.box.Median, p.box.Q3, p.box.Max)
	case CellPoint:
		return fmt.Sprintf("(%s, %s) = %g", p.cell.X, p.cell.Y, p.cell.V)
	default:
		return "-"
	}
}

// MarshalJSON encodes the point as a bare scalar, null, or object
func (p DataPoint) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case NumberPoint:
		return json.Marshal(p.num)
	case TextPoint:
		return json.Marshal(p.text)
	case BoxPoint:
		return json.Marshal(p.box)
	case CellPoint:
		return json.Marshal(p.cell)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML encodes the point the same way MarshalJSON does
func (p DataPoint) MarshalYAML() (interface{}, error) {
	switch p.kind {
	case NumberPoint:
		return p.num, nil
	case TextPoint:
		return p.text, nil
	case BoxPoint:
		return p.box, nil
	case CellPoint:
		return p.cell, nil
	default:
		return nil, nil
	}
}

// UnmarshalJSON decodes any of the encodings produced by MarshalJSON
func (p *DataPoint) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*p = Null()
	case float64:
		*p = Number(v)
	case string:
		*p = Text(v)
	case map[string]interface{}:
		if _, ok := v["q1"]; ok {
			var box BoxSummary
			if err := json.Unmarshal(b, &box); err != nil {
				return err
			}
			*p = Box(box)
			return nil
		}
		var cell MatrixCell
		if err := json.Unmarshal(b, &cell); err != nil {
			return err
		}
		*p = Cell(cell)
	default:
		return fmt.Errorf("unsupported data point encoding: %s", string(b))
	}
	return nil
}
