package dispatcher

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/transform"
)

// joinPaired merges two grouped payloads by group label. The merge is
// positional only when both sides list the same labels in the same order;
// otherwise every left label must be found on the right.
func joinPaired(left, right gjson.Result) ([]transform.PairedRow, error) {
	lKeys, lVals := objectEntries(left)
	rKeys, rVals := objectEntries(right)

	if len(lKeys) != len(rKeys) {
		return nil, fmt.Errorf("%w: left returned %d groups, right returned %d",
			ErrPartialJoin, len(lKeys), len(rKeys))
	}

	rows := make([]transform.PairedRow, len(lKeys))
	if sameLabels(lKeys, rKeys) {
		for i, label := range lKeys {
			rows[i] = transform.PairedRow{Label: label, Left: transform.Point(lVals[i]), Right: transform.Point(rVals[i])}
		}
		return rows, nil
	}

	byLabel := make(map[string]gjson.Result, len(rKeys))
	for i, label := range rKeys {
		byLabel[label] = rVals[i]
	}
	used := make(map[string]bool, len(byLabel))
	for i, label := range lKeys {
		rv, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("%w: group %q missing from right side", ErrPartialJoin, label)
		}
		used[label] = true
		rows[i] = transform.PairedRow{Label: label, Left: transform.Point(lVals[i]), Right: transform.Point(rv)}
	}
	if len(used) != len(byLabel) {
		return nil, fmt.Errorf("%w: sides disagree on group labels", ErrPartialJoin)
	}
	return rows, nil
}

func sameLabels(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func objectEntries(obj gjson.Result) (keys []string, values []gjson.Result) {
	obj.ForEach(func(k, v gjson.Result) bool {
		keys = append(keys, k.String())
		values = append(values, v)
		return true
	})
	return keys, values
}
