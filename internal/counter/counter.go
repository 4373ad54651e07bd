// Package counter builds the per-depth node histogram of a JSON value.
package counter

import "github.com/mcncl/jsoncmp/internal/models"

type item struct {
	value models.Value
	depth int
}

// CountDepths walks value and counts every node at its nesting depth. The
// root is depth 0. Containers count once at their own depth and their
// children at depth+1; an empty container contributes only itself. The
// walk uses an explicit work-list so adversarially deep documents cannot
// exhaust the call stack.
func CountDepths(value models.Value) models.Histogram {
	var h models.Histogram
	if value == nil {
		return h
	}

	work := []item{{value: value, depth: 0}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		h.Add(it.depth)

		switch v := it.value.(type) {
		case models.Object:
			for _, m := range v {
				work = append(work, item{value: m.Value, depth: it.depth + 1})
			}
		case models.Array:
			for _, elem := range v {
				work = append(work, item{value: elem, depth: it.depth + 1})
			}
		}
	}
	return h
}
