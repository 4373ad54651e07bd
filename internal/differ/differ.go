// Package differ walks two JSON values in lock-step and records every
// position where they diverge.
package differ

import "github.com/mcncl/jsoncmp/internal/models"

// frame is one pending comparison. Either side may be nil when the
// position exists in only one document; such frames emit a missing-key
// record instead of recursing.
type frame struct {
	path  models.Path
	left  models.Value
	right models.Value
}

// Compare diffs left against right and returns the differences in
// depth-first, left-to-right encounter order: object keys in the left
// document's insertion order followed by right-only keys in the right
// document's order, array indices ascending. Comparison is total — any
// two well-formed values produce a (possibly empty) difference list, and
// identical positions emit nothing.
//
// A kind disagreement (object vs array, number vs string, ...) emits a
// single type-mismatch record and stops descending at that path. An array
// length disagreement emits a length-mismatch record and still descends
// the common prefix of indices. The walk uses an explicit frame stack, so
// document depth is bounded by the heap rather than the call stack.
func Compare(left, right models.Value) []models.Difference {
	diffs := []models.Difference{}
	stack := []frame{{path: models.Path{}, left: left, right: right}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case f.left == nil:
			diffs = append(diffs, models.Difference{
				Path:  f.path,
				Kind:  models.MissingLeft,
				Left:  models.Absent,
				Right: models.Compact(f.right),
			})
		case f.right == nil:
			diffs = append(diffs, models.Difference{
				Path:  f.path,
				Kind:  models.MissingRight,
				Left:  models.Compact(f.left),
				Right: models.Absent,
			})
		case f.left.Kind() != f.right.Kind():
			diffs = append(diffs, models.Difference{
				Path:  f.path,
				Kind:  models.TypeMismatch,
				Left:  models.Compact(f.left),
				Right: models.Compact(f.right),
			})
		case f.left.Kind() == models.KindObject:
			stack = pushReversed(stack, objectFrames(f.path, f.left.(models.Object), f.right.(models.Object)))
		case f.left.Kind() == models.KindArray:
			l, r := f.left.(models.Array), f.right.(models.Array)
			if len(l) != len(r) {
				diffs = append(diffs, models.Difference{
					Path:  f.path,
					Kind:  models.LengthMismatch,
					Left:  models.Compact(l),
					Right: models.Compact(r),
				})
			}
			stack = pushReversed(stack, arrayFrames(f.path, l, r))
		default:
			if !scalarEqual(f.left, f.right) {
				diffs = append(diffs, models.Difference{
					Path:  f.path,
					Kind:  models.ValueMismatch,
					Left:  models.Compact(f.left),
					Right: models.Compact(f.right),
				})
			}
		}
	}

	return diffs
}

// objectFrames builds the child comparisons of an object pair in visit
// order: left keys first (shared keys recurse, left-only keys become
// one-sided frames), then right-only keys.
func objectFrames(path models.Path, left, right models.Object) []frame {
	frames := make([]frame, 0, len(left)+len(right))
	for _, m := range left {
		child := frame{path: path.Child(models.KeySegment(m.Key)), left: m.Value}
		if rv, ok := right.Find(m.Key); ok {
			child.right = rv
		}
		frames = append(frames, child)
	}
	for _, m := range right {
		if !left.Has(m.Key) {
			frames = append(frames, frame{path: path.Child(models.KeySegment(m.Key)), right: m.Value})
		}
	}
	return frames
}

// arrayFrames pairs elements over the common prefix of the two arrays.
// Index overhang is covered by the length-mismatch record, not by
// per-element missing records.
func arrayFrames(path models.Path, left, right models.Array) []frame {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	frames := make([]frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, frame{
			path:  path.Child(models.IndexSegment(i)),
			left:  left[i],
			right: right[i],
		})
	}
	return frames
}

// pushReversed pushes frames onto the LIFO stack back to front so they
// pop in encounter order.
func pushReversed(stack, frames []frame) []frame {
	for i := len(frames) - 1; i >= 0; i-- {
		stack = append(stack, frames[i])
	}
	return stack
}

// scalarEqual compares two scalars of the same kind. Numbers compare by
// their literal JSON text, so 1.0 and 1 are unequal.
func scalarEqual(left, right models.Value) bool {
	switch l := left.(type) {
	case models.Null:
		return true
	case models.Bool:
		return l == right.(models.Bool)
	case models.Number:
		return l == right.(models.Number)
	case models.String:
		return l == right.(models.String)
	default:
		return false
	}
}
