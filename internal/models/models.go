package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which JSON kind a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase JSON name of the kind, as used in reports.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a parsed JSON value. Exactly one concrete type exists per JSON
// kind, so Counter and Differ can switch exhaustively. Values are never
// mutated after parsing.
type Value interface {
	Kind() Kind
}

// Null represents the JSON literal null.
type Null struct{}

// Bool represents a JSON boolean.
type Bool bool

// Number holds the literal text of a JSON number exactly as it appeared in
// the document. Equality is exact literal equality: "1.0" and "1" are
// different numbers. No float conversion happens during comparison.
type Number string

// String represents a JSON string.
type String string

// Array represents a JSON array.
type Array []Value

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object with member order preserved from the document.
// The differ relies on this to report keys in the left document's order.
type Object []Member

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

// Find returns the value for key and whether the key is present. Lookup is
// a linear scan; objects in practice are small enough that an index map
// would cost more than it saves.
func (o Object) Find(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present in the object.
func (o Object) Has(key string) bool {
	_, ok := o.Find(key)
	return ok
}

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key   string
	Index int
	IsKey bool
}

// KeySegment returns a path segment for an object key.
func KeySegment(key string) Segment {
	return Segment{Key: key, IsKey: true}
}

// IndexSegment returns a path segment for an array index.
func IndexSegment(i int) Segment {
	return Segment{Index: i}
}

// Path locates a node from the document root.
type Path []Segment

// Child returns a new path extended by seg. The backing array is copied so
// sibling paths derived from the same parent never alias.
func (p Path) Child(seg Segment) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = seg
	return child
}

// String renders the path in dotted form: "a.b[2].c". The root path
// renders as "$".
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	for i, seg := range p {
		if seg.IsKey {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.Key)
		} else {
			fmt.Fprintf(&b, "[%d]", seg.Index)
		}
	}
	return b.String()
}

// Histogram counts nodes per nesting depth. Index is depth, root = 0.
type Histogram []int

// Add increments the count at depth, growing the histogram as needed.
func (h *Histogram) Add(depth int) {
	for len(*h) <= depth {
		*h = append(*h, 0)
	}
	(*h)[depth]++
}

// Count returns the node count at depth, zero when the document never
// reaches that depth.
func (h Histogram) Count(depth int) int {
	if depth < 0 || depth >= len(h) {
		return 0
	}
	return h[depth]
}

// Total returns the total node count across all depths. It always equals
// the number of nodes in the counted document.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// MaxDepth returns the deepest level present, or -1 for an empty histogram.
func (h Histogram) MaxDepth() int {
	return len(h) - 1
}

// Compact renders a value for difference records and logs: scalars as
// their JSON literal, containers as a kind-and-size summary.
func Compact(v Value) string {
	switch t := v.(type) {
	case Null:
		return "null"
	case Bool:
		if t {
			return "true"
		}
		return "false"
	case Number:
		return string(t)
	case String:
		return strconv.Quote(string(t))
	case Array:
		return fmt.Sprintf("array[%d]", len(t))
	case Object:
		return fmt.Sprintf("object{%d}", len(t))
	default:
		return "unknown"
	}
}

// DiffKind categorizes a structural difference.
type DiffKind string

const (
	// TypeMismatch: the two values have different JSON kinds. This includes
	// a number on one side against a string on the other; kinds are compared
	// before values, so scalar kind disagreements never reach the value
	// comparison.
	TypeMismatch DiffKind = "type_mismatch"
	// MissingLeft: an object key present only in the right document.
	MissingLeft DiffKind = "missing_in_left"
	// MissingRight: an object key present only in the left document.
	MissingRight DiffKind = "missing_in_right"
	// LengthMismatch: both sides are arrays of different lengths.
	LengthMismatch DiffKind = "length_mismatch"
	// ValueMismatch: scalars of the same kind with unequal values.
	ValueMismatch DiffKind = "value_mismatch"
)

// Absent is the rendering used for a side that has no value at a path.
const Absent = "absent"

// Difference records one divergence between the two documents. Left and
// Right hold compact renderings of the conflicting values, or Absent for
// the side that lacks the position.
type Difference struct {
	Path  Path
	Kind  DiffKind
	Left  string
	Right string
}

// Summary is the assembled result of one comparison run.
type Summary struct {
	LeftHistogram  Histogram
	RightHistogram Histogram
	LeftTotal      int
	RightTotal     int
	LeftMaxDepth   int
	RightMaxDepth  int
	Differences    []Difference
}

// Identical reports whether the comparison found no differences.
func (s Summary) Identical() bool {
	return len(s.Differences) == 0
}
