package counter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsoncmp/internal/models"
	"github.com/mcncl/jsoncmp/internal/parser"
)

func mustParse(t *testing.T, input string) models.Value {
	t.Helper()
	value, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return value
}

// totalNodes counts nodes recursively, as an independent check on the
// histogram invariant.
func totalNodes(v models.Value) int {
	switch t := v.(type) {
	case models.Object:
		n := 1
		for _, m := range t {
			n += totalNodes(m.Value)
		}
		return n
	case models.Array:
		n := 1
		for _, elem := range t {
			n += totalNodes(elem)
		}
		return n
	default:
		return 1
	}
}

func TestCountDepths(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Histogram
	}{
		{
			name:     "scalar root",
			input:    `5`,
			expected: models.Histogram{1},
		},
		{
			name:     "flat object",
			input:    `{"a": 1, "b": 2}`,
			expected: models.Histogram{1, 2},
		},
		{
			name:     "empty object counts itself only",
			input:    `{}`,
			expected: models.Histogram{1},
		},
		{
			name:     "empty array counts itself only",
			input:    `[]`,
			expected: models.Histogram{1},
		},
		{
			name:  "nested object",
			input: `{"a": {"b": {"c": 1}}}`,
			// root, a-object, b-object, scalar c
			expected: models.Histogram{1, 1, 1, 1},
		},
		{
			name:  "mixed nesting",
			input: `{"a": [1, 2], "b": {"c": true}, "d": null}`,
			// depth 0: root; depth 1: array, object, null; depth 2: 1, 2, true
			expected: models.Histogram{1, 3, 3},
		},
		{
			name:     "empty containers inside array",
			input:    `[[], {}]`,
			expected: models.Histogram{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := mustParse(t, tt.input)
			h := CountDepths(value)
			assert.Equal(t, tt.expected, h)
			assert.Equal(t, totalNodes(value), h.Total(), "histogram total must equal node count")
		})
	}
}

func TestCountDepths_NilValue(t *testing.T) {
	h := CountDepths(nil)
	assert.Equal(t, 0, h.Total())
}

// Depth is bounded by the heap, not the call stack: a document nested far
// beyond any safe recursion depth must still count cleanly.
func TestCountDepths_DeepNesting(t *testing.T) {
	const depth = 200_000

	var value models.Value = models.Number("1")
	for i := 0; i < depth; i++ {
		value = models.Array{value}
	}

	h := CountDepths(value)
	assert.Equal(t, depth+1, h.Total())
	assert.Equal(t, depth, h.MaxDepth())
	assert.Equal(t, 1, h.Count(depth))
}
