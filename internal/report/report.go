// Package report assembles and renders the result of a comparison run.
package report

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcncl/jsoncmp/internal/models"
)

// Summarize combines the two depth histograms and the difference list into
// a single Summary. Pure data assembly; the differences pass through
// unmodified and in order.
func Summarize(left, right models.Histogram, diffs []models.Difference) models.Summary {
	return models.Summary{
		LeftHistogram:  left,
		RightHistogram: right,
		LeftTotal:      left.Total(),
		RightTotal:     right.Total(),
		LeftMaxDepth:   left.MaxDepth(),
		RightMaxDepth:  right.MaxDepth(),
		Differences:    diffs,
	}
}

// Options control report rendering.
type Options struct {
	// MaxValueLength truncates rendered values in difference lines.
	// Zero means no truncation.
	MaxValueLength int
}

// errWriter sticks on the first write failure so Render reports it once
// instead of checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// Render writes the text report: the side-by-side depth table for both
// documents, then every difference as "<path> : <kind> : <left> vs
// <right>". The first write failure aborts the report and is returned.
func Render(dst io.Writer, s models.Summary, opts Options) error {
	w := &errWriter{w: dst}

	fmt.Fprintf(w, "Comparison Summary:\n")
	fmt.Fprintf(w, "Total nodes: left = %d, right = %d\n", s.LeftTotal, s.RightTotal)
	fmt.Fprintf(w, "Max depth:   left = %d, right = %d\n", s.LeftMaxDepth, s.RightMaxDepth)

	fmt.Fprintf(w, "\nNodes per depth:\n")
	maxDepth := s.LeftMaxDepth
	if s.RightMaxDepth > maxDepth {
		maxDepth = s.RightMaxDepth
	}
	for depth := 0; depth <= maxDepth; depth++ {
		l := s.LeftHistogram.Count(depth)
		r := s.RightHistogram.Count(depth)
		fmt.Fprintf(w, "  depth %d: left = %d, right = %d, difference = %+d\n", depth, l, r, l-r)
	}

	if s.Identical() {
		fmt.Fprintf(w, "\nNo differences found.\n")
		return w.err
	}

	fmt.Fprintf(w, "\nDifferences (%d):\n", len(s.Differences))
	for _, d := range s.Differences {
		fmt.Fprintf(w, "  %s : %s : %s vs %s\n",
			d.Path, d.Kind, truncate(d.Left, opts.MaxValueLength), truncate(d.Right, opts.MaxValueLength))
		if w.err != nil {
			break
		}
	}
	return w.err
}

// RenderString is a convenience wrapper that renders to a string instead
// of an io.Writer.
func RenderString(s models.Summary, opts Options) string {
	buf := &bytes.Buffer{}
	// Render on a bytes.Buffer cannot fail.
	_ = Render(buf, s, opts)
	return buf.String()
}

// LogSummary mirrors the summary contents into the run log: the totals as
// one record, then one record per difference.
func LogSummary(log *slog.Logger, s models.Summary) {
	log.Info("comparison summary",
		"left_nodes", s.LeftTotal,
		"right_nodes", s.RightTotal,
		"left_max_depth", s.LeftMaxDepth,
		"right_max_depth", s.RightMaxDepth,
		"differences", len(s.Differences),
	)
	for _, d := range s.Differences {
		log.Info("difference",
			"path", d.Path.String(),
			"kind", string(d.Kind),
			"left", d.Left,
			"right", d.Right,
		)
	}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
