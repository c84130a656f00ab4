// Package layout implements the placement strategies that turn a node/edge
// list into 2-D coordinates.
//
// Every strategy is a pure function: identical input produces identical
// positions, declared node order breaks all ties, and no strategy performs
// I/O or touches shared state. Coordinates are non-negative top-left box
// origins; box sizes come from the style mapper via [Options.Size].
//
// Strategies:
//
//	linear        single centred vertical column
//	horizontal    single centred row
//	grid          fixed column count, wrapped rows
//	rows          explicit per-node row keys
//	flow          auto-wrapped rows targeting ~16:9
//	swimlane      horizontal lanes stacked vertically
//	pipeline      left-to-right steps, each a node or a vertical stack
//	branching     dependency levels from the edge graph (cycle tolerant)
//	hierarchical  alias for branching
//
// Unknown strategy names fall back to linear.
package layout

import (
	"sort"

	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/style"
)

// Point is a node's top-left coordinate.
type Point struct {
	X int
	Y int
}

// Sizer resolves a node's rendered (width, height).
type Sizer func(descriptor.Node) (int, int)

// Options carries the page geometry, spacing constants, and
// strategy-specific parameters for a placement run.
type Options struct {
	Page    style.Page
	Spacing style.Spacing

	// ContentTop is the Y coordinate where content starts, below the
	// reserved title area.
	ContentTop int

	// Size resolves node dimensions. Nil falls back to a fixed box so the
	// strategies stay total functions.
	Size Sizer

	// Strategy-specific parameters.
	GridColumns int
	FlowColumns int
	Lanes       []descriptor.Lane
	Steps       []descriptor.Step
}

// Strategy is a placement algorithm. It must be deterministic and respect
// declared node order for any ambiguous ordering.
type Strategy func(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point

var strategies = map[string]Strategy{
	"linear":       Linear,
	"horizontal":   Horizontal,
	"grid":         Grid,
	"rows":         Rows,
	"flow":         Flow,
	"swimlane":     Swimlane,
	"pipeline":     Pipeline,
	"branching":    Branching,
	"hierarchical": Branching,
}

// Place runs the named strategy. Unknown names run linear.
func Place(name string, nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	s, ok := strategies[name]
	if !ok {
		s = Linear
	}
	return s(nodes, edges, opts)
}

// Known reports whether name is a registered strategy.
func Known(name string) bool {
	_, ok := strategies[name]
	return ok
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dims resolves node dimensions through opts.Size with a fixed fallback.
func (o Options) dims(n descriptor.Node) (int, int) {
	if o.Size != nil {
		return o.Size(n)
	}
	return 260, 56
}

// =============================================================================
// Linear & Horizontal
// =============================================================================

// Linear places nodes in a single vertical column, each horizontally
// centred on the page. The gap between consecutive box edges is the
// configured minimum, so spacing tracks each node's actual height.
func Linear(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	pos := make(map[string]Point, len(nodes))
	y := opts.ContentTop
	for _, n := range nodes {
		w, h := opts.dims(n)
		pos[n.ID] = Point{X: (opts.Page.Width - w) / 2, Y: y}
		y += h + opts.Spacing.MinEdgeGap
	}
	return pos
}

// Horizontal places nodes in a single row, left to right, vertically
// centred on the row's tallest node, with the whole row centred on the page
// (clamped to the left content margin).
func Horizontal(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	pos := make(map[string]Point, len(nodes))
	opts.placeRow(pos, nodes, opts.ContentTop)
	return pos
}

// placeRow lays out one left-to-right row starting at top: nodes are packed
// with the horizontal gap, the row is page-centred (clamped to the left
// margin), and each node is vertically centred on the row's tallest box.
// Returns the row height (tallest node).
func (o Options) placeRow(pos map[string]Point, nodes []descriptor.Node, top int) int {
	if len(nodes) == 0 {
		return 0
	}

	maxH := 0
	totalW := 0
	for i, n := range nodes {
		w, h := o.dims(n)
		totalW += w
		if i > 0 {
			totalW += o.Spacing.HGap
		}
		if h > maxH {
			maxH = h
		}
	}

	x := (o.Page.Width - totalW) / 2
	if x < o.Page.ContentLeft {
		x = o.Page.ContentLeft
	}

	for _, n := range nodes {
		w, h := o.dims(n)
		pos[n.ID] = Point{X: x, Y: top + (maxH-h)/2}
		x += w + o.Spacing.HGap
	}
	return maxH
}
