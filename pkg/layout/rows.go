package layout

import (
	"math"

	"github.com/matcluck/drawgen/pkg/descriptor"
)

// defaultGridColumns is used when the descriptor gives no column count.
const defaultGridColumns = 3

// Grid wraps nodes into a fixed number of columns. Columns evenly divide
// the content width and each node is centred within its column cell; row
// height follows the row's tallest node.
func Grid(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	columns := opts.GridColumns
	if columns <= 0 {
		columns = defaultGridColumns
	}

	pos := make(map[string]Point, len(nodes))
	colWidth := opts.Page.ContentWidth() / columns
	y := opts.ContentTop

	for start := 0; start < len(nodes); start += columns {
		end := start + columns
		if end > len(nodes) {
			end = len(nodes)
		}
		row := nodes[start:end]

		maxH := 0
		for _, n := range row {
			if _, h := opts.dims(n); h > maxH {
				maxH = h
			}
		}

		for col, n := range row {
			w, h := opts.dims(n)
			x := opts.Page.ContentLeft + col*colWidth + (colWidth-w)/2
			pos[n.ID] = Point{X: x, Y: y + (maxH-h)/2}
		}
		y += maxH + opts.Spacing.MinEdgeGap
	}
	return pos
}

// Rows groups nodes into explicit rows by their row key. First occurrence
// of a key defines row order; nodes without a key each form a singleton
// row. Within a row the placement matches Horizontal; rows stack
// vertically.
func Rows(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	var order []descriptor.RowKey
	byRow := make(map[descriptor.RowKey][]descriptor.Node)

	for i, n := range nodes {
		key := n.AutoRowKey(i)
		if _, seen := byRow[key]; !seen {
			order = append(order, key)
		}
		byRow[key] = append(byRow[key], n)
	}

	pos := make(map[string]Point, len(nodes))
	y := opts.ContentTop
	for _, key := range order {
		maxH := opts.placeRow(pos, byRow[key], y)
		y += maxH + opts.Spacing.MinEdgeGap
	}
	return pos
}

// Flow wraps nodes into rows automatically. The column count defaults to an
// approximation of a 16:9 aspect ratio, with a floor of two columns.
func Flow(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	count := len(nodes)
	cols := opts.FlowColumns
	if cols <= 0 {
		cols = flowColumns(count)
	}

	pos := make(map[string]Point, count)
	y := opts.ContentTop
	for start := 0; start < count; start += cols {
		end := start + cols
		if end > count {
			end = count
		}
		maxH := opts.placeRow(pos, nodes[start:end], y)
		y += maxH + opts.Spacing.MinEdgeGap
	}
	return pos
}

// flowColumns approximates a 16:9 canvas: cols = max(2, min(n, round(sqrt(n · 16/9)))).
func flowColumns(n int) int {
	cols := int(math.Round(math.Sqrt(float64(n) * 16.0 / 9.0)))
	if cols > n {
		cols = n
	}
	if cols < 2 {
		cols = 2
	}
	return cols
}
