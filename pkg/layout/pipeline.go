package layout

import "github.com/matcluck/drawgen/pkg/descriptor"

// Pipeline lays out an explicit left-to-right step sequence. Each step is a
// single node or a vertical stack; step width is the widest member, step
// height the sum of member heights plus gaps. The tallest step fixes a
// common vertical midpoint and every step is centred on it. Without a step
// sequence, every node becomes its own step in declared order.
func Pipeline(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	steps := opts.Steps
	if len(steps) == 0 {
		steps = make([]descriptor.Step, len(nodes))
		for i, n := range nodes {
			steps[i] = descriptor.Step{n.ID}
		}
	}

	nodeMap := make(map[string]descriptor.Node, len(nodes))
	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	// Step bounding boxes. IDs not in the node set are dropped from the
	// step; a fully unknown step keeps its slot but collapses to zero width.
	type stepBox struct {
		members []descriptor.Node
		w, h    int
	}
	boxes := make([]stepBox, len(steps))
	for i, step := range steps {
		var b stepBox
		for _, id := range step {
			n, ok := nodeMap[id]
			if !ok {
				continue
			}
			w, h := opts.dims(n)
			if w > b.w {
				b.w = w
			}
			if len(b.members) > 0 {
				b.h += opts.Spacing.VGap
			}
			b.h += h
			b.members = append(b.members, n)
		}
		boxes[i] = b
	}

	maxTotalH := 0
	totalW := 0
	for i, b := range boxes {
		if b.h > maxTotalH {
			maxTotalH = b.h
		}
		totalW += b.w
		if i > 0 {
			totalW += opts.Spacing.HGap
		}
	}
	// Default band height only when no step contributed one; short steps
	// keep their own midline rather than being pushed down to a 56 band.
	if maxTotalH == 0 {
		maxTotalH = 56
	}
	midY := opts.ContentTop + maxTotalH/2

	x := (opts.Page.Width - totalW) / 2
	if x < opts.Page.ContentLeft {
		x = opts.Page.ContentLeft
	}

	pos := make(map[string]Point, len(nodes))
	for _, b := range boxes {
		if len(b.members) == 0 {
			x += b.w + opts.Spacing.HGap
			continue
		}
		y := midY - b.h/2
		for _, n := range b.members {
			w, h := opts.dims(n)
			pos[n.ID] = Point{X: x + (b.w-w)/2, Y: y}
			y += h + opts.Spacing.VGap
		}
		x += b.w + opts.Spacing.HGap
	}
	return pos
}
