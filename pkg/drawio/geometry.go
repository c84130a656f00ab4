package drawio

import (
	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/layout"
	"github.com/matcluck/drawgen/pkg/style"
)

// groupLabelHeadroom is the extra vertical space reserved above a group's
// members for its label band.
const groupLabelHeadroom = 24

// Box is an axis-aligned rectangle with a top-left origin.
type Box struct {
	X int
	Y int
	W int
	H int
}

// GroupBox pairs a declared group with its derived bounding box.
type GroupBox struct {
	Group descriptor.Group
	Box   Box
}

// LaneBand pairs a lane with its derived background band.
type LaneBand struct {
	Lane descriptor.Lane
	Box  Box
}

// GroupBoxes derives each group's bounding box: the hull over member node
// boxes, expanded by the group padding, with label headroom above. Member
// IDs missing from the node set or position map are dropped from the hull;
// a group with no valid member at all is skipped entirely.
func GroupBoxes(d descriptor.Diagram, ctx *style.Context, pos map[string]layout.Point) []GroupBox {
	nodeMap := d.NodeMap()
	pad := ctx.Spacing().GroupPadding

	var out []GroupBox
	for _, g := range d.Groups {
		minX, minY := 0, 0
		maxX, maxY := 0, 0
		valid := 0
		for _, id := range g.Members {
			n, ok := nodeMap[id]
			if !ok {
				continue
			}
			p, ok := pos[id]
			if !ok {
				continue
			}
			w, h := ctx.Dimensions(n)
			if valid == 0 || p.X < minX {
				minX = p.X
			}
			if valid == 0 || p.Y < minY {
				minY = p.Y
			}
			if valid == 0 || p.X+w > maxX {
				maxX = p.X + w
			}
			if valid == 0 || p.Y+h > maxY {
				maxY = p.Y + h
			}
			valid++
		}
		if valid == 0 {
			continue
		}
		out = append(out, GroupBox{
			Group: g,
			Box: Box{
				X: minX - pad,
				Y: minY - pad - groupLabelHeadroom,
				W: (maxX - minX) + 2*pad,
				H: (maxY - minY) + 2*pad + groupLabelHeadroom,
			},
		})
	}
	return out
}

// LaneBands derives the swimlane background bands: one per effective lane,
// stacked top to bottom from contentTop in declared order, wide enough to
// cover the rightmost placed member plus padding.
func LaneBands(d descriptor.Diagram, ctx *style.Context, pos map[string]layout.Point, contentTop int) []LaneBand {
	lanes := layout.EffectiveLanes(d.Nodes, d.Lanes)
	opts := layout.Options{
		Page:    ctx.Page(),
		Spacing: ctx.Spacing(),
		Size:    ctx.Dimensions,
	}
	heights := layout.LaneHeights(d.Nodes, lanes, opts)

	pad := ctx.Spacing().SwimlanePadding
	left := ctx.Page().ContentLeft

	// Band width spans from the content margin past the rightmost box.
	maxX := left + ctx.Spacing().LaneLabelWidth
	nodeMap := d.NodeMap()
	for id, p := range pos {
		n, ok := nodeMap[id]
		if !ok {
			continue
		}
		w, _ := ctx.Dimensions(n)
		if p.X+w+pad > maxX {
			maxX = p.X + w + pad
		}
	}
	width := maxX - left + pad

	var bands []LaneBand
	y := contentTop
	for _, l := range lanes {
		h := heights[l.ID]
		bands = append(bands, LaneBand{
			Lane: l,
			Box:  Box{X: left, Y: y, W: width, H: h},
		})
		y += h
	}
	return bands
}
