package layout

import "github.com/matcluck/drawgen/pkg/descriptor"

// defaultLaneID names the synthetic lane used when neither the descriptor
// nor any node declares one.
const defaultLaneID = "default"

// emptyLaneBodyHeight keeps a lane with no members visible.
const emptyLaneBodyHeight = 56

// EffectiveLanes returns the lane list a swimlane layout will use: the
// declared lanes, or lanes auto-derived from the distinct node lane IDs in
// first-occurrence order, or a single default lane.
func EffectiveLanes(nodes []descriptor.Node, declared []descriptor.Lane) []descriptor.Lane {
	if len(declared) > 0 {
		return declared
	}
	var lanes []descriptor.Lane
	seen := make(map[string]bool)
	for _, n := range nodes {
		id := n.Lane
		if id == "" {
			id = defaultLaneID
		}
		if !seen[id] {
			seen[id] = true
			lanes = append(lanes, descriptor.Lane{ID: id, Label: id})
		}
	}
	if len(lanes) == 0 {
		lanes = []descriptor.Lane{{ID: defaultLaneID, Label: defaultLaneID}}
	}
	return lanes
}

// LaneMembers partitions nodes over the given lanes, preserving declaration
// order within each lane. Nodes without a lane, or referencing an
// undeclared one, land in the first lane rather than being dropped.
func LaneMembers(nodes []descriptor.Node, lanes []descriptor.Lane) map[string][]descriptor.Node {
	known := make(map[string]bool, len(lanes))
	for _, l := range lanes {
		known[l.ID] = true
	}
	byLane := make(map[string][]descriptor.Node)
	for _, n := range nodes {
		id := n.Lane
		if id == "" || !known[id] {
			id = lanes[0].ID
		}
		byLane[id] = append(byLane[id], n)
	}
	return byLane
}

// LaneHeights computes each lane's band height: header + tallest member +
// twice the lane padding. The swimlane strategy and the lane-band geometry
// deriver must agree on these numbers, so both call here.
func LaneHeights(nodes []descriptor.Node, lanes []descriptor.Lane, opts Options) map[string]int {
	byLane := LaneMembers(nodes, lanes)
	heights := make(map[string]int, len(lanes))
	for _, l := range lanes {
		maxH := 0
		for _, n := range byLane[l.ID] {
			if _, h := opts.dims(n); h > maxH {
				maxH = h
			}
		}
		if maxH == 0 {
			maxH = emptyLaneBodyHeight
		}
		heights[l.ID] = opts.Spacing.SwimlaneHeader + maxH + 2*opts.Spacing.SwimlanePadding
	}
	return heights
}

// Swimlane partitions nodes into horizontal lanes stacked vertically. Each
// lane is sized to its tallest member plus header and padding; within a
// lane, nodes run left to right in declaration order past the lane label
// column, vertically centred in the lane body.
func Swimlane(nodes []descriptor.Node, edges []descriptor.Edge, opts Options) map[string]Point {
	lanes := EffectiveLanes(nodes, opts.Lanes)
	byLane := LaneMembers(nodes, lanes)
	heights := LaneHeights(nodes, lanes, opts)

	header := opts.Spacing.SwimlaneHeader
	pad := opts.Spacing.SwimlanePadding

	laneY := make(map[string]int, len(lanes))
	y := opts.ContentTop
	for _, l := range lanes {
		laneY[l.ID] = y
		y += heights[l.ID]
	}

	pos := make(map[string]Point, len(nodes))
	for _, l := range lanes {
		bodyH := heights[l.ID] - header - 2*pad
		x := opts.Page.ContentLeft + opts.Spacing.LaneLabelWidth
		for _, n := range byLane[l.ID] {
			w, h := opts.dims(n)
			pos[n.ID] = Point{
				X: x,
				Y: laneY[l.ID] + header + pad + (bodyH-h)/2,
			}
			x += w + opts.Spacing.HGap
		}
	}
	return pos
}
