package layout

import (
	"testing"

	"github.com/matcluck/drawgen/pkg/descriptor"
)

func TestEffectiveLanes(t *testing.T) {
	declared := []descriptor.Lane{{ID: "ops", Label: "Operations"}}

	// Declared lanes win.
	lanes := EffectiveLanes(nodeList("a"), declared)
	if len(lanes) != 1 || lanes[0].ID != "ops" {
		t.Errorf("declared lanes = %v", lanes)
	}

	// No declaration: derive from node lane IDs in first-occurrence order.
	nodes := []descriptor.Node{
		{ID: "a", Lane: "backend"},
		{ID: "b", Lane: "frontend"},
		{ID: "c", Lane: "backend"},
	}
	lanes = EffectiveLanes(nodes, nil)
	if len(lanes) != 2 || lanes[0].ID != "backend" || lanes[1].ID != "frontend" {
		t.Errorf("derived lanes = %v", lanes)
	}

	// Nothing anywhere: single default lane.
	lanes = EffectiveLanes(nodeList("a"), nil)
	if len(lanes) != 1 || lanes[0].ID != "default" {
		t.Errorf("default lanes = %v", lanes)
	}
}

func TestLaneMembersUnknownLane(t *testing.T) {
	lanes := []descriptor.Lane{{ID: "ops"}, {ID: "dev"}}
	nodes := []descriptor.Node{
		{ID: "a", Lane: "dev"},
		{ID: "b", Lane: "nope"},
		{ID: "c"},
	}

	byLane := LaneMembers(nodes, lanes)

	// Unknown and empty lane IDs land in the first lane, nothing is dropped.
	if len(byLane["ops"]) != 2 {
		t.Errorf("ops members = %v", byLane["ops"])
	}
	if len(byLane["dev"]) != 1 || byLane["dev"][0].ID != "a" {
		t.Errorf("dev members = %v", byLane["dev"])
	}
}

func TestLaneHeights(t *testing.T) {
	opts := testOptions()
	lanes := []descriptor.Lane{{ID: "full"}, {ID: "empty"}}
	nodes := []descriptor.Node{{ID: "a", Lane: "full"}}

	heights := LaneHeights(nodes, lanes, opts)

	// header + tallest member + 2 * padding
	if want := 44 + 56 + 2*32; heights["full"] != want {
		t.Errorf("full lane = %d, want %d", heights["full"], want)
	}
	// Empty lanes keep a visible body.
	if want := 44 + 56 + 2*32; heights["empty"] != want {
		t.Errorf("empty lane = %d, want %d", heights["empty"], want)
	}
}

func TestSwimlanePlacement(t *testing.T) {
	opts := testOptions()
	opts.Lanes = []descriptor.Lane{{ID: "top"}, {ID: "bottom"}}
	nodes := []descriptor.Node{
		{ID: "a", Lane: "top"},
		{ID: "b", Lane: "top"},
		{ID: "c", Lane: "bottom"},
	}

	pos := Swimlane(nodes, nil, opts)

	// Nodes start past the lane label column.
	wantX := opts.Page.ContentLeft + opts.Spacing.LaneLabelWidth
	if pos["a"].X != wantX {
		t.Errorf("a.X = %d, want %d", pos["a"].X, wantX)
	}
	if pos["b"].X != wantX+260+60 {
		t.Errorf("b.X = %d, want %d", pos["b"].X, wantX+260+60)
	}

	// Second lane nodes sit an entire lane band lower.
	laneH := 44 + 56 + 2*32
	if got := pos["c"].Y - pos["a"].Y; got != laneH {
		t.Errorf("lane offset = %d, want %d", got, laneH)
	}

	// Vertical centring inside the lane body: body height equals the
	// single member height here, so the node sits right below header+pad.
	wantY := opts.ContentTop + 44 + 32
	if pos["a"].Y != wantY {
		t.Errorf("a.Y = %d, want %d", pos["a"].Y, wantY)
	}
}
