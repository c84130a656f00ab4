package drawio

import (
	"testing"

	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/layout"
)

func TestGroupBoxesHull(t *testing.T) {
	ctx := lightContext()
	d := descriptor.Diagram{
		Nodes: []descriptor.Node{{ID: "a"}, {ID: "b"}},
		Groups: []descriptor.Group{
			{ID: "g1", Label: "Stage", Members: []string{"a", "b"}},
		},
	}
	pos := map[string]layout.Point{
		"a": {X: 100, Y: 200},
		"b": {X: 400, Y: 300},
	}

	boxes := GroupBoxes(d, ctx, pos)
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}

	pad := ctx.Spacing().GroupPadding
	box := boxes[0].Box

	// Hull spans a's top-left to b's bottom-right (260x56 boxes), padded,
	// with label headroom above.
	if box.X != 100-pad {
		t.Errorf("X = %d, want %d", box.X, 100-pad)
	}
	if box.Y != 200-pad-24 {
		t.Errorf("Y = %d, want %d", box.Y, 200-pad-24)
	}
	if wantW := (400 + 260 - 100) + 2*pad; box.W != wantW {
		t.Errorf("W = %d, want %d", box.W, wantW)
	}
	if wantH := (300 + 56 - 200) + 2*pad + 24; box.H != wantH {
		t.Errorf("H = %d, want %d", box.H, wantH)
	}
}

func TestGroupBoxesSingleMember(t *testing.T) {
	ctx := lightContext()
	d := descriptor.Diagram{
		Nodes:  []descriptor.Node{{ID: "a"}},
		Groups: []descriptor.Group{{ID: "g1", Members: []string{"a"}}},
	}
	pos := map[string]layout.Point{"a": {X: 100, Y: 100}}

	boxes := GroupBoxes(d, ctx, pos)
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}

	pad := ctx.Spacing().GroupPadding
	if got := boxes[0].Box.W; got != 260+2*pad {
		t.Errorf("single-member W = %d, want %d", got, 260+2*pad)
	}
}

func TestGroupBoxesSkipsInvalidMembers(t *testing.T) {
	ctx := lightContext()
	d := descriptor.Diagram{
		Nodes: []descriptor.Node{{ID: "a"}},
		Groups: []descriptor.Group{
			{ID: "mixed", Members: []string{"a", "ghost"}},
			{ID: "empty", Members: []string{"ghost"}},
		},
	}
	pos := map[string]layout.Point{"a": {X: 100, Y: 100}}

	boxes := GroupBoxes(d, ctx, pos)

	// The ghost member shrinks to nothing; the all-ghost group disappears.
	if len(boxes) != 1 || boxes[0].Group.ID != "mixed" {
		t.Fatalf("boxes = %+v, want only the mixed group", boxes)
	}
	pad := ctx.Spacing().GroupPadding
	if got := boxes[0].Box.W; got != 260+2*pad {
		t.Errorf("mixed W = %d, want hull over valid members only", got)
	}
}

func TestLaneBands(t *testing.T) {
	ctx := lightContext()
	d := descriptor.Diagram{
		Lanes: []descriptor.Lane{{ID: "top"}, {ID: "bottom"}},
		Nodes: []descriptor.Node{
			{ID: "a", Lane: "top"},
			{ID: "b", Lane: "bottom"},
		},
	}
	pos := map[string]layout.Point{
		"a": {X: 220, Y: 176},
		"b": {X: 220, Y: 340},
	}

	bands := LaneBands(d, ctx, pos, 100)
	if len(bands) != 2 {
		t.Fatalf("got %d bands, want 2", len(bands))
	}

	sp := ctx.Spacing()
	laneH := sp.SwimlaneHeader + 56 + 2*sp.SwimlanePadding

	if bands[0].Box.Y != 100 {
		t.Errorf("first band Y = %d, want contentTop", bands[0].Box.Y)
	}
	if bands[1].Box.Y != 100+laneH {
		t.Errorf("second band Y = %d, want %d", bands[1].Box.Y, 100+laneH)
	}
	if bands[0].Box.H != laneH || bands[1].Box.H != laneH {
		t.Errorf("band heights = %d/%d, want %d", bands[0].Box.H, bands[1].Box.H, laneH)
	}

	// Width spans from the content margin past the rightmost box plus
	// padding on both ends.
	left := ctx.Page().ContentLeft
	wantW := (220 + 260 + sp.SwimlanePadding) - left + sp.SwimlanePadding
	if bands[0].Box.W != wantW {
		t.Errorf("band W = %d, want %d", bands[0].Box.W, wantW)
	}
	if bands[0].Box.X != left {
		t.Errorf("band X = %d, want %d", bands[0].Box.X, left)
	}
}
