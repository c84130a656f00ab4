package layout

import (
	"testing"

	"github.com/matcluck/drawgen/pkg/descriptor"
)

func TestPipelineStacks(t *testing.T) {
	opts := testOptions()
	opts.Steps = []descriptor.Step{{"n1"}, {"n2", "n3"}, {"n4"}}
	nodes := nodeList("n1", "n2", "n3", "n4")

	pos := Pipeline(nodes, nil, opts)

	// Steps advance left to right.
	if !(pos["n1"].X < pos["n2"].X && pos["n2"].X < pos["n4"].X) {
		t.Errorf("step X order: n1=%d n2=%d n4=%d", pos["n1"].X, pos["n2"].X, pos["n4"].X)
	}

	// Stack members share an X and are separated by the vertical gap.
	if pos["n2"].X != pos["n3"].X {
		t.Errorf("stack X: n2=%d n3=%d", pos["n2"].X, pos["n3"].X)
	}
	if got := pos["n3"].Y - pos["n2"].Y; got != 56+opts.Spacing.VGap {
		t.Errorf("stack gap = %d, want %d", got, 56+opts.Spacing.VGap)
	}

	// Single-node steps centre on the tallest step's midline. The stack is
	// 56+80+56 = 192 tall, so its midline is ContentTop + 96; a 56-high
	// node centred there starts at ContentTop + 96 - 28.
	wantY := opts.ContentTop + 96 - 28
	if pos["n1"].Y != wantY {
		t.Errorf("n1.Y = %d, want %d", pos["n1"].Y, wantY)
	}
	if pos["n4"].Y != wantY {
		t.Errorf("n4.Y = %d, want %d", pos["n4"].Y, wantY)
	}
}

func TestPipelineWithoutSteps(t *testing.T) {
	opts := testOptions()
	pos := Pipeline(nodeList("a", "b", "c"), nil, opts)

	// Every node becomes its own step, all on one line.
	if pos["a"].Y != pos["b"].Y || pos["b"].Y != pos["c"].Y {
		t.Errorf("Y = %d/%d/%d, want single line", pos["a"].Y, pos["b"].Y, pos["c"].Y)
	}
	if !(pos["a"].X < pos["b"].X && pos["b"].X < pos["c"].X) {
		t.Error("steps out of order")
	}
}

func TestPipelineShortSteps(t *testing.T) {
	opts := testOptions()
	opts.Size = func(descriptor.Node) (int, int) { return 80, 24 }
	opts.Steps = []descriptor.Step{{"a"}, {"b"}}

	pos := Pipeline(nodeList("a", "b"), nil, opts)

	// The tallest step sets the band height even when it is shorter than
	// the default box, so a 24-high step starts right at the content top
	// instead of being centred inside a 56-high band.
	if pos["a"].Y != opts.ContentTop {
		t.Errorf("a.Y = %d, want %d", pos["a"].Y, opts.ContentTop)
	}
	if pos["a"].Y != pos["b"].Y {
		t.Errorf("Y = %d/%d, want single line", pos["a"].Y, pos["b"].Y)
	}
}

func TestPipelineUnknownIDs(t *testing.T) {
	opts := testOptions()
	opts.Steps = []descriptor.Step{{"a"}, {"ghost"}, {"b"}}

	pos := Pipeline(nodeList("a", "b"), nil, opts)

	if _, ok := pos["ghost"]; ok {
		t.Error("unknown step member should not be placed")
	}
	if len(pos) != 2 {
		t.Errorf("placed %d nodes, want 2", len(pos))
	}
	// The empty step keeps its slot: a gap remains between a and b.
	if got := pos["b"].X - pos["a"].X; got != 260+2*opts.Spacing.HGap {
		t.Errorf("gap across empty step = %d, want %d", got, 260+2*opts.Spacing.HGap)
	}
}
