package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matcluck/drawgen/pkg/descriptor"
)

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		theme   string
		wantErr bool
	}{
		{"", false}, // no override
		{"light", false},
		{"dark", false},
		{"sepia", true},
		{"Dark", true}, // case-sensitive
	}

	for _, tt := range tests {
		err := ValidateTheme(tt.theme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTheme(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
		}
	}
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		layout  string
		wantErr bool
	}{
		{"", false}, // no override
		{"linear", false},
		{"swimlane", false},
		{"hierarchical", false},
		{"spiral", true},
	}

	for _, tt := range tests {
		err := ValidateLayout(tt.layout)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLayout(%q) error = %v, wantErr %v", tt.layout, err, tt.wantErr)
		}
	}
}

func testDiagram() descriptor.Diagram {
	d := descriptor.Diagram{
		Title: "Service Map",
		Nodes: []descriptor.Node{
			{ID: "gw", Label: "Gateway", Type: "start"},
			{ID: "api", Label: "API"},
			{ID: "db", Label: "Postgres", Type: "cylinder"},
		},
		Edges: []descriptor.Edge{
			{From: "gw", To: "api"},
			{From: "api", To: "db", Style: "dashed"},
		},
	}
	d.ApplyDefaults()
	return d
}

func TestGenerate(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	doc, err := r.Generate(context.Background(), testDiagram(), Options{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for _, want := range []string{
		"<mxfile", `value="Service Map"`, `id="gw"`, `id="api"`, `id="db"`, "</mxfile>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Generate(ctx, testDiagram(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	again, err := r.Generate(ctx, testDiagram(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("identical descriptors should produce byte-identical documents")
	}
}

func TestGenerateOverrides(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()
	ctx := context.Background()

	// A theme override swaps the document background.
	doc, err := r.Generate(ctx, testDiagram(), Options{Theme: "dark"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, `background="`) {
		t.Error("dark override should set a page background")
	}

	// A layout override changes positions relative to the default.
	linear, _ := r.Generate(ctx, testDiagram(), Options{})
	horizontal, err := r.Generate(ctx, testDiagram(), Options{Layout: "horizontal"})
	if err != nil {
		t.Fatal(err)
	}
	if linear == horizontal {
		t.Error("layout override had no effect")
	}
}

func TestGenerateToFile(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	path := filepath.Join(t.TempDir(), "nested", "out.drawio")
	if err := r.GenerateToFile(context.Background(), testDiagram(), Options{}, path); err != nil {
		t.Fatalf("GenerateToFile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "<mxfile") {
		t.Error("output is not a draw.io document")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Scale != DefaultScale || o.Border != DefaultBorder {
		t.Errorf("defaults = %+v", o)
	}

	o = Options{Scale: 1.0, Border: 5}.withDefaults()
	if o.Scale != 1.0 || o.Border != 5 {
		t.Errorf("explicit values lost: %+v", o)
	}
}
