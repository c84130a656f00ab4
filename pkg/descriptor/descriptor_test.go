package descriptor

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	d, err := Parse([]byte(`{"nodes": [{"id": "a"}]}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if d.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", d.Title, DefaultTitle)
	}
	if d.Layout != DefaultLayout {
		t.Errorf("Layout = %q, want %q", d.Layout, DefaultLayout)
	}
	if d.Theme != ThemeLight {
		t.Errorf("Theme = %q, want %q", d.Theme, ThemeLight)
	}
}

func TestParseKeepsExplicitValues(t *testing.T) {
	d, err := Parse([]byte(`{
		"title": "Deploy Flow",
		"subtitle": "v2",
		"layout": "grid",
		"theme": "dark",
		"nodes": [{"id": "a", "label": "A", "type": "start"}],
		"edges": [{"from": "a", "to": "b", "color": "green"}],
		"grid_columns": 4
	}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if d.Title != "Deploy Flow" || d.Subtitle != "v2" {
		t.Errorf("title/subtitle = %q/%q", d.Title, d.Subtitle)
	}
	if d.Layout != "grid" || d.Theme != ThemeDark {
		t.Errorf("layout/theme = %q/%q", d.Layout, d.Theme)
	}
	if d.GridColumns != 4 {
		t.Errorf("GridColumns = %d, want 4", d.GridColumns)
	}
	if len(d.Edges) != 1 || d.Edges[0].Color != "green" {
		t.Errorf("edges = %+v", d.Edges)
	}
}

func TestParseRejectsMissingNodes(t *testing.T) {
	_, err := Parse([]byte(`{"title": "No Nodes"}`))
	if err == nil {
		t.Fatal("descriptor without nodes should fail validation")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"nodes": [`))
	if err == nil {
		t.Fatal("malformed JSON should fail")
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{"nodes": [{"id": "a"}], "future_field": true}`))
	if err != nil {
		t.Errorf("unknown top-level fields should be ignored: %v", err)
	}
}

func TestDecode(t *testing.T) {
	d, err := Decode(strings.NewReader(`{"nodes": [{"id": "a"}, {"id": "b"}]}`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(d.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(d.Nodes))
	}
}

func TestStepUnmarshal(t *testing.T) {
	tests := []struct {
		json string
		want []string
	}{
		{`"n1"`, []string{"n1"}},
		{`["n2", "n3"]`, []string{"n2", "n3"}},
		{`[]`, []string{}},
	}

	for _, tt := range tests {
		var s Step
		if err := s.UnmarshalJSON([]byte(tt.json)); err != nil {
			t.Fatalf("UnmarshalJSON(%s) error: %v", tt.json, err)
		}
		if len(s) != len(tt.want) {
			t.Errorf("UnmarshalJSON(%s) = %v, want %v", tt.json, s, tt.want)
			continue
		}
		for i := range s {
			if s[i] != tt.want[i] {
				t.Errorf("UnmarshalJSON(%s)[%d] = %q, want %q", tt.json, i, s[i], tt.want[i])
			}
		}
	}
}

func TestStepMarshal(t *testing.T) {
	// Singleton steps round-trip as bare strings.
	data, err := Step{"n1"}.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	if string(data) != `"n1"` {
		t.Errorf("singleton step = %s, want %q", data, `"n1"`)
	}

	data, err = Step{"n2", "n3"}.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	if string(data) != `["n2","n3"]` {
		t.Errorf("stack step = %s", data)
	}
}

func TestRowKeyUnmarshal(t *testing.T) {
	tests := []struct {
		json string
		want RowKey
	}{
		{`"top"`, "top"},
		{`1`, "1"},
		{`2.5`, "2.5"},
	}

	for _, tt := range tests {
		var r RowKey
		if err := r.UnmarshalJSON([]byte(tt.json)); err != nil {
			t.Fatalf("UnmarshalJSON(%s) error: %v", tt.json, err)
		}
		if r != tt.want {
			t.Errorf("UnmarshalJSON(%s) = %q, want %q", tt.json, r, tt.want)
		}
	}
}

func TestNodeMapDuplicateIDs(t *testing.T) {
	d := Diagram{Nodes: []Node{
		{ID: "a", Label: "first"},
		{ID: "a", Label: "second"},
	}}

	// Later declaration wins.
	if got := d.NodeMap()["a"].Label; got != "second" {
		t.Errorf("NodeMap duplicate = %q, want %q", got, "second")
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "a", Label: "Step A"}).DisplayLabel(); got != "Step A" {
		t.Errorf("DisplayLabel = %q", got)
	}
	if got := (Node{ID: "a"}).DisplayLabel(); got != "a" {
		t.Errorf("DisplayLabel fallback = %q", got)
	}
}

func TestAutoRowKey(t *testing.T) {
	if got := (Node{Row: "top"}).AutoRowKey(3); got != "top" {
		t.Errorf("AutoRowKey with row = %q", got)
	}
	if got := (Node{}).AutoRowKey(3); got != "_auto_3" {
		t.Errorf("AutoRowKey synthetic = %q", got)
	}
}

func TestPipelineSteps(t *testing.T) {
	d, err := Parse([]byte(`{
		"nodes": [{"id": "n1"}, {"id": "n2"}, {"id": "n3"}, {"id": "n4"}],
		"layout": "pipeline",
		"pipeline": ["n1", ["n2", "n3"], "n4"]
	}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(d.Pipeline) != 3 {
		t.Fatalf("got %d steps, want 3", len(d.Pipeline))
	}
	if len(d.Pipeline[1]) != 2 {
		t.Errorf("step 1 = %v, want a 2-node stack", d.Pipeline[1])
	}
}
