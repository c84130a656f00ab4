// Package descriptor defines the JSON diagram description consumed by drawgen.
//
// A descriptor names WHAT appears in a diagram: nodes, edges, groups,
// swimlanes, and a layout strategy. Everything spatial (coordinates, sizing,
// spacing, colors) is decided downstream by the layout engine and document
// assembler; the descriptor is never mutated after decoding.
//
// # JSON Format
//
//	{
//	  "title": "Diagram Title",
//	  "subtitle": "Optional subtitle",
//	  "layout": "linear",
//	  "theme": "light",
//	  "nodes": [
//	    {"id": "a", "label": "Step A", "type": "start"},
//	    {"id": "b", "label": "Step B", "type": "process", "detail": "runs nightly"}
//	  ],
//	  "edges": [
//	    {"from": "a", "to": "b", "label": "ok", "style": "solid", "color": "green"}
//	  ],
//	  "groups": [
//	    {"id": "g1", "label": "Section", "members": ["a", "b"]}
//	  ],
//	  "lanes": [
//	    {"id": "ops", "label": "Operations"}
//	  ],
//	  "grid_columns": 3,
//	  "pipeline": ["a", ["b", "c"], "d"]
//	}
//
// Unknown top-level fields are ignored. Unknown enumerated values (node
// types, edge styles, colors, layout names) are not rejected here; they
// degrade to documented defaults at the style mapper and layout registry.
package descriptor

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Default values applied when optional descriptor fields are absent.
const (
	DefaultTitle  = "Diagram"
	DefaultLayout = "linear"
	DefaultTheme  = ThemeLight
)

// Theme selectors.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Node type names. The set is fixed; anything else renders as a process box.
const (
	TypeStart     = "start"
	TypeEnd       = "end"
	TypeProcess   = "process"
	TypeDecision  = "decision"
	TypeNote      = "note"
	TypeIcon      = "icon"
	TypeDarkPanel = "dark_panel"
	TypeSuccess   = "success"
	TypeDataStore = "data_store"
	TypeActor     = "actor"
	TypeJunction  = "junction"
	TypeCylinder  = "cylinder"
	TypeCloud     = "cloud"
)

// =============================================================================
// Diagram - Descriptor Root
// =============================================================================

// Diagram is the top-level descriptor. It is immutable input: decode once,
// then read everywhere.
type Diagram struct {
	Title    string  `json:"title,omitempty"`
	Subtitle string  `json:"subtitle,omitempty"`
	Layout   string  `json:"layout,omitempty"`
	Theme    string  `json:"theme,omitempty"`
	Nodes    []Node  `json:"nodes"`
	Edges    []Edge  `json:"edges,omitempty"`
	Groups   []Group `json:"groups,omitempty"`
	Lanes    []Lane  `json:"lanes,omitempty"`

	// Strategy-specific parameters.
	GridColumns int    `json:"grid_columns,omitempty"`
	FlowColumns int    `json:"flow_columns,omitempty"`
	Pipeline    []Step `json:"pipeline,omitempty"`
}

// Node is a single diagram element.
//
// IDs must be unique within a diagram. Duplicate IDs are not rejected;
// because the position map is keyed by ID, the later declaration wins
// deterministically.
type Node struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Type    string `json:"type,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Icon    string `json:"icon,omitempty"` // opaque reference, resolved externally
	Variant string `json:"variant,omitempty"`
	Lane    string `json:"lane,omitempty"`
	Row     RowKey `json:"row,omitempty"`
}

// Edge is a directed connection between two declared node IDs.
// An edge referencing an undeclared ID is dropped from layout graph
// construction but still emitted in the final document.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
	Style string `json:"style,omitempty"`
	Color string `json:"color,omitempty"`
}

// Group declares a labeled bounding box around member nodes.
type Group struct {
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	Members []string `json:"members,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// Lane declares a horizontal swimlane band. Lanes stack vertically in
// declared order; only the swimlane layout consumes them.
type Lane struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`
}

// =============================================================================
// Step - Pipeline Entry
// =============================================================================

// Step is one entry of the pipeline sequence: either a single node ID or a
// list of IDs forming a vertical stack. Both JSON shapes decode to a slice.
type Step []string

// UnmarshalJSON accepts either "id" or ["id1", "id2"].
func (s *Step) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		*s = ids
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*s = Step{id}
	return nil
}

// MarshalJSON emits single-element steps as a bare string for round-trip
// fidelity with hand-written descriptors.
func (s Step) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// =============================================================================
// RowKey - Free-Form Row Grouping Key
// =============================================================================

// RowKey is the grouping key for the rows layout. Descriptors in the wild
// use both strings ("top") and numbers (1), so both decode to a string key.
type RowKey string

// UnmarshalJSON accepts a JSON string or number.
func (r *RowKey) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RowKey(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = RowKey(n.String())
	return nil
}

// =============================================================================
// Decoding
// =============================================================================

// Decode reads a descriptor from r, validates its structure against the
// embedded JSON Schema, and applies defaults. It fails fast on malformed
// input; no layout work happens on a bad descriptor.
func Decode(r io.Reader) (Diagram, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Diagram{}, fmt.Errorf("read descriptor: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a descriptor from raw JSON bytes.
func Parse(raw []byte) (Diagram, error) {
	if err := ValidateSchema(raw); err != nil {
		return Diagram{}, err
	}

	var d Diagram
	if err := json.Unmarshal(raw, &d); err != nil {
		return Diagram{}, fmt.Errorf("invalid JSON: %w", err)
	}
	d.ApplyDefaults()
	return d, nil
}

// ApplyDefaults fills absent optional fields with their documented defaults.
func (d *Diagram) ApplyDefaults() {
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.Layout == "" {
		d.Layout = DefaultLayout
	}
	if d.Theme == "" {
		d.Theme = DefaultTheme
	}
}

// NodeMap returns a lookup from node ID to node. Later declarations win on
// duplicate IDs.
func (d *Diagram) NodeMap() map[string]Node {
	m := make(map[string]Node, len(d.Nodes))
	for _, n := range d.Nodes {
		m[n.ID] = n
	}
	return m
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// AutoRowKey returns the node's row key, or a synthetic singleton key based
// on the node's declaration index when no row is set.
func (n Node) AutoRowKey(index int) RowKey {
	if n.Row != "" {
		return n.Row
	}
	return RowKey("_auto_" + strconv.Itoa(index))
}
