// Package style resolves diagram visual configuration: page geometry,
// spacing constants, per-type node dimensions, draw.io style strings, and
// edge color tables, with optional dark-theme overrides.
//
// The default configuration is embedded into the binary and can be replaced
// wholesale or partially from a TOML file. Theme resolution produces an
// immutable [Context] value that is threaded through layout and assembly;
// nothing in this package mutates shared state, so concurrent generation of
// independent diagrams is safe.
package style

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfigTOML []byte

// Fallback dimensions for node types absent from the dimensions table.
const (
	fallbackNodeWidth  = 260
	fallbackNodeHeight = 56
)

// =============================================================================
// Config - Raw Configuration
// =============================================================================

// Config is the decoded style configuration. It holds both the light table
// and the optional dark override block; use [Resolve] to collapse it into a
// single-theme Context.
type Config struct {
	Page       Page             `toml:"page"`
	Spacing    Spacing          `toml:"spacing"`
	Dimensions map[string][]int `toml:"dimensions"`
	Styles     map[string]string `toml:"styles"`
	Colors     Colors           `toml:"colors"`
	Dark       *Dark            `toml:"dark"`
}

// Page describes the logical page geometry.
type Page struct {
	Width        int `toml:"width"`
	ContentLeft  int `toml:"content_left"`
	ContentRight int `toml:"content_right"`
}

// ContentWidth returns the usable horizontal span between the margins.
func (p Page) ContentWidth() int { return p.ContentRight - p.ContentLeft }

// Spacing holds the layout spacing constants.
type Spacing struct {
	VGap              int `toml:"v_gap"`
	HGap              int `toml:"h_gap"`
	GroupPadding      int `toml:"group_padding"`
	MinEdgeGap        int `toml:"min_edge_gap"`
	TitleBottomMargin int `toml:"title_bottom_margin"`
	SwimlaneHeader    int `toml:"swimlane_header"`
	SwimlanePadding   int `toml:"swimlane_padding"`
	LaneLabelWidth    int `toml:"lane_label_width"`
	DetailExtraHeight int `toml:"detail_extra_height"`
}

// Colors holds the named color tables.
type Colors struct {
	DetailText string            `toml:"detail_text"`
	Edges      map[string]string `toml:"edges"`
}

// Dark is the dark-theme override block. Styles and edge colors override
// per key; keys absent here keep their light values.
type Dark struct {
	Background string `toml:"background"`
	Colors     Colors `toml:"colors"`
	Styles     map[string]string `toml:"styles"`
}

// =============================================================================
// Loading
// =============================================================================

// Default returns the embedded default configuration. Each call decodes a
// fresh copy so callers can adjust it without affecting others.
func Default() *Config {
	cfg, err := parse(defaultConfigTOML)
	if err != nil {
		// The embedded config ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("style: embedded default config: %v", err))
	}
	return cfg
}

// Load reads a configuration from a TOML file. Keys present in the file
// override the embedded defaults; everything else keeps its default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NodeDimensions looks up the configured (width, height) for a node type.
// Unknown types get the process dimensions, falling back to fixed defaults
// if even those are absent.
func (c *Config) NodeDimensions(nodeType string) (int, int) {
	if d, ok := c.Dimensions[nodeType]; ok && len(d) == 2 {
		return d[0], d[1]
	}
	if d, ok := c.Dimensions["process"]; ok && len(d) == 2 {
		return d[0], d[1]
	}
	return fallbackNodeWidth, fallbackNodeHeight
}
