package style

import (
	"regexp"

	"github.com/matcluck/drawgen/pkg/descriptor"
)

// strokeColorPattern matches an existing strokeColor attribute so a named
// edge color can replace it rather than append a duplicate.
var strokeColorPattern = regexp.MustCompile(`strokeColor=#[0-9A-Fa-f]+;`)

// edgeStyleKeys maps descriptor edge styles to style-table keys.
var edgeStyleKeys = map[string]string{
	"solid":         "edge_solid",
	"curved":        "edge_curved",
	"dashed":        "edge_dashed",
	"dotted":        "edge_dotted",
	"bidirectional": "edge_bidirectional",
}

// directTypes are node types with a 1:1 style-table mapping. Everything
// else (except "icon") renders as a process box parameterized by variant.
var directTypes = map[string]bool{
	descriptor.TypeStart:     true,
	descriptor.TypeEnd:       true,
	descriptor.TypeDecision:  true,
	descriptor.TypeNote:      true,
	descriptor.TypeDarkPanel: true,
	descriptor.TypeSuccess:   true,
	descriptor.TypeDataStore: true,
	descriptor.TypeActor:     true,
	descriptor.TypeJunction:  true,
	descriptor.TypeCylinder:  true,
	descriptor.TypeCloud:     true,
}

// fallbackIconBase is used when the configuration lacks an icon_base entry.
const fallbackIconBase = "shape=image;verticalLabelPosition=bottom;labelBackgroundColor=default;" +
	"verticalAlign=top;aspect=fixed;imageAspect=0;html=1;" +
	"fontSize=11;fontColor=#1E293B;fontFamily=Helvetica;"

// =============================================================================
// Context - Resolved Theme View
// =============================================================================

// Context is an immutable single-theme view over a Config. It is the only
// style source the layout engine and document assembler see; resolving the
// theme once up front guarantees the whole style table, edge color table,
// and detail text color swap together.
type Context struct {
	page    Page
	spacing Spacing
	cfg     *Config

	theme      string
	styles     map[string]string
	edgeColors map[string]string
	detailText string
	background string
}

// Resolve collapses cfg into a Context for the given theme. Any theme other
// than "dark" resolves to the light table; "dark" without a [dark] block in
// the configuration also resolves to light.
func Resolve(cfg *Config, theme string) *Context {
	ctx := &Context{
		page:       cfg.Page,
		spacing:    cfg.Spacing,
		cfg:        cfg,
		theme:      descriptor.ThemeLight,
		styles:     cfg.Styles,
		edgeColors: cfg.Colors.Edges,
		detailText: cfg.Colors.DetailText,
	}

	if theme == descriptor.ThemeDark && cfg.Dark != nil {
		dark := cfg.Dark
		ctx.theme = descriptor.ThemeDark
		ctx.background = dark.Background

		// Merge per key so a sparse user override still swaps consistently
		// against the embedded dark table.
		merged := make(map[string]string, len(cfg.Styles))
		for k, v := range cfg.Styles {
			merged[k] = v
		}
		for k, v := range dark.Styles {
			merged[k] = v
		}
		ctx.styles = merged

		if len(dark.Colors.Edges) > 0 {
			ctx.edgeColors = dark.Colors.Edges
		}
		if dark.Colors.DetailText != "" {
			ctx.detailText = dark.Colors.DetailText
		}
	}

	return ctx
}

// Theme returns the resolved theme name.
func (c *Context) Theme() string { return c.theme }

// Page returns the page geometry.
func (c *Context) Page() Page { return c.page }

// Spacing returns the spacing constants.
func (c *Context) Spacing() Spacing { return c.spacing }

// Background returns the document background color, or "" for the default
// white page.
func (c *Context) Background() string { return c.background }

// DetailTextColor returns the color used for node detail subtext.
func (c *Context) DetailTextColor() string { return c.detailText }

// Style returns the style string for a table key.
func (c *Context) Style(key string) (string, bool) {
	s, ok := c.styles[key]
	return s, ok
}

// =============================================================================
// Dimension & Style Mapper
// =============================================================================

// Dimensions resolves a node's rendered box size. Height grows by the
// configured delta when detail subtext is present.
func (c *Context) Dimensions(n descriptor.Node) (int, int) {
	w, h := c.cfg.NodeDimensions(n.Type)
	if n.Detail != "" {
		h += c.spacing.DetailExtraHeight
	}
	return w, h
}

// NodeStyle resolves a node's style string.
//
// Icon nodes get the image style parameterized by the icon reference.
// Recognized types map 1:1 to the table. Anything else is a process box
// whose variant selects the color, defaulting to primary.
func (c *Context) NodeStyle(n descriptor.Node) string {
	if n.Type == descriptor.TypeIcon {
		return c.IconStyle(n.Icon)
	}
	if directTypes[n.Type] {
		if s, ok := c.styles[n.Type]; ok {
			return s
		}
	}
	variant := n.Variant
	if variant == "" {
		variant = "primary"
	}
	if s, ok := c.styles["process_"+variant]; ok {
		return s
	}
	return c.styles["process_primary"]
}

// IconStyle returns the image style with the icon reference appended.
// The reference is opaque here; icon resolution happens externally.
func (c *Context) IconStyle(ref string) string {
	base, ok := c.styles["icon_base"]
	if !ok {
		base = fallbackIconBase
	}
	return base + "image=" + ref + ";"
}

// EdgeStyle resolves an edge's style string. Unrecognized line styles fall
// back to solid. A named color from the palette replaces the stroke color;
// unknown color names are ignored rather than treated as errors.
func (c *Context) EdgeStyle(e descriptor.Edge) string {
	key, ok := edgeStyleKeys[e.Style]
	if !ok {
		key = "edge_solid"
	}
	base := c.styles[key]

	if e.Color != "" {
		if hex, ok := c.edgeColors[e.Color]; ok {
			base = strokeColorPattern.ReplaceAllString(base, "")
			base += "strokeColor=" + hex + ";"
		}
	}
	return base
}
