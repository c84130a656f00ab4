// Package drawio assembles placed diagram content into a draw.io XML
// document.
//
// The assembler is the last stage of the pipeline: it consumes the
// immutable descriptor, the resolved style context, and the position map
// computed by the layout engine, and emits the document elements in a fixed
// order (title, subtitle, lane bands, group boxes, nodes, edges) so that
// backgrounds render behind content. Output is deterministic: the same
// inputs produce byte-identical XML.
package drawio

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/layout"
	"github.com/matcluck/drawgen/pkg/style"
)

const (
	titleTop       = 20
	titleHeight    = 50
	subtitleHeight = 24

	// minContentTop keeps content off the page edge even without a title.
	minContentTop = 100

	// extentMargin pads the computed canvas extent.
	extentMargin  = 200
	minPageHeight = 800
)

var (
	fillColorPattern = regexp.MustCompile(`fillColor=(#[0-9A-Fa-f]{6})`)
	labelBGPattern   = regexp.MustCompile(`labelBackgroundColor=[^;]+;`)
)

// attrEscaper escapes text for use inside an XML attribute value.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// =============================================================================
// Title Area
// =============================================================================

// TitleAreaHeight returns the vertical space reserved for the title block:
// title and subtitle bands plus the bottom margin, or zero when neither is
// present.
func TitleAreaHeight(d descriptor.Diagram, spacing style.Spacing) int {
	h := 0
	if d.Title != "" {
		h += titleHeight
	}
	if d.Subtitle != "" {
		h += subtitleHeight
	}
	if h > 0 {
		h += spacing.TitleBottomMargin
	}
	return h
}

// ContentTop returns the Y coordinate where diagram content starts.
func ContentTop(d descriptor.Diagram, spacing style.Spacing) int {
	top := titleTop + TitleAreaHeight(d, spacing)
	if top < minContentTop {
		top = minContentTop
	}
	return top
}

// =============================================================================
// Document Assembly
// =============================================================================

// Options configures assembly.
type Options struct {
	// DiagramID overrides the derived diagram ID. Empty derives a stable ID
	// from the descriptor content.
	DiagramID string
}

// DiagramID derives a stable 8-character ID from the descriptor content, so
// repeated runs over the same input produce byte-identical documents.
func DiagramID(d descriptor.Diagram) string {
	raw, _ := json.Marshal(d)
	return uuid.NewSHA1(uuid.NameSpaceURL, raw).String()[:8]
}

// Assemble serializes the placed diagram into a complete .drawio document.
func Assemble(d descriptor.Diagram, ctx *style.Context, pos map[string]layout.Point, opts Options) string {
	id := opts.DiagramID
	if id == "" {
		id = DiagramID(d)
	}

	nodeMap := d.NodeMap()

	// Canvas extent from the placed node boxes.
	maxX, maxY := 0, 0
	for nid, p := range pos {
		n, ok := nodeMap[nid]
		if !ok {
			continue
		}
		w, h := ctx.Dimensions(n)
		if p.X+w > maxX {
			maxX = p.X + w
		}
		if p.Y+h > maxY {
			maxY = p.Y + h
		}
	}
	pageWidth := ctx.Page().Width
	if maxX+extentMargin > pageWidth {
		pageWidth = maxX + extentMargin
	}
	pageHeight := minPageHeight
	if maxY+extentMargin > pageHeight {
		pageHeight = maxY + extentMargin
	}

	bgAttr := ""
	if bg := ctx.Background(); bg != "" {
		bgAttr = fmt.Sprintf(` background="%s"`, bg)
	}

	var lines []string
	lines = append(lines,
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<mxfile host="app.diagrams.net" agent="drawgen">`,
		fmt.Sprintf(`<diagram name="Page-1" id="%s">`, id),
		`<mxGraphModel dx="800" dy="400" grid="1" gridSize="10" guides="1" tooltips="1"`,
		`  connect="1" arrows="1" fold="1" page="1" pageScale="1"`,
		fmt.Sprintf(`  pageWidth="%d" pageHeight="%d" math="0" shadow="0"%s>`, pageWidth, pageHeight, bgAttr),
		`<root>`,
		`<mxCell id="0" />`,
		`<mxCell id="1" parent="0" />`,
	)

	lines = appendTitle(lines, d, ctx)

	if d.Layout == "swimlane" {
		lines = appendLaneBands(lines, d, ctx, pos)
	}

	lines = appendGroups(lines, d, ctx, pos)
	lines = appendNodes(lines, d, ctx, pos)
	lines = appendEdges(lines, d, ctx)

	lines = append(lines,
		`</root>`,
		`</mxGraphModel>`,
		`</diagram>`,
		`</mxfile>`,
	)
	return strings.Join(lines, "\n")
}

// appendTitle emits the title and subtitle bands, subtitle immediately
// below the title.
func appendTitle(lines []string, d descriptor.Diagram, ctx *style.Context) []string {
	contentWidth := ctx.Page().ContentWidth()
	left := ctx.Page().ContentLeft
	y := titleTop

	if d.Title != "" {
		s, _ := ctx.Style("title")
		lines = append(lines, fmt.Sprintf(
			`<mxCell id="title" value="%s" style="%s" vertex="1" parent="1"><mxGeometry x="%d" y="%d" width="%d" height="%d" as="geometry"/></mxCell>`,
			escape(d.Title), s, left, y, contentWidth, titleHeight))
		y += titleHeight
	}
	if d.Subtitle != "" {
		s, _ := ctx.Style("subtitle")
		lines = append(lines, fmt.Sprintf(
			`<mxCell id="subtitle" value="%s" style="%s" vertex="1" parent="1"><mxGeometry x="%d" y="%d" width="%d" height="%d" as="geometry"/></mxCell>`,
			escape(d.Subtitle), s, left, y, contentWidth, subtitleHeight))
	}
	return lines
}

// appendLaneBands emits the swimlane background bands before groups and
// nodes so everything else renders on top of them.
func appendLaneBands(lines []string, d descriptor.Diagram, ctx *style.Context, pos map[string]layout.Point) []string {
	bands := LaneBands(d, ctx, pos, ContentTop(d, ctx.Spacing()))
	base, _ := ctx.Style("swimlane")

	for _, band := range bands {
		s := base
		if band.Lane.Color != "" {
			s += "strokeColor=" + band.Lane.Color + ";"
		}
		label := band.Lane.Label
		if label == "" {
			label = band.Lane.ID
		}
		lines = append(lines, fmt.Sprintf(
			`<mxCell id="lane_%s" value="%s" style="%s" vertex="1" parent="1"><mxGeometry x="%d" y="%d" width="%d" height="%d" as="geometry"/></mxCell>`,
			band.Lane.ID, escape(label), s, band.Box.X, band.Box.Y, band.Box.W, band.Box.H))
	}
	return lines
}

// appendGroups emits group boxes before nodes so nodes render on top.
func appendGroups(lines []string, d descriptor.Diagram, ctx *style.Context, pos map[string]layout.Point) []string {
	base, _ := ctx.Style("group")
	for _, gb := range GroupBoxes(d, ctx, pos) {
		s := base
		if gb.Group.Color != "" {
			s += "strokeColor=" + gb.Group.Color + ";"
		}
		lines = append(lines, fmt.Sprintf(
			`<mxCell id="%s" value="%s" style="%s" vertex="1" parent="1"><mxGeometry x="%d" y="%d" width="%d" height="%d" as="geometry"/></mxCell>`,
			gb.Group.ID, escape(gb.Group.Label), s, gb.Box.X, gb.Box.Y, gb.Box.W, gb.Box.H))
	}
	return lines
}

// appendNodes emits the node boxes in declaration order. Icon nodes get a
// label background matching what actually sits behind them, the group fill
// for group members and the page background otherwise, so icon labels
// don't carry a mismatched colored square.
func appendNodes(lines []string, d descriptor.Diagram, ctx *style.Context, pos map[string]layout.Point) []string {
	groupFill := groupFillColor(ctx)
	pageBG := ctx.Background()
	if pageBG == "" {
		pageBG = "#FFFFFF"
	}
	inGroup := make(map[string]bool)
	for _, g := range d.Groups {
		for _, m := range g.Members {
			inGroup[m] = true
		}
	}

	for _, n := range d.Nodes {
		s := ctx.NodeStyle(n)
		if n.Type == descriptor.TypeIcon {
			bg := pageBG
			if inGroup[n.ID] {
				bg = groupFill
			}
			s = labelBGPattern.ReplaceAllString(s, "labelBackgroundColor="+bg+";")
		}
		w, h := ctx.Dimensions(n)
		p, ok := pos[n.ID]
		if !ok {
			p = layout.Point{X: 100, Y: 100}
		}
		lines = append(lines, fmt.Sprintf(
			`<mxCell id="%s" value="%s" style="%s" vertex="1" parent="1"><mxGeometry x="%d" y="%d" width="%d" height="%d" as="geometry"/></mxCell>`,
			n.ID, nodeLabel(n, ctx.DetailTextColor()), s, p.X, p.Y, w, h))
	}
	return lines
}

// appendEdges emits every declared edge, including ones whose endpoints
// were never declared. Dangling references are a rendering concern, not an
// assembly failure.
func appendEdges(lines []string, d descriptor.Diagram, ctx *style.Context) []string {
	for i, e := range d.Edges {
		labelAttr := ""
		if e.Label != "" {
			labelAttr = fmt.Sprintf(` value="%s"`, escape(e.Label))
		}
		lines = append(lines, fmt.Sprintf(
			`<mxCell id="e%d"%s style="%s" edge="1" source="%s" target="%s" parent="1"><mxGeometry relative="1" as="geometry"/></mxCell>`,
			i, labelAttr, ctx.EdgeStyle(e), e.From, e.To))
	}
	return lines
}

// nodeLabel builds the node label, appending the detail subtext as a second
// rich-text line in the detail color when present.
func nodeLabel(n descriptor.Node, detailColor string) string {
	label := escape(n.DisplayLabel())
	if n.Detail != "" {
		label += fmt.Sprintf(
			"&lt;br&gt;&lt;font style=&#39;font-size:10px;color:%s&#39;&gt;%s&lt;/font&gt;",
			detailColor, escape(n.Detail))
	}
	return label
}

// groupFillColor extracts the fill from the group style for icon label
// backgrounds, with a theme-appropriate fallback.
func groupFillColor(ctx *style.Context) string {
	s, _ := ctx.Style("group")
	if m := fillColorPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if ctx.Theme() == descriptor.ThemeDark {
		return "#1E293B"
	}
	return "#F8FAFC"
}

// escape escapes text for embedding in an XML attribute value.
func escape(s string) string {
	return attrEscaper.Replace(s)
}
