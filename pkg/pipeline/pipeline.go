// Package pipeline wires the descriptor, style, layout, and assembly stages
// into a single runner shared by the CLI and the HTTP API. Centralizing the
// flow keeps option defaults and validation identical across entry points.
//
// The generation path is pure and stateless: one descriptor in, one
// document out, no I/O. The render path shells out to the draw.io desktop
// CLI and caches its results.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/layout"
	"github.com/matcluck/drawgen/pkg/renderer"
)

// Option defaults shared by CLI and API.
const (
	DefaultScale  = renderer.DefaultScale
	DefaultBorder = renderer.DefaultBorder
)

// ValidThemes is the set of recognized theme selectors.
var ValidThemes = map[string]bool{
	descriptor.ThemeLight: true,
	descriptor.ThemeDark:  true,
}

// Options carries per-invocation overrides and render parameters.
type Options struct {
	// Layout overrides the descriptor's layout strategy when non-empty.
	Layout string

	// Theme overrides the descriptor's theme when non-empty.
	Theme string

	// EmbedIcons inlines file:/// icon references into the generated
	// document.
	EmbedIcons bool

	// Render parameters.
	Scale  float64
	Border int
}

// withDefaults fills zero render parameters.
func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Border <= 0 {
		o.Border = DefaultBorder
	}
	return o
}

// ValidateTheme rejects an explicit unknown theme override. The empty
// string (no override) is valid. Unknown themes inside a descriptor
// degrade to light instead; this guard exists so a mistyped CLI flag
// surfaces rather than silently rendering the wrong theme.
func ValidateTheme(theme string) error {
	if theme == "" || ValidThemes[theme] {
		return nil
	}
	return fmt.Errorf("invalid theme %q (valid: light, dark)", theme)
}

// ValidateLayout rejects an explicit unknown layout override. Same logic
// as ValidateTheme: descriptor fields degrade, flags fail loudly.
func ValidateLayout(name string) error {
	if name == "" || layout.Known(name) {
		return nil
	}
	return fmt.Errorf("invalid layout %q (valid: %s)", name, strings.Join(layout.Names(), ", "))
}
