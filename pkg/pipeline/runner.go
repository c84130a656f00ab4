package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matcluck/drawgen/pkg/cache"
	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/drawio"
	"github.com/matcluck/drawgen/pkg/icons"
	"github.com/matcluck/drawgen/pkg/layout"
	"github.com/matcluck/drawgen/pkg/renderer"
	"github.com/matcluck/drawgen/pkg/style"
)

// Runner executes the generate and render stages with a shared
// configuration, cache, and logger.
type Runner struct {
	cfg    *style.Config
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a runner. A nil cfg uses the embedded defaults, a nil
// cache disables caching, and a nil logger uses the process default.
func NewRunner(cfg *style.Config, c cache.Cache, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = style.Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cfg: cfg, cache: c, logger: logger}
}

// Close releases the runner's cache.
func (r *Runner) Close() error { return r.cache.Close() }

// Generate turns a decoded descriptor into a .drawio document. Overrides
// from opts apply before theme resolution, so a theme override swaps the
// whole style table consistently.
func (r *Runner) Generate(ctx context.Context, d descriptor.Diagram, opts Options) (string, error) {
	start := time.Now()

	if opts.Layout != "" {
		d.Layout = opts.Layout
	}
	if opts.Theme != "" {
		d.Theme = opts.Theme
	}

	sctx := style.Resolve(r.cfg, d.Theme)
	contentTop := drawio.ContentTop(d, sctx.Spacing())

	pos := layout.Place(d.Layout, d.Nodes, d.Edges, layout.Options{
		Page:        sctx.Page(),
		Spacing:     sctx.Spacing(),
		ContentTop:  contentTop,
		Size:        sctx.Dimensions,
		GridColumns: d.GridColumns,
		FlowColumns: d.FlowColumns,
		Lanes:       d.Lanes,
		Steps:       d.Pipeline,
	})

	doc := drawio.Assemble(d, sctx, pos, drawio.Options{})

	if opts.EmbedIcons {
		out, res := icons.EmbedRefs([]byte(doc))
		for _, missing := range res.Missing {
			r.logger.Warnf("icon not found, reference left as-is: %s", missing)
		}
		if len(res.Embedded) > 0 {
			r.logger.Debugf("embedded %d icon(s)", len(res.Embedded))
		}
		doc = string(out)
	}

	r.logger.Debugf("generated %d nodes, %d edges with %s layout (%s)",
		len(d.Nodes), len(d.Edges), d.Layout, time.Since(start).Round(time.Millisecond))
	return doc, nil
}

// Render rasterizes a .drawio file to PNG, reusing a cached result when the
// document and export parameters match a previous run. Returns whether the
// result came from cache.
func (r *Runner) Render(ctx context.Context, inputPath, outputPath string, opts Options) (bool, error) {
	opts = opts.withDefaults()

	doc, err := os.ReadFile(inputPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", inputPath, err)
	}

	key := cache.RenderKey(doc, opts.Scale, opts.Border)
	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		return true, os.WriteFile(outputPath, data, 0o644)
	}

	err = renderer.Render(ctx, inputPath, outputPath, renderer.Options{
		Scale:  opts.Scale,
		Border: opts.Border,
	})
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return false, fmt.Errorf("read rendered output %s: %w", outputPath, err)
	}
	if err := r.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.logger.Debugf("cache render result: %v", err)
	}
	return false, nil
}

// GenerateToFile runs Generate and writes the document to path, creating
// parent directories as needed.
func (r *Runner) GenerateToFile(ctx context.Context, d descriptor.Diagram, opts Options, path string) error {
	doc, err := r.Generate(ctx, d, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(doc), 0o644)
}
