// Package renderer rasterizes .drawio documents to PNG by invoking the
// draw.io desktop CLI. The core pipeline never depends on rendering
// success; this is a terminal collaborator step.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Defaults for the export invocation.
const (
	DefaultScale   = 2.0 // 2x resolution for crisp output
	DefaultBorder  = 20  // border padding in pixels
	DefaultTimeout = 60 * time.Second
)

// Options configures a render invocation.
type Options struct {
	Scale   float64
	Border  int
	Timeout time.Duration
}

// withDefaults fills zero values.
func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Border <= 0 {
		o.Border = DefaultBorder
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// DefaultOutputPath returns <input without extension>.png.
func DefaultOutputPath(input string) string {
	if i := strings.LastIndex(input, "."); i > strings.LastIndex(input, "/") {
		return input[:i] + ".png"
	}
	return input + ".png"
}

// Render exports input to a PNG at output. It requires the drawio desktop
// CLI on PATH, wraps it in xvfb-run when available (headless Linux), and
// fails with diagnostic text on a missing binary, timeout, or non-zero
// exit.
func Render(ctx context.Context, input, output string, opts Options) error {
	opts = opts.withDefaults()

	if _, err := exec.LookPath("drawio"); err != nil {
		return fmt.Errorf("'drawio' not found on PATH. Install options:\n  snap install drawio\n  OR download the AppImage from https://github.com/jgraph/drawio-desktop/releases")
	}

	_, xvfbErr := exec.LookPath("xvfb-run")
	args := buildCommand(input, output, xvfbErr == nil, opts)

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("drawio render timed out after %s", opts.Timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(errBuf.String())
		if msg != "" {
			return fmt.Errorf("drawio export failed: %v: %s", err, msg)
		}
		return fmt.Errorf("drawio export failed: %v", err)
	}
	return nil
}

// buildCommand assembles the export argv, prefixed with xvfb-run for
// headless environments.
func buildCommand(input, output string, xvfb bool, opts Options) []string {
	args := []string{
		"drawio",
		"--export",
		"--format", "png",
		"--scale", strconv.FormatFloat(opts.Scale, 'g', -1, 64),
		"--border", strconv.Itoa(opts.Border),
		"--output", output,
		input,
	}
	if xvfb {
		return append([]string{"xvfb-run", "-a"}, args...)
	}
	return args
}
