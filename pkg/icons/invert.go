package icons

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultThreshold is the mean-brightness cutoff (0–255 scale) below which
// an icon counts as dark and gets inverted.
const DefaultThreshold = 128

// MeanBrightness returns an icon's mean pixel brightness on a 0–255 scale,
// measured with ImageMagick. Alpha is flattened against white first so
// transparent regions don't skew the result.
func MeanBrightness(ctx context.Context, path string) (float64, error) {
	out, err := runConvert(ctx,
		path,
		"-background", "white",
		"-alpha", "remove",
		"-colorspace", "gray",
		"-format", "%[fx:mean*255]",
		"info:",
	)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ImageMagick output %q", strings.TrimSpace(string(out)))
	}
	return v, nil
}

// Invert writes a color-inverted copy of src to dst. Only the RGB channels
// are negated; the alpha channel is preserved.
func Invert(ctx context.Context, src, dst string) error {
	_, err := runConvert(ctx, src, "-channel", "RGB", "-negate", dst)
	return err
}

// LightVariantPath returns the default output path for an inverted icon:
// <name>-light.<ext> beside the source.
func LightVariantPath(src string) string {
	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(filepath.Base(src), ext)
	return filepath.Join(filepath.Dir(src), stem+"-light"+ext)
}

// runConvert shells out to ImageMagick's convert.
func runConvert(ctx context.Context, args ...string) ([]byte, error) {
	if _, err := exec.LookPath("convert"); err != nil {
		return nil, fmt.Errorf("icon inversion requires ImageMagick. Install with:\n  macOS:  brew install imagemagick\n  Linux:  apt install imagemagick")
	}

	cmd := exec.CommandContext(ctx, "convert", args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("convert: %v: %s", err, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}
