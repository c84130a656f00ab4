package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matcluck/drawgen/pkg/icons"
)

// =============================================================================
// embed-icons
// =============================================================================

// embedIconsCommand creates the embed-icons command. It rewrites file://
// icon references inside a .drawio document to self-contained data URIs.
func (c *CLI) embedIconsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "embed-icons [file.drawio]",
		Short: "Inline file:// icon references as data URIs",
		Long: `Inline file:// icon references as data URIs.

Turns a document that points at icons on the local filesystem into a
self-contained file that renders anywhere. References to files that do
not exist are left unchanged and reported.

Without --output the file is rewritten in place and a .bak copy of the
original is kept next to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEmbedIcons(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite in place with a .bak backup)")

	return cmd
}

func (c *CLI) runEmbedIcons(ctx context.Context, input, output string) error {
	logger := loggerFromContext(ctx)

	doc, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	total := icons.CountRefs(doc)
	if total == 0 {
		printInfo("No file:// icon references in %s", input)
		return nil
	}
	logger.Debugf("found %d icon reference(s)", total)

	out, result := icons.EmbedRefs(doc)

	inPlace := output == ""
	if inPlace {
		output = input
		if err := os.WriteFile(input+".bak", doc, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return err
	}

	printSuccess("Embedded %d of %d icon(s)", len(result.Embedded), total)
	printFile(output)
	if inPlace {
		printDetail("backup: %s.bak", input)
	}
	for _, missing := range result.Missing {
		printWarning("not found, left as reference: %s", missing)
	}
	return nil
}

// =============================================================================
// invert-icon
// =============================================================================

// invertIconCommand creates the invert-icon command, which produces a
// light variant of a dark icon for use on dark backgrounds.
func (c *CLI) invertIconCommand() *cobra.Command {
	var (
		output    string
		threshold float64
		force     bool
		check     bool
	)

	cmd := &cobra.Command{
		Use:   "invert-icon [icon.png]",
		Short: "Create a brightness-inverted icon variant for dark themes",
		Long: `Create a brightness-inverted icon variant for dark themes.

Measures the icon's mean brightness with ImageMagick and, when it is dark
enough to vanish on a dark background, writes an RGB-inverted copy with a
"-light" suffix. Icons already bright enough are skipped unless --force
is given. Use --check to only report the measurement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInvertIcon(cmd.Context(), args[0], output, threshold, force, check)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>-light.<ext>)")
	cmd.Flags().Float64Var(&threshold, "threshold", icons.DefaultThreshold, "mean brightness below which the icon is inverted (0-255)")
	cmd.Flags().BoolVar(&force, "force", false, "invert regardless of measured brightness")
	cmd.Flags().BoolVar(&check, "check", false, "only report the mean brightness, do not write anything")

	return cmd
}

func (c *CLI) runInvertIcon(ctx context.Context, input, output string, threshold float64, force, check bool) error {
	mean, err := icons.MeanBrightness(ctx, input)
	if err != nil {
		return err
	}

	dark := mean < threshold
	if check {
		verdict := "would keep as-is"
		if dark {
			verdict = "would invert"
		}
		printInfo("%s: mean brightness %.1f (threshold %.0f, %s)", input, mean, threshold, verdict)
		return nil
	}

	if !dark && !force {
		printInfo("Skipping %s: mean brightness %.1f is above threshold %.0f", input, mean, threshold)
		return nil
	}

	if output == "" {
		output = icons.LightVariantPath(input)
	}

	spin := newSpinner(ctx, "Inverting "+input)
	spin.Start()
	err = icons.Invert(ctx, input, output)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Invert failed: %v", err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Inverted %s (mean brightness %.1f)", input, mean))
	printFile(output)
	return nil
}
