package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/pipeline"
)

// defaultStdinOutput is the output path used when the descriptor comes
// from stdin and no --output was given.
const defaultStdinOutput = "diagram.drawio"

// generateCommand creates the generate command, the main entry point of
// the tool: JSON descriptor in, positioned .drawio document out.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output     string
		configPath string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate [descriptor.json]",
		Short: "Generate a draw.io document from a JSON descriptor",
		Long: `Generate a positioned draw.io document from a JSON descriptor.

The descriptor lists nodes, edges, groups, and lanes; drawgen computes all
coordinates with the selected layout strategy and writes a .drawio file
that opens cleanly in app.diagrams.net or the desktop app.

Reads from stdin when no input file is given. Use --theme and --layout to
override the descriptor's own settings without editing it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateTheme(opts.Theme); err != nil {
				return err
			}
			if err := pipeline.ValidateLayout(opts.Layout); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runGenerate(cmd.Context(), input, output, configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .drawio extension)")
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "override the descriptor's layout strategy")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "override the descriptor's theme: light, dark")
	cmd.Flags().BoolVar(&opts.EmbedIcons, "embed", false, "inline file:// icon references as data URIs")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML style config overriding the built-in defaults")

	return cmd
}

// runGenerate decodes the descriptor, runs the pipeline, and writes the
// document next to the input (or to --output).
func (c *CLI) runGenerate(ctx context.Context, input, output, configPath string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	d, err := readDescriptor(input)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if output == "" {
		output = generateOutputPath(input)
	}

	runner := c.newRunner(cfg, true)
	defer runner.Close()

	p := newProgress(logger)
	if err := runner.GenerateToFile(ctx, d, opts, output); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Generated %s layout", effectiveLayout(d, opts)))

	printSuccess("Generated %s", d.Title)
	printFile(output)
	printStats(len(d.Nodes), len(d.Edges))
	printNextStep("Render it", "drawgen render "+output)
	return nil
}

// readDescriptor parses a descriptor from the given file, or stdin when
// the path is empty.
func readDescriptor(input string) (descriptor.Diagram, error) {
	if input == "" {
		return descriptor.Decode(os.Stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return descriptor.Diagram{}, err
	}
	defer f.Close()
	return descriptor.Decode(f)
}

// generateOutputPath derives the output path from the input file name.
func generateOutputPath(input string) string {
	if input == "" {
		return defaultStdinOutput
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".drawio"
}

// effectiveLayout reports the layout the pipeline will actually use.
func effectiveLayout(d descriptor.Diagram, opts pipeline.Options) string {
	if opts.Layout != "" {
		return opts.Layout
	}
	return d.Layout
}
