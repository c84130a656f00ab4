package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matcluck/drawgen/pkg/pipeline"
	"github.com/matcluck/drawgen/pkg/renderer"
	"github.com/matcluck/drawgen/pkg/style"
)

// renderCommand creates the render command, which exports a .drawio file
// to PNG through the headless draw.io desktop CLI.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{
		Scale:  pipeline.DefaultScale,
		Border: pipeline.DefaultBorder,
	}

	cmd := &cobra.Command{
		Use:   "render [file.drawio]",
		Short: "Export a draw.io file to PNG",
		Long: `Export a draw.io file to PNG using the draw.io desktop CLI.

Requires the drawio binary on PATH; on headless machines xvfb-run is used
automatically when available. Results are cached locally so re-rendering
an unchanged document is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .png extension)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "export scale factor")
	cmd.Flags().IntVar(&opts.Border, "border", opts.Border, "border width in pixels around the diagram")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	if output == "" {
		output = renderer.DefaultOutputPath(input)
	}

	runner := c.newRunner(style.Default(), noCache)
	defer runner.Close()

	spin := newSpinner(ctx, "Rendering "+input)
	spin.Start()

	p := newProgress(logger)
	cached, err := runner.Render(ctx, input, output, opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()
	p.done("Rendered " + input)

	printSuccess("Rendered %s", input)
	printFile(output)
	printRenderStatus(cached)
	return nil
}
