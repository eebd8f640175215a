package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planarfaces/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f detectFlags

	cmd := &cobra.Command{
		Use:   "render [flags] <file>",
		Short: "Draw a graph and its faces",
		Long: `Draw a graph document with every vertex at its coordinates and each
detected face highlighted in its own colour.

The format follows the -o extension (.svg or .dot) and defaults to SVG.`,
		Example: `  planarfaces render graph.json
  planarfaces render --strategy legacy --scale 20 -o faces.svg graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &f)
			opts.Formats = []string{string(drawingFormat(f.output))}
			output := f.output
			if output == "" {
				output = outputPath(args[0], render.Format(opts.Formats[0]), "", false)
			}
			return c.runDetect(cmd.Context(), args, opts, output, f.noCache)
		},
	}

	f.registerDetection(cmd)
	f.registerDrawing(cmd)

	return cmd
}

// drawingFormat picks DOT for .dot/.gv outputs and SVG otherwise.
func drawingFormat(output string) render.Format {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".dot", ".gv":
		return render.FormatDOT
	default:
		return render.FormatSVG
	}
}
