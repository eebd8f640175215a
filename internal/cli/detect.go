package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/pipeline"
	"github.com/matzehuels/planarfaces/pkg/planar"
	"github.com/matzehuels/planarfaces/pkg/render"
)

// stdinName is the input name used for documents read from "-".
const stdinName = "stdin"

// detectFlags holds the flags shared by detect and render.
type detectFlags struct {
	strategy      string
	formats       string
	output        string
	noCache       bool
	refresh       bool
	parallelEdges bool
	jobs          int
	scale         float64
	hideFaces     bool
	handles       bool
}

func (f *detectFlags) registerDetection(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.strategy, "strategy", pipeline.DefaultStrategy, "DFS root selection: components or legacy")
	cmd.Flags().BoolVar(&f.parallelEdges, "parallel-edges", false, "accept several edges between the same vertices")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, or directory when writing several files")
}

func (f *detectFlags) registerDrawing(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "points per input unit in drawings (default 72)")
	cmd.Flags().BoolVar(&f.hideFaces, "hide-faces", false, "draw the graph without face highlighting")
	cmd.Flags().BoolVar(&f.handles, "handles", false, "label vertices with handles instead of indices")
}

// detectCommand creates the detect command.
func (c *CLI) detectCommand() *cobra.Command {
	var f detectFlags

	cmd := &cobra.Command{
		Use:   "detect [flags] <file>...",
		Short: "Detect the faces of graph documents",
		Long: `Detect the faces of one or more graph documents.

Each file holds {"vertices": [[x, y], ...], "edges": [[i, j], ...]}; use "-"
to read from stdin. With a single input and a single format the result is
written to stdout unless -o is given. Otherwise one file per input and format
is written next to the input, or into the -o directory.`,
		Example: `  planarfaces detect graph.json
  planarfaces detect --strategy legacy --format json,svg -o out/ a.json b.json
  cat graph.json | planarfaces detect -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &f)
			return c.runDetect(cmd.Context(), args, opts, f.output, f.noCache)
		},
	}

	f.registerDetection(cmd)
	f.registerDrawing(cmd)
	cmd.Flags().StringVarP(&f.formats, "format", "f", pipeline.DefaultFormat, "output formats: json, msgpack, dot, svg (comma-separated)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", pipeline.DefaultConcurrency, "files processed concurrently")

	return cmd
}

func (c *CLI) runDetect(ctx context.Context, paths []string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	inputs := make([]pipeline.Input, len(paths))
	for i, path := range paths {
		doc, name, err := readInput(path)
		if err != nil {
			return err
		}
		inputs[i] = pipeline.Input{Name: name, Doc: doc}
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	results, err := runner.ExecuteBatch(ctx, inputs, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Detected faces in %d file(s)", len(results)))

	formats := opts.FormatValues()
	if output == "" && len(inputs) == 1 && len(formats) == 1 {
		_, err := c.stdout.Write(results[0].Artifacts[string(formats[0])])
		return err
	}

	single := len(inputs) == 1 && len(formats) == 1
	if output != "" && !single {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	for i, res := range results {
		printSuccess("%s", inputs[i].Name)
		printStats(res.Stats.VertexCount, res.Stats.EdgeCount, res.Stats.FaceCount, res.CacheHit)
		for _, format := range formats {
			path := outputPath(inputs[i].Name, format, output, single)
			if err := os.WriteFile(path, res.Artifacts[string(format)], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printFile(path)
		}
	}
	return nil
}

// readInput loads a document from path, or from stdin when path is "-".
func readInput(path string) (doc planar.Document, name string, err error) {
	if path == "-" {
		doc, err = pio.ReadDocument(os.Stdin)
		if err != nil {
			return doc, "", fmt.Errorf("%s: %w", stdinName, err)
		}
		return doc, stdinName, nil
	}
	doc, err = pio.ImportDocument(path)
	return doc, path, err
}

// outputPath names the file written for one input and format. A single
// artifact with an explicit output goes exactly there; otherwise output is a
// directory, or the input's own directory when empty.
func outputPath(input string, format render.Format, output string, single bool) string {
	if output != "" && single {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := output
	if dir == "" {
		dir = filepath.Dir(input)
		if input == stdinName {
			dir = "."
		}
	}
	return filepath.Join(dir, base+format.Ext())
}
