package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/planar"
)

// boundsCommand creates the bounds command.
func (c *CLI) boundsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "bounds [flags] <file>",
		Short: "Print the bounding box of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := readInput(args[0])
			if err != nil {
				return err
			}
			g, err := planar.New(doc, planar.WithParallelEdges())
			if err != nil {
				return err
			}
			return c.printBounds(g.Bounds(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func (c *CLI) printBounds(b planar.Bounds, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pio.NewBoundsRecord(b))
	}
	if b.Empty() {
		fmt.Fprintln(c.stdout, "empty graph")
		return nil
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	printKeyValue(c.stdout, "x", num(b.X.Min)+" .. "+num(b.X.Max))
	printKeyValue(c.stdout, "y", num(b.Y.Min)+" .. "+num(b.Y.Max))
	printKeyValue(c.stdout, "width", num(b.Width()))
	printKeyValue(c.stdout, "height", num(b.Height()))
	return nil
}
