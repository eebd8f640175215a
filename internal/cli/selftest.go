package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planarfaces/pkg/ids"
	pio "github.com/matzehuels/planarfaces/pkg/io"
	"github.com/matzehuels/planarfaces/pkg/planar"
	"github.com/matzehuels/planarfaces/pkg/planar/cycles"
)

// selftestCase is a reference input with the faces the legacy detector
// printed for it, one JSON object per face.
type selftestCase struct {
	name string
	doc  planar.Document
	want []string
}

var selftestCases = []selftestCase{
	{
		name: "diagonal quad",
		doc: planar.Document{
			Vertices: [][2]float64{{0, 0}, {2, 0}, {2, 3}, {0, 2}},
			Edges:    [][2]int{{0, 1}, {1, 2}, {0, 2}, {0, 3}, {2, 3}},
		},
		want: []string{
			`{"id":110,"vertices":[{"id":101,"x":0,"y":0},{"id":103,"x":2,"y":3},{"id":102,"x":2,"y":0}],"edges":[]}`,
			`{"id":111,"vertices":[{"id":104,"x":0,"y":2},{"id":101,"x":0,"y":0},{"id":103,"x":2,"y":3}],"edges":[]}`,
		},
	},
	{
		name: "ladder",
		doc: planar.Document{
			Vertices: [][2]float64{{10, 0}, {20, 0}, {30, 0}, {40, 0}, {40, 50}, {30, 50}, {20, 50}, {10, 50}},
			Edges:    [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}, {7, 0}, {1, 6}, {2, 5}},
		},
		want: []string{
			`{"id":119,"vertices":[{"id":101,"x":10,"y":0},{"id":108,"x":10,"y":50},{"id":107,"x":20,"y":50},{"id":106,"x":30,"y":50},{"id":105,"x":40,"y":50},{"id":104,"x":40,"y":0},{"id":103,"x":30,"y":0},{"id":102,"x":20,"y":0}],"edges":[]}`,
			`{"id":120,"vertices":[{"id":107,"x":20,"y":50},{"id":106,"x":30,"y":50},{"id":105,"x":40,"y":50},{"id":104,"x":40,"y":0},{"id":103,"x":30,"y":0},{"id":102,"x":20,"y":0}],"edges":[]}`,
			`{"id":121,"vertices":[{"id":106,"x":30,"y":50},{"id":105,"x":40,"y":50},{"id":104,"x":40,"y":0},{"id":103,"x":30,"y":0}],"edges":[]}`,
		},
	},
}

// selftestCommand creates the selftest command.
func (c *CLI) selftestCommand() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check detection against the reference outputs",
		Long: `Run the legacy detector on the built-in reference graphs and compare every
face, handles included, with the recorded output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, tc := range selftestCases {
				got, err := runSelftestCase(tc)
				if err != nil {
					printError("%s: %v", tc.name, err)
					failed++
					continue
				}
				if diff := diffFaces(tc.want, got); diff != "" {
					printError("%s", tc.name)
					printDetail("%s", diff)
					failed++
					continue
				}
				printSuccess("%s (%d faces)", tc.name, len(got))
				if show {
					for _, line := range got {
						fmt.Fprintln(c.stdout, line)
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("selftest: %d of %d cases failed", failed, len(selftestCases))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the detected faces")
	return cmd
}

// runSelftestCase detects the faces of tc with handles numbered from the
// process-wide allocator's base, as the legacy detector did.
func runSelftestCase(tc selftestCase) ([]string, error) {
	alloc := ids.Default()
	alloc.Reset()

	g, err := planar.New(tc.doc, planar.WithAllocator(alloc))
	if err != nil {
		return nil, err
	}
	if _, err := g.DetectFaces(planar.DetectOptions{Strategy: cycles.Legacy}); err != nil {
		return nil, err
	}

	var out []string
	err = g.EachFace(func(f planar.Face) error {
		data, err := pio.MarshalFace(g, f)
		if err != nil {
			return err
		}
		out = append(out, string(data))
		return nil
	})
	return out, err
}

func diffFaces(want, got []string) string {
	if len(want) != len(got) {
		return fmt.Sprintf("got %d faces, want %d", len(got), len(want))
	}
	var b strings.Builder
	for i := range want {
		if want[i] != got[i] {
			fmt.Fprintf(&b, "face %d:\n  got  %s\n  want %s\n", i, got[i], want[i])
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
