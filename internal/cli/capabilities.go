package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planarfaces/pkg/planar"
)

// capabilitiesCommand creates the capabilities command.
func (c *CLI) capabilitiesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "List supported and unimplemented operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := planar.Capabilities()
			if asJSON {
				enc := json.NewEncoder(c.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(caps)
			}
			fmt.Fprintln(c.stdout, StyleTitle.Render("Capabilities"))
			for _, info := range caps {
				status := "unimplemented"
				if info.Supported {
					status = "supported"
				}
				printKeyValue(c.stdout, string(info.Name), status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
