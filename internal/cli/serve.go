package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/planarfaces/internal/config"
	"github.com/matzehuels/planarfaces/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

The result cache follows the config file; set cache.backend = "redis" to share
results between several instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			defaults := c.Config.PipelineOptions()
			if err := defaults.ValidateAndSetDefaults(); err != nil {
				return err
			}
			srv := server.New(runner, loggerFromContext(ctx), server.WithDefaults(defaults))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
