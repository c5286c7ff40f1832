package cli

import (
	"github.com/spf13/cobra"
	"mihrab/internal/di"
	"mihrab/internal/structures"
)

var (
	flagConfigPath string
	flagDebug      bool
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder daemon",
		Long:  "Start the HTTP API, the reminder engine, and periodic persistence.\nBlocks until SIGINT or SIGTERM, then shuts down gracefully.",
		RunE:  runServe,
	}

	cmd.Flags().StringVarP(&flagConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")
	cmd.Flags().BoolVarP(&flagDebug, "debug", "d", false, "Mirror logs to the console")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: flagConfigPath,
		DebugMode:  flagDebug,
	})
	return err
}
