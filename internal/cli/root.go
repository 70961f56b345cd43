package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/fleetkpi/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Persistent flag names.
const (
	flagConfig     = "config"
	flagDebug      = "debug"
	flagDataDir    = "data-dir"
	flagProjectDir = "project-dir"
)

// NewRootCmd creates the root Cobra command for the fleetkpi CLI.
// It resolves configuration, wires up logging and tracing, and registers the
// dashboard, kpi, render, serve, datasets and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "fleetkpi",
		Short:         "Fleet KPI dashboard",
		Long:          "fleetkpi: profitability, emissions and cost KPIs for a taxi fleet, computed from Parquet datasets",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().String(flagConfig, "", "config file (default ~/.fleetkpi/config.yaml)")
	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(flagDataDir, "", "directory holding the dataset files (overrides data.dir)")
	cmd.PersistentFlags().String(flagProjectDir, "", "project directory holding a .fleetkpi overlay")

	cmd.AddCommand(
		NewDashboardCmd(), NewKPICmd(), NewRenderCmd(), NewServeCmd(),
		newDatasetsCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Create sample datasets and a configuration pointing at them
  fleetkpi datasets sample --out ./data
  fleetkpi config init

  # Open the interactive dashboard
  fleetkpi dashboard

  # Print the KPIs for one manufacturer as JSON
  fleetkpi kpi --manufacturer Toyota --output json

  # Export every chart as PNG
  fleetkpi render --out ./charts

  # Serve the dashboard API
  fleetkpi serve --addr :8080`

// newDatasetsCmd creates the datasets command group.
func newDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "datasets", Short: "Dataset inspection commands"}
	cmd.AddCommand(NewDatasetsListCmd(), NewDatasetsDescribeCmd(), NewDatasetsSampleCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}
