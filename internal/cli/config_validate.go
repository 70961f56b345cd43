package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/fleetkpi/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the resolved configuration (global file, project overlay and
environment) for syntax and semantic correctness.

This includes:
- schema_version compatibility
- a file name for every dataset
- output format and chart size
- KPI category thresholds, offsets and gauge targets
- the default mileage window`,
		Example: `  # Validate current configuration
  fleetkpi config validate

  # Validate and show detailed information
  fleetkpi config validate --verbose`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate reloads the configuration so load errors are reported
// here instead of being replaced by defaults.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	explicit, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := config.Load(explicit, config.GetResolvedProjectDir())
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if dir, _ := cmd.Flags().GetString(flagDataDir); dir != "" {
		cfg.Data.Dir = dir
	}

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Data directory: %s\n", cfg.Data.Dir)
	for _, name := range []string{config.DatasetTrips, config.DatasetVehicles, config.DatasetAir, config.DatasetFuel} {
		cmd.Printf("    %s: %s\n", name, cfg.DatasetPath(name))
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Chart size: %dx%d\n", cfg.Output.ChartWidth, cfg.Output.ChartHeight)
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	cmd.Printf("  Mileage window: %.0f-%.0f mpg\n", cfg.KPI.MileageMin, cfg.KPI.MileageMax)
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project overlay: %s\n", dir)
	}
}

// NewConfigShowCmd creates the config show command, which prints the
// resolved configuration.
func NewConfigShowCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Example: `  fleetkpi config show
  fleetkpi config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			switch output {
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("encoding YAML: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), cfg)
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml or json")
	return cmd
}
