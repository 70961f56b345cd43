package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/config"
)

// errConfigExists is returned when init would overwrite a file without --force.
var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a directory with a .fleetkpi subdirectory, or --project-dir)
// it writes the project overlay and a .gitignore, unless --global is set.
// Otherwise it writes the global file, or the --config path when given.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project, creates $PROJECT/.fleetkpi/config.yaml with a .gitignore
for rendered output. Use --global to write ~/.fleetkpi/config.yaml instead.
--data-dir is stored as data.dir.`,
		Example: `  # Create configuration
  fleetkpi config init

  # Point the configuration at sample data
  fleetkpi config init --data-dir ./data

  # Create configuration, overwriting existing
  fleetkpi config init --force`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if dir, _ := cmd.Flags().GetString(flagDataDir); dir != "" {
				cfg.Data.Dir = dir
			}

			if explicit, _ := cmd.Flags().GetString(flagConfig); explicit != "" {
				return initConfigAt(cmd, cfg, explicit, force)
			}
			projectDir := config.GetResolvedProjectDir()
			if projectDir != "" && !global {
				return initProjectConfig(cmd, cfg, projectDir, force)
			}
			path, err := config.GlobalConfigPath()
			if err != nil {
				return err
			}
			return initConfigAt(cmd, cfg, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, cfg *config.Config, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := initConfigAt(cmd, cfg, configPath, force); err != nil {
		return err
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}
	if created {
		cmd.Printf("Created .gitignore for rendered output\n")
	}
	return nil
}

// initConfigAt writes cfg to path unless a file exists there and force is unset.
func initConfigAt(cmd *cobra.Command, cfg *config.Config, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}
