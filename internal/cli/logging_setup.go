package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/logging"
)

// Command annotations read during setup.
const (
	// annotationConfigOptional lets a command run when the configuration
	// cannot be loaded (config init, config validate).
	annotationConfigOptional = "fleetkpi/config-optional"
	// annotationOwnsTerminal sends logs to a file unless --debug is set.
	annotationOwnsTerminal = "fleetkpi/owns-terminal"
)

// loadConfig resolves the layered configuration and stores it as the global
// configuration for this invocation. --data-dir is applied last.
func loadConfig(cmd *cobra.Command) error {
	explicit, _ := cmd.Flags().GetString(flagConfig)
	projectFlag, _ := cmd.Flags().GetString(flagProjectDir)

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, wd)
	config.SetResolvedProjectDir(projectDir)

	cfg, err := config.Load(explicit, projectDir)
	if err != nil {
		if cmd.Annotations[annotationConfigOptional] == "" {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = config.Default()
		config.ApplyEnv(cfg)
	}

	if dir, _ := cmd.Flags().GetString(flagDataDir); dir != "" {
		cfg.Data.Dir = dir
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool(flagDebug)
	switch {
	case debug:
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	case cmd.Annotations[annotationOwnsTerminal] != "" && loggingCfg.File == "":
		if path, err := config.DefaultLogFile(); err == nil {
			loggingCfg.File = path
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")
	logging.SetDefault(result.Logger)

	if result.UsingFile && cmd.Annotations[annotationOwnsTerminal] == "" {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
