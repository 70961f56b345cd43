package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/logging"
	"github.com/rshade/fleetkpi/internal/tui"
)

// openDashboard loads every dataset named by the resolved configuration and
// returns a dashboard over the loaded tables.
func openDashboard(ctx context.Context) (*dashboard.Dashboard, *dataset.Loader, error) {
	cfg := config.GetGlobalConfig()
	loader := dataset.NewLoaderFromConfig(cfg)
	if err := loader.LoadAll(ctx); err != nil {
		return nil, nil, fmt.Errorf("loading datasets from %s: %w", cfg.Data.Dir, err)
	}
	return dashboard.New(loader, cfg.KPI), loader, nil
}

// buildSnapshot computes one snapshot from the default filters overridden by
// the filter flags the user set on cmd.
func buildSnapshot(cmd *cobra.Command) (*dashboard.Snapshot, error) {
	ctx := cmd.Context()

	d, _, err := openDashboard(ctx)
	if err != nil {
		return nil, err
	}
	filters, err := d.DefaultFilters(ctx)
	if err != nil {
		return nil, err
	}
	if err = filters.ApplyQuery(filterQuery(cmd)); err != nil {
		return nil, err
	}
	return d.Build(ctx, filters)
}

// NewDashboardCmd creates the interactive dashboard command. When stdout is
// not a terminal the snapshot is printed as a table instead.
func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive KPI dashboard",
		Long: `Opens a terminal dashboard with the KPI gauges, trends and breakdowns.

Tab and shift+tab move between filters, left and right change the focused
filter, r resets every filter and q quits. Filter flags set the starting
selection. Logs go to ~/.fleetkpi/logs/fleetkpi.log unless --debug is set.`,
		Example: `  # Open the dashboard on the default filters
  fleetkpi dashboard

  # Start on a different manufacturer and PM2.5 year
  fleetkpi dashboard --manufacturer Ford --year 2021`,
		Annotations: map[string]string{annotationOwnsTerminal: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeDashboard(cmd)
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func executeDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if !isTerminal(os.Stdout) {
		log.Debug().Ctx(ctx).Str("operation", "dashboard").Msg("stdout is not a terminal, printing table")
		snap, err := buildSnapshot(cmd)
		if err != nil {
			return err
		}
		return dashboard.RenderTable(cmd.OutOrStdout(), snap)
	}

	d, _, err := openDashboard(ctx)
	if err != nil {
		return err
	}
	opts, err := d.Options(ctx)
	if err != nil {
		return err
	}
	start := dashboard.DefaultFilters(opts, d.KPIConfig())
	if err = start.ApplyQuery(filterQuery(cmd)); err != nil {
		return err
	}
	if err = start.Validate(); err != nil {
		return err
	}

	model := tui.NewDashboardModel(ctx, d, opts, start)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
