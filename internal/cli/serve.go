package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/logging"
	"github.com/rshade/fleetkpi/internal/server"
)

// NewServeCmd creates the serve command, which exposes the dashboard over HTTP.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API over HTTP",
		Long: `Loads the datasets once and serves the dashboard over HTTP until interrupted.

Endpoints:
  GET /healthz
  GET /api/v1/options
  GET /api/v1/filters/default
  GET /api/v1/snapshot?<filters>
  GET /api/v1/charts
  GET /api/v1/charts/<name>.png?<filters>&width=&height=

Filters use the query parameter names manufacturer, mileage_min, mileage_max,
vehicle_manufacturer, cost_type, trip_type, from, to, income_from, income_to,
fuel_type, year and region.`,
		Example: `  # Serve on the configured address
  fleetkpi serve

  # Serve on another port
  fleetkpi serve --addr 127.0.0.1:9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")

	return cmd
}

func executeServe(cmd *cobra.Command, addr string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.GetGlobalConfig()
	serverCfg := cfg.Server
	if addr != "" {
		serverCfg.Addr = addr
	}

	d, loader, err := openDashboard(ctx)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	for _, name := range dataset.Names() {
		loadedAt, _ := loader.LoadedAt(name)
		log.Info().Ctx(ctx).
			Str("operation", "serve").
			Str("dataset", name.String()).
			Str("path", loader.Path(name)).
			Time("loaded_at", loadedAt).
			Msg("dataset ready")
	}

	cmd.Printf("Serving fleetkpi on %s\n", serverCfg.Addr)
	err = server.New(d, serverCfg, cfg.Output).Run(ctx)

	stats := loader.Stats()
	log.Info().Ctx(ctx).
		Str("operation", "serve").
		Int("cache_entries", stats.Entries).
		Int64("cache_hits", stats.Hits).
		Int64("cache_misses", stats.Misses).
		Msg("server stopped")
	return err
}
