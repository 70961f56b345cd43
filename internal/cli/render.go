package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/chart"
	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/logging"
)

type renderParams struct {
	out    string
	width  int
	height int
}

// NewRenderCmd creates the render command, which writes every dashboard
// figure as a PNG file.
func NewRenderCmd() *cobra.Command {
	var params renderParams

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export every dashboard chart as PNG",
		Example: `  # Write the charts to the configured chart directory
  fleetkpi render

  # Larger charts for one trip type
  fleetkpi render --out ./charts --width 1600 --height 900 --trip-type Dispatch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeRender(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.out, "out", "", "Output directory (default output.chart_dir)")
	cmd.Flags().IntVar(&params.width, "width", 0, "Chart width in pixels (default output.chart_width)")
	cmd.Flags().IntVar(&params.height, "height", 0, "Chart height in pixels (default output.chart_height)")
	addFilterFlags(cmd)

	return cmd
}

func executeRender(cmd *cobra.Command, params renderParams) error {
	ctx := cmd.Context()
	out := config.GetGlobalConfig().Output

	dir := params.out
	if dir == "" {
		dir = out.ChartDir
	}
	size := chart.Size{Width: out.ChartWidth, Height: out.ChartHeight}
	if params.width != 0 {
		size.Width = params.width
	}
	if params.height != 0 {
		size.Height = params.height
	}
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", size.Width, size.Height)
	}

	snap, err := buildSnapshot(cmd)
	if err != nil {
		return err
	}

	paths, err := chart.RenderSnapshot(dir, snap, size)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).Str("operation", "render").Str("dir", dir).Int("count", len(paths)).Msg("charts written")

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
