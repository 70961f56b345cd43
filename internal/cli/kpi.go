package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/logging"
	"github.com/rshade/fleetkpi/internal/report"
)

// Output formats of the kpi command.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputXLSX  = "xlsx"
)

// defaultReportPath is where --output xlsx writes when --out is not set.
const defaultReportPath = "fleetkpi.xlsx"

// kpiParams holds the parameters for the kpi command execution.
type kpiParams struct {
	output string
	out    string
}

// NewKPICmd creates the kpi command, which builds one snapshot and prints it.
//
// Registered flags:
//   - --output: table, json or xlsx (default from configuration)
//   - --out: report path used by --output xlsx
//   - the dashboard filter flags (see addFilterFlags)
func NewKPICmd() *cobra.Command {
	var params kpiParams

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Compute the dashboard KPIs once and print them",
		Long: `Computes every KPI and breakdown for one filter selection.

Filters not given on the command line take their dashboard defaults: the
first manufacturer, trip type and year, the full date range, every fuel type
and region, and the configured mileage window.`,
		Example: kpiExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeKPI(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", "",
		"Output format: table, json, or xlsx (default from configuration)")
	cmd.Flags().StringVar(&params.out, "out", defaultReportPath, "Report path for --output xlsx")
	addFilterFlags(cmd)

	return cmd
}

const kpiExample = `  # Default filters as a table
  fleetkpi kpi

  # Cost savings for one vehicle manufacturer as JSON
  fleetkpi kpi --vehicle-manufacturer Nissan --cost-type electric --output json

  # Profitability for January dispatch trips
  fleetkpi kpi --trip-type Dispatch --from 2024-01-01 --to 2024-01-31

  # PM2.5 map for two regions
  fleetkpi kpi --year 2021 --region "Chelsea - Clinton" --region "Upper West Side"

  # XLSX report
  fleetkpi kpi --output xlsx --out report.xlsx`

func executeKPI(cmd *cobra.Command, params kpiParams) error {
	ctx := cmd.Context()

	format := params.output
	if format == "" {
		format = config.GetGlobalConfig().Output.DefaultFormat
	}
	switch format {
	case outputTable, outputJSON, outputXLSX:
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).Str("operation", "kpi").Str("output", format).Msg("building snapshot")

	snap, err := buildSnapshot(cmd)
	if err != nil {
		return err
	}

	switch format {
	case outputJSON:
		return dashboard.RenderJSON(cmd.OutOrStdout(), snap)
	case outputXLSX:
		if err = report.SaveXLSX(params.out, snap); err != nil {
			return err
		}
		cmd.Printf("Report written to %s\n", params.out)
		return nil
	default:
		return dashboard.RenderTable(cmd.OutOrStdout(), snap)
	}
}
