package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/greenops"
	"github.com/rshade/fleetkpi/internal/logging"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// File states shown by datasets list.
const (
	statusPresent = "present"
	statusMissing = "missing"
)

type datasetEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// NewDatasetsListCmd creates the datasets list command.
func NewDatasetsListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured dataset files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeDatasetsList(cmd, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

func executeDatasetsList(cmd *cobra.Command, output string) error {
	cfg := config.GetGlobalConfig()

	entries := make([]datasetEntry, 0, len(dataset.Names()))
	for _, n := range dataset.Names() {
		path := cfg.DatasetPath(n.String())
		status := statusPresent
		if _, err := os.Stat(path); err != nil {
			status = statusMissing
		}
		entries = append(entries, datasetEntry{
			Name:        n.String(),
			Path:        path,
			Status:      status,
			Description: n.Description(),
		})
	}

	switch output {
	case outputJSON:
		return writeJSON(cmd.OutOrStdout(), entries)
	case outputTable:
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabwriterPadding, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTATUS\tPATH\tDESCRIPTION")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Status, e.Path, e.Description)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

// NewDatasetsDescribeCmd creates the datasets describe command, which loads
// one dataset and prints summary statistics of its numeric columns.
func NewDatasetsDescribeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "describe NAME",
		Short: "Show row counts and column statistics for a dataset",
		Example: `  fleetkpi datasets describe trips
  fleetkpi datasets describe fuel --output json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"trips", "vehicles", "air", "fuel"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeDatasetsDescribe(cmd, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

type datasetDescription struct {
	Name    string                `json:"name"`
	Path    string                `json:"path"`
	Rows    int                   `json:"rows"`
	Columns []string              `json:"columns"`
	Stats   []dataset.ColumnStats `json:"stats"`
}

func executeDatasetsDescribe(cmd *cobra.Command, arg, output string) error {
	ctx := cmd.Context()

	name, err := dataset.ParseName(arg)
	if err != nil {
		return err
	}
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("unsupported output format: %s", output)
	}

	loader := dataset.NewLoaderFromConfig(config.GetGlobalConfig())
	t, err := loader.Load(ctx, name)
	if err != nil {
		return err
	}
	stats, err := dataset.Describe(t)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).Str("operation", "describe").Str("dataset", name.String()).Int("rows", t.Len()).
		Msg("dataset described")

	desc := datasetDescription{
		Name:    name.String(),
		Path:    loader.Path(name),
		Rows:    t.Len(),
		Columns: t.Columns,
		Stats:   stats,
	}
	if desc.Stats == nil {
		desc.Stats = []dataset.ColumnStats{}
	}
	if output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), desc)
	}
	return renderDescription(cmd.OutOrStdout(), desc)
}

func renderDescription(w io.Writer, d datasetDescription) error {
	fmt.Fprintf(w, "Dataset: %s (%s)\n", d.Name, d.Path)
	fmt.Fprintf(w, "Rows:    %s\n", greenops.FormatLarge(float64(d.Rows)))
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(d.Columns, ", "))
	if len(d.Stats) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', tabwriter.AlignRight)
	order := d.Stats[0].Order
	fmt.Fprintf(tw, "COLUMN\t%s\t\n", strings.ToUpper(strings.Join(order, "\t")))
	for _, cs := range d.Stats {
		cells := make([]string, 0, len(order))
		for _, label := range order {
			cells = append(cells, greenops.FormatFloat(cs.Stats[label], 2))
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", cs.Column, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

type sampleParams struct {
	out      string
	seed     uint64
	trips    int
	vehicles int
	fuel     int
}

// NewDatasetsSampleCmd creates the datasets sample command, which writes a
// deterministic synthetic copy of all four datasets.
func NewDatasetsSampleCmd() *cobra.Command {
	var params sampleParams
	defaults := dataset.DefaultSampleOptions()

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write synthetic Parquet datasets",
		Long: `Writes synthetic trips, vehicles, air-quality and fuel-economy datasets as
Parquet, using the file names from data.files. The output is deterministic for
a given seed.`,
		Example: `  # Sample data in the configured data directory
  fleetkpi datasets sample

  # A larger sample elsewhere
  fleetkpi datasets sample --out /tmp/fleet --trips 5000 --seed 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeDatasetsSample(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.out, "out", "", "Output directory (default data.dir)")
	cmd.Flags().Uint64Var(&params.seed, "seed", defaults.Seed, "Random seed")
	cmd.Flags().IntVar(&params.trips, "trips", defaults.Trips, "Number of trips")
	cmd.Flags().IntVar(&params.vehicles, "vehicles", defaults.Vehicles, "Number of vehicles")
	cmd.Flags().IntVar(&params.fuel, "fuel", defaults.Fuel, "Number of fuel-economy records")

	return cmd
}

// errSampleSize is returned for non-positive row counts.
var errSampleSize = errors.New("sample row counts must be positive")

func executeDatasetsSample(cmd *cobra.Command, params sampleParams) error {
	if params.trips <= 0 || params.vehicles <= 0 || params.fuel <= 0 {
		return errSampleSize
	}
	cfg := config.GetGlobalConfig()
	dir := params.out
	if dir == "" {
		dir = cfg.Data.Dir
	}

	files := make(map[dataset.Name]string, len(dataset.Names()))
	for _, n := range dataset.Names() {
		files[n] = cfg.Data.Files[n.String()]
	}

	opts := dataset.DefaultSampleOptions()
	opts.Seed = params.seed
	opts.Trips = params.trips
	opts.Vehicles = params.vehicles
	opts.Fuel = params.fuel

	written, err := dataset.WriteSamples(dir, files, opts)
	if err != nil {
		return err
	}
	for _, n := range dataset.Names() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", n, written[n])
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
