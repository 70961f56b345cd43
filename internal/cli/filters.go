package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/rshade/fleetkpi/internal/dashboard"
)

// filterFlag maps a command-line flag onto a dashboard query parameter.
type filterFlag struct {
	name  string
	param string
	usage string
	list  bool
}

// filterFlags are shared by every command that builds a snapshot.
//
//nolint:gochecknoglobals // Read-only flag table.
var filterFlags = []filterFlag{
	{"manufacturer", dashboard.ParamManufacturer, "fuel-economy manufacturer for avoided emissions", false},
	{"mileage-min", dashboard.ParamMileageMin, "lower bound of the miles-per-gallon window", false},
	{"mileage-max", dashboard.ParamMileageMax, "upper bound of the miles-per-gallon window", false},
	{"vehicle-manufacturer", dashboard.ParamVehicleManufacturer,
		"vehicle manufacturer for cost savings (empty for all)", false},
	{"cost-type", dashboard.ParamCostType, "cost type for cost savings: fuel or electric", false},
	{"trip-type", dashboard.ParamTripType, "trip type for profitability", false},
	{"from", dashboard.ParamFrom, "first pickup day for profitability (YYYY-MM-DD)", false},
	{"to", dashboard.ParamTo, "last pickup day for profitability (YYYY-MM-DD)", false},
	{"income-from", dashboard.ParamIncomeFrom, "first pickup day for income per passenger (YYYY-MM-DD)", false},
	{"income-to", dashboard.ParamIncomeTo, "last pickup day for income per passenger (YYYY-MM-DD)", false},
	{"fuel-type", dashboard.ParamFuelType, "fuel types for the average cost chart (repeat the flag, or one comma separated value)", true},
	{"year", dashboard.ParamYear, "year for the PM2.5 map", false},
	{"region", dashboard.ParamRegion, "regions for the PM2.5 map (repeat the flag, or one comma separated value)", true},
}

// addFilterFlags registers the dashboard filter flags on cmd.
func addFilterFlags(cmd *cobra.Command) {
	for _, f := range filterFlags {
		if f.list {
			cmd.Flags().StringArray(f.name, nil, f.usage)
			continue
		}
		cmd.Flags().String(f.name, "", f.usage)
	}
}

// filterQuery converts the filter flags the user set into query values for
// dashboard.Filters.ApplyQuery. Flags left at their default are omitted so
// the dashboard defaults apply.
func filterQuery(cmd *cobra.Command) url.Values {
	values := url.Values{}
	for _, f := range filterFlags {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil || !flag.Changed {
			continue
		}
		if f.list {
			list, _ := cmd.Flags().GetStringArray(f.name)
			values[f.param] = list
			continue
		}
		values.Set(f.param, flag.Value.String())
	}
	return values
}
