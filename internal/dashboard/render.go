package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rshade/fleetkpi/internal/greenops"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// RenderTable writes the snapshot as plain-text tables: the headline KPIs
// followed by one section per supporting breakdown.
func RenderTable(w io.Writer, s *Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "KPI\tVALUE\tGOAL\tGAUGE MAX\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---\t-----\t----\t---------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	for _, k := range s.KPIs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			k.Title, k.ValueLabel(), k.GoalLabel(), greenops.FormatFloat(k.GaugeMax, 0),
		); err != nil {
			return fmt.Errorf("writing kpi row: %w", err)
		}
	}

	sections := []func(*tabwriter.Writer, *Snapshot) error{
		renderCategorySection,
		renderCostSection,
		renderProfitabilitySection,
		renderIncomeSection,
		renderFuelTypeSection,
		renderPM25Section,
	}
	for _, section := range sections {
		if _, err := fmt.Fprintln(tw); err != nil {
			return err
		}
		if err := section(tw, s); err != nil {
			return fmt.Errorf("writing section: %w", err)
		}
	}

	return tw.Flush()
}

func renderCategorySection(tw *tabwriter.Writer, s *Snapshot) error {
	a := s.AvoidedEmissions
	if _, err := fmt.Fprintf(tw, "CATEGORY\tMEAN CO2\tTOTAL MPG\tRECORDS\n"); err != nil {
		return err
	}
	for _, c := range s.CategorySummary {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			c.Category, greenops.FormatCO2(c.MeanCO2), greenops.FormatFloat(c.TotalMPG, 1), c.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(tw, "manufacturer %s, mpg %s-%s\t%d matched\tmax %s\t\n",
		s.Filters.FuelManufacturer,
		greenops.FormatFloat(s.Filters.MileageMin, 0), greenops.FormatFloat(s.Filters.MileageMax, 0),
		a.Matched, greenops.FormatCO2(a.MaxCO2))
	return err
}

func renderCostSection(tw *tabwriter.Writer, s *Snapshot) error {
	c := s.CostSavings
	manufacturer := s.Filters.VehicleManufacturer
	if manufacturer == "" {
		manufacturer = "all"
	}
	if _, err := fmt.Fprintf(tw, "VEHICLES (%s, %s cost)\tMEAN TOTAL COST\tCOUNT\t\n",
		manufacturer, s.Filters.CostType); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "Conventional\t%s\t%d\t\n", greenops.FormatFloat(c.ConventionalMean, 2), c.ConventionalCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "Electric\t%s\t%d\t\n", greenops.FormatFloat(c.ElectricMean, 2), c.ElectricCount); err != nil {
		return err
	}
	_, err := fmt.Fprintf(tw, "Savings\t%s\t\t\n", greenops.FormatPercent(c.Percent))
	return err
}

func renderProfitabilitySection(tw *tabwriter.Writer, s *Snapshot) error {
	if _, err := fmt.Fprintf(tw, "DAY (%s, %s)\tPROFITABILITY\t\t\n", s.Filters.TripType, s.Filters.Profitability); err != nil {
		return err
	}
	for _, p := range s.ProfitabilityTrend {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t\t\n", p.Label, greenops.FormatFloat(p.Value, 2)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(tw, "%s trips\t\t\t\n", greenops.FormatNumber(int64(s.ProfitabilityTrips)))
	return err
}

func renderIncomeSection(tw *tabwriter.Writer, s *Snapshot) error {
	if _, err := fmt.Fprintf(tw, "PASSENGERS (%s)\tMEAN FARE\tTRIPS\t\n", s.Filters.Income); err != nil {
		return err
	}
	for _, g := range s.IncomePerPassenger {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t\n", strconv.Itoa(g.PassengerCount),
			greenops.FormatFloat(g.MeanFare, 2), greenops.FormatNumber(int64(g.Trips))); err != nil {
			return err
		}
	}
	return nil
}

func renderFuelTypeSection(tw *tabwriter.Writer, s *Snapshot) error {
	if _, err := fmt.Fprintf(tw, "FUEL TYPE\tMEAN TOTAL COST\tVEHICLES\t\n"); err != nil {
		return err
	}
	for _, g := range s.FuelTypeCosts {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t\n", g.FuelType, greenops.FormatFloat(g.MeanTotalCost, 2), g.Count); err != nil {
			return err
		}
	}
	return nil
}

func renderPM25Section(tw *tabwriter.Writer, s *Snapshot) error {
	if _, err := fmt.Fprintf(tw, "PM2.5 (%d)\tVALUE\tLAT\tLON\n", s.Filters.Year); err != nil {
		return err
	}
	for _, p := range s.PM25 {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\n",
			p.GeoPlaceName, greenops.FormatFloat(p.DataValue, 1), p.Latitude, p.Longitude); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the snapshot as indented JSON.
func RenderJSON(w io.Writer, s *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
