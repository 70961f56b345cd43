// Package report exports dashboard snapshots as spreadsheets.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/fleetkpi/internal/dashboard"
)

// Sheet names, in workbook order.
const (
	SheetKPIs          = "KPIs"
	SheetCategories    = "Categories"
	SheetCosts         = "Costs"
	SheetProfitability = "Profitability"
	SheetIncome        = "Income"
	SheetFuelTypes     = "Fuel types"
	SheetPM25          = "PM2.5"
	SheetFilters       = "Filters"
)

const (
	defaultSheet = "Sheet1"
	colWidth     = 20
)

// ErrNilSnapshot is returned when there is nothing to export.
var ErrNilSnapshot = errors.New("report: nil snapshot")

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

// WriteXLSX writes s as an XLSX workbook with one sheet per breakdown.
func WriteXLSX(w io.Writer, s *dashboard.Snapshot) error {
	if s == nil {
		return ErrNilSnapshot
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, sh := range sheets(s) {
		if i == 0 {
			if err = f.SetSheetName(defaultSheet, sh.name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err = f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sh.name, err)
		}
		if err = writeSheet(f, sh, headerStyle); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err = f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes s to path, creating parent directories.
func SaveXLSX(path string, s *dashboard.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = WriteXLSX(out, s); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(sh.header), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(sh.header))
	if err != nil {
		return err
	}
	if err = f.SetColWidth(sh.name, "A", lastCol, colWidth); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return cellErr
		}
		if err = f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func sheets(s *dashboard.Snapshot) []sheet {
	kpis := sheet{name: SheetKPIs, header: []any{"KPI", "Value", "Unit", "Goal", "Gauge max"}}
	for _, k := range s.KPIs {
		kpis.rows = append(kpis.rows, []any{k.Title, k.Value, k.Unit, k.Goal, k.GaugeMax})
	}

	categories := sheet{name: SheetCategories, header: []any{"Category", "Mean CO2 (g/mi)", "Total mpg", "Records"}}
	for _, c := range s.CategorySummary {
		categories.rows = append(categories.rows, []any{string(c.Category), c.MeanCO2, c.TotalMPG, c.Count})
	}

	c := s.CostSavings
	costs := sheet{
		name:   SheetCosts,
		header: []any{"Vehicle type", "Mean total cost", "Vehicles"},
		rows: [][]any{
			{"Conventional", c.ConventionalMean, c.ConventionalCount},
			{"Electric", c.ElectricMean, c.ElectricCount},
		},
	}

	profit := sheet{name: SheetProfitability, header: []any{"Day", "Profitability", "Goal"}}
	for _, p := range s.ProfitabilityTrend {
		profit.rows = append(profit.rows, []any{p.Label, p.Value, s.Profitability})
	}

	income := sheet{name: SheetIncome, header: []any{"Passengers", "Mean fare", "Trips"}}
	for _, g := range s.IncomePerPassenger {
		income.rows = append(income.rows, []any{g.PassengerCount, g.MeanFare, g.Trips})
	}

	fuel := sheet{name: SheetFuelTypes, header: []any{"Fuel type", "Mean total cost", "Vehicles"}}
	for _, g := range s.FuelTypeCosts {
		fuel.rows = append(fuel.rows, []any{g.FuelType, g.MeanTotalCost, g.Count})
	}

	pm := sheet{name: SheetPM25, header: []any{"Place", "Year", "Latitude", "Longitude", "PM2.5"}}
	for _, p := range s.PM25 {
		pm.rows = append(pm.rows, []any{p.GeoPlaceName, p.Year, p.Latitude, p.Longitude, p.DataValue})
	}

	return []sheet{kpis, categories, costs, profit, income, fuel, pm, filterSheet(s.Filters)}
}

func filterSheet(f dashboard.Filters) sheet {
	sh := sheet{name: SheetFilters, header: []any{"Filter", "Value"}}
	q := f.Query()
	for _, key := range []string{
		dashboard.ParamManufacturer,
		dashboard.ParamMileageMin,
		dashboard.ParamMileageMax,
		dashboard.ParamVehicleManufacturer,
		dashboard.ParamCostType,
		dashboard.ParamTripType,
		dashboard.ParamFrom,
		dashboard.ParamTo,
		dashboard.ParamIncomeFrom,
		dashboard.ParamIncomeTo,
		dashboard.ParamFuelType,
		dashboard.ParamYear,
		dashboard.ParamRegion,
	} {
		values := slices.DeleteFunc(slices.Clone(q[key]), func(s string) bool { return s == "" })
		sh.rows = append(sh.rows, []any{key, strings.Join(values, ", ")})
	}
	return sh
}
