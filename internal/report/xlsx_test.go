package report_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/dataset"
	"github.com/rshade/fleetkpi/internal/report"
)

func buildSnapshot(t *testing.T) *dashboard.Snapshot {
	t.Helper()
	ctx := context.Background()
	paths, err := dataset.WriteSamples(filepath.Join(t.TempDir(), "data"), nil, dataset.DefaultSampleOptions())
	require.NoError(t, err)

	d := dashboard.New(dataset.NewLoader(paths), config.DefaultKPIConfig())
	f, err := d.DefaultFilters(ctx)
	require.NoError(t, err)
	s, err := d.Build(ctx, f)
	require.NoError(t, err)
	return s
}

func TestWriteXLSX(t *testing.T) {
	s := buildSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, s))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{
		report.SheetKPIs, report.SheetCategories, report.SheetCosts, report.SheetProfitability,
		report.SheetIncome, report.SheetFuelTypes, report.SheetPM25, report.SheetFilters,
	}, f.GetSheetList())

	rows, err := f.GetRows(report.SheetKPIs)
	require.NoError(t, err)
	require.Len(t, rows, len(s.KPIs)+1)
	assert.Equal(t, "KPI", rows[0][0])
	assert.Equal(t, "Avoided emissions", rows[1][0])
	assert.Equal(t, "Profitability", rows[3][0])

	rows, err = f.GetRows(report.SheetIncome)
	require.NoError(t, err)
	assert.Len(t, rows, len(s.IncomePerPassenger)+1)

	rows, err = f.GetRows(report.SheetPM25)
	require.NoError(t, err)
	assert.Len(t, rows, len(s.PM25)+1)

	rows, err = f.GetRows(report.SheetFilters)
	require.NoError(t, err)
	assert.Equal(t, []string{"cost_type", "fuel"}, rows[5])
}

func TestSaveXLSX(t *testing.T) {
	s := buildSnapshot(t)
	path := filepath.Join(t.TempDir(), "reports", "kpi.xlsx")

	require.NoError(t, report.SaveXLSX(path, s))
	assert.FileExists(t, path)
}

func TestWriteXLSX_NilSnapshot(t *testing.T) {
	require.ErrorIs(t, report.WriteXLSX(&bytes.Buffer{}, nil), report.ErrNilSnapshot)
}
