package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/dataset"
)

type stubSource struct{}

func (stubSource) Trips(context.Context) ([]dataset.Trip, error) {
	pickup := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	return []dataset.Trip{
		{PickupDatetime: pickup, DayOfWeek: "Monday", TripDistance: 50, TotalAmount: 100, PassengerCount: 1, Type: "Dispatch"},
		{
			PickupDatetime: pickup.AddDate(0, 0, 2), DayOfWeek: "Wednesday",
			TripDistance: 10, TotalAmount: 30, PassengerCount: 2, Type: "Street-hail",
		},
	}, nil
}

func (stubSource) Vehicles(context.Context) ([]dataset.Vehicle, error) {
	return []dataset.Vehicle{
		{Manufacturer: "Tesla", FuelType: "Electricity", FuelCost: 50, TotalCost: 400},
		{Manufacturer: "Tesla", FuelType: "Petrol", FuelCost: 200, TotalCost: 1000},
	}, nil
}

func (stubSource) Air(context.Context) ([]dataset.AirQuality, error) {
	return []dataset.AirQuality{
		{Year: 2021, GeoPlaceName: "Chelsea", DataValue: 6},
		{Year: 2021, GeoPlaceName: "Harlem", DataValue: 10},
	}, nil
}

func (stubSource) Fuel(context.Context) ([]dataset.FuelEconomy, error) {
	return []dataset.FuelEconomy{
		{Manufacturer: "A", CO2PerMile: -10, MilesPerGallon: 50},
		{Manufacturer: "A", CO2PerMile: 250, MilesPerGallon: 30},
		{Manufacturer: "B", CO2PerMile: 100, MilesPerGallon: 40},
	}, nil
}

type failingBuilder struct {
	err error
}

func (b failingBuilder) Build(context.Context, dashboard.Filters) (*dashboard.Snapshot, error) {
	return nil, b.err
}

func newTestModel(t *testing.T) DashboardModel {
	t.Helper()
	ctx := context.Background()
	d := dashboard.New(stubSource{}, config.DefaultKPIConfig())
	opts, err := d.Options(ctx)
	require.NoError(t, err)

	m := NewDashboardModel(ctx, d, opts, dashboard.DefaultFilters(opts, config.DefaultKPIConfig()))
	return run(t, m, m.Init())
}

// run executes cmd and feeds any snapshot results back into m.
func run(t *testing.T, m DashboardModel, cmd tea.Cmd) DashboardModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
	case snapshotMsg:
		updated, _ := m.Update(msg)
		m = updated.(DashboardModel)
	}
	return m
}

func press(t *testing.T, m DashboardModel, msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(DashboardModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewDashboardModel(t *testing.T) {
	ctx := context.Background()
	m := NewDashboardModel(ctx, failingBuilder{}, dashboard.Options{}, dashboard.Filters{})

	assert.Equal(t, ViewStateLoading, m.state)
	assert.True(t, m.building)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Computing KPIs")
}

func TestDashboardModel_InitialBuild(t *testing.T) {
	m := newTestModel(t)

	require.Equal(t, ViewStateList, m.state)
	require.NotNil(t, m.Snapshot())
	assert.False(t, m.building)
	assert.InDelta(t, 35.0, m.Snapshot().AvoidedEmissions.Percent, 1e-9)

	view := m.View()
	assert.Contains(t, view, "Fleet KPI dashboard")
	assert.Contains(t, view, "AVOIDED EMISSIONS")
	assert.Contains(t, view, "35.00%")
	assert.Contains(t, view, "FILTERS")
}

func TestDashboardModel_FocusNavigation(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, fieldFuelManufacturer, m.focus)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Equal(t, fieldMileageMin, m.focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldRegions, m.focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldFuelManufacturer, m.focus)
}

func TestDashboardModel_ChangeTriggersRebuild(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.True(t, m.building)
	assert.Equal(t, "B", m.Filters().FuelManufacturer)

	m = run(t, m, cmd)
	assert.False(t, m.building)
	assert.Equal(t, "B", m.Snapshot().Filters.FuelManufacturer)
	assert.Zero(t, m.Snapshot().AvoidedEmissions.Percent)
}

func TestDashboardModel_StaleSnapshotIgnored(t *testing.T) {
	m := newTestModel(t)
	first := m.Snapshot()

	m, staleCmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, freshCmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m = run(t, m, staleCmd)
	assert.Same(t, first, m.Snapshot())
	assert.True(t, m.building)

	m = run(t, m, freshCmd)
	assert.Equal(t, "A", m.Snapshot().Filters.FuelManufacturer)
	assert.NotSame(t, first, m.Snapshot())
}

func TestDashboardModel_Reset(t *testing.T) {
	m := newTestModel(t)
	m.focus = fieldCostType
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = run(t, m, cmd)
	require.Equal(t, "electric", string(m.Filters().CostType))

	m, cmd = press(t, m, runes("r"))
	require.NotNil(t, cmd)
	m = run(t, m, cmd)
	assert.Equal(t, m.defaults, m.Filters())
	assert.Equal(t, "fuel", string(m.Snapshot().Filters.CostType))
}

func TestDashboardModel_MultiSelect(t *testing.T) {
	m := newTestModel(t)
	m.focus = fieldRegions

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.cursor[fieldRegions])
	assert.Contains(t, m.View(), "[x] Harlem")

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	require.NotNil(t, cmd)
	m = run(t, m, cmd)
	assert.Equal(t, []string{"Chelsea"}, m.Filters().Regions)
	assert.Len(t, m.Snapshot().PM25, 1)
	assert.Contains(t, m.View(), "[ ] Harlem")
}

func TestDashboardModel_Quit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, ViewStateQuitting, m.state)
	assert.Empty(t, m.View())
}

func TestDashboardModel_BuildError(t *testing.T) {
	ctx := context.Background()
	m := NewDashboardModel(ctx, failingBuilder{err: errors.New("parquet: bad file")}, dashboard.Options{}, dashboard.Filters{})
	m = run(t, m, m.buildCmd())

	assert.Equal(t, ViewStateError, m.state)
	assert.Contains(t, m.View(), "parquet: bad file")
}

func TestDashboardModel_InvalidFilterKeepsSnapshot(t *testing.T) {
	m := newTestModel(t)
	snap := m.Snapshot()

	m.builder = failingBuilder{err: fmt.Errorf("%w: mileage", dashboard.ErrInvalidFilter)}
	m.focus = fieldMileageMax
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = run(t, m, cmd)

	assert.Equal(t, ViewStateList, m.state)
	assert.Same(t, snap, m.Snapshot())
	assert.Contains(t, m.View(), "invalid filter")
}

func TestDashboardModel_WindowSize(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	m = updated.(DashboardModel)

	assert.Nil(t, cmd)
	assert.Equal(t, 200, m.width)
	assert.Equal(t, 60, m.height)
}
