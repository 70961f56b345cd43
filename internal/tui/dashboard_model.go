package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/logging"
)

// Default dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 120
	defaultHeight = 40
)

// Builder computes dashboard snapshots. *dashboard.Dashboard implements it.
type Builder interface {
	Build(ctx context.Context, f dashboard.Filters) (*dashboard.Snapshot, error)
}

// snapshotMsg carries the result of one build. seq identifies the filter
// state it was computed for.
type snapshotMsg struct {
	seq      int
	snapshot *dashboard.Snapshot
	err      error
}

// DashboardModel is the Bubble Tea model of the KPI dashboard. Every filter
// change triggers a full rebuild.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DashboardModel struct {
	ctx     context.Context
	builder Builder

	controls controls
	defaults dashboard.Filters
	filters  dashboard.Filters
	focus    field
	// cursor is the highlighted item of each multi-select field.
	cursor [fieldCount]int

	snapshot *dashboard.Snapshot
	seq      int
	building bool
	// filterErr is a rejected filter combination; the last snapshot stays visible.
	filterErr error

	state   ViewState
	err     error
	loading *LoadingState

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewDashboardModel returns a dashboard model starting from defaults.
func NewDashboardModel(
	ctx context.Context,
	builder Builder,
	opts dashboard.Options,
	defaults dashboard.Filters,
) DashboardModel {
	return DashboardModel{
		ctx:      ctx,
		builder:  builder,
		controls: newControls(opts, defaults),
		defaults: defaults,
		filters:  defaults,
		seq:      1,
		building: true,
		state:    ViewStateLoading,
		loading:  NewLoadingState("Computing KPIs..."),
		keys:     newKeyMap(),
		help:     help.New(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Init starts the first build.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Tick(), m.buildCmd())
}

// Filters returns the current filter selection.
func (m DashboardModel) Filters() dashboard.Filters {
	return m.filters
}

// Snapshot returns the most recent successful build, if any.
func (m DashboardModel) Snapshot() *dashboard.Snapshot {
	return m.snapshot
}

func (m DashboardModel) buildCmd() tea.Cmd {
	ctx, builder, filters, seq := m.ctx, m.builder, m.filters, m.seq
	return func() tea.Msg {
		snap, err := builder.Build(ctx, filters)
		return snapshotMsg{seq: seq, snapshot: snap, err: err}
	}
}

// rebuild schedules a build for the current filters.
func (m DashboardModel) rebuild() (tea.Model, tea.Cmd) {
	m.seq++
	m.building = true
	return m, m.buildCmd()
}

// Update handles messages and updates the model state.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		return m.handleSnapshot(msg)

	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		return m, m.loading.Update(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m DashboardModel) handleSnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	m.building = false

	if msg.err != nil {
		if errors.Is(msg.err, dashboard.ErrInvalidFilter) && m.snapshot != nil {
			m.filterErr = msg.err
			return m, nil
		}
		logging.FromContext(m.ctx).Error().Ctx(m.ctx).
			Str("operation", "build").
			Err(msg.err).
			Msg("dashboard build failed")
		m.err = msg.err
		m.state = ViewStateError
		return m, nil
	}

	m.snapshot = msg.snapshot
	m.filterErr = nil
	m.state = ViewStateList
	return m, nil
}

func (m DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	if m.state != ViewStateList {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % fieldCount
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case key.Matches(msg, m.keys.Left):
		return m.move(-1)
	case key.Matches(msg, m.keys.Right):
		return m.move(1)
	case key.Matches(msg, m.keys.Toggle):
		if m.controls.toggle(&m.filters, m.focus, m.cursor[m.focus]) {
			return m.rebuild()
		}
	case key.Matches(msg, m.keys.Reset):
		m.filters = m.defaults
		m.cursor = [fieldCount]int{}
		return m.rebuild()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// move handles left/right: it moves the item cursor of multi-select fields
// and changes the value of every other field.
func (m DashboardModel) move(delta int) (tea.Model, tea.Cmd) {
	if m.focus.multi() {
		n := len(m.controls.items(m.focus))
		if n > 0 {
			m.cursor[m.focus] = ((m.cursor[m.focus]+delta)%n + n) % n
		}
		return m, nil
	}
	if m.controls.adjust(&m.filters, m.focus, delta) {
		return m.rebuild()
	}
	return m, nil
}
