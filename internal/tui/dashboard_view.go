package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/fleetkpi/internal/dashboard"
	"github.com/rshade/fleetkpi/internal/present"
)

// Layout.
const (
	filterPanelWidth = 36
	kpiCardMinWidth  = 28
	kpiCardCount     = 3
)

// View renders the current view (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateList:
		return m.renderDashboard()
	default:
		return ""
	}
}

func (m DashboardModel) renderDashboard() string {
	title := TitleStyle.Render("Fleet KPI dashboard")
	if m.building {
		title += " " + SubtleStyle.Render("updating…")
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderKPICards(),
		m.renderBreakdowns(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFilterPanel(), " ", main)

	sections := []string{title, body}
	if m.filterErr != nil {
		sections = append(sections, CriticalStyle.Render(m.filterErr.Error()))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderFilterPanel() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("FILTERS"))
	for f := range fieldCount {
		marker := "  "
		label := LabelStyle.Render(f.String())
		if f == m.focus {
			marker = FocusedStyle.Render("› ")
			label = FocusedStyle.Render(f.String())
		}
		fmt.Fprintf(&b, "\n%s%s: %s", marker, label, ValueStyle.Render(m.controls.value(m.filters, f)))
		if f == m.focus && f.multi() {
			b.WriteString(m.renderMultiItems(f))
		}
	}
	return BoxStyle.Width(filterPanelWidth).Render(b.String())
}

func (m DashboardModel) renderMultiItems(f field) string {
	var selected []string
	switch f {
	case fieldFuelTypes:
		selected = m.filters.FuelTypes
	case fieldRegions:
		selected = m.filters.Regions
	default:
		return ""
	}

	var b strings.Builder
	for i, item := range m.controls.items(f) {
		box := "[ ]"
		if slices.Contains(selected, item) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, item)
		if i == m.cursor[f] {
			line = FocusedStyle.Render(line)
		} else {
			line = LabelStyle.Render(line)
		}
		b.WriteString("\n    " + line)
	}
	return b.String()
}

func (m DashboardModel) cardWidth() int {
	avail := m.width - filterPanelWidth - 4*(kpiCardCount+1)
	return max(avail/kpiCardCount, kpiCardMinWidth)
}

func (m DashboardModel) renderKPICards() string {
	s := m.snapshot
	if s == nil {
		return ""
	}
	width := m.cardWidth()
	cards := []string{
		m.renderKPICard(s, dashboard.KPIAvoidedEmissions,
			dashboard.FigureAvoidedEmissionsGauge, dashboard.FigureAvoidedEmissionsTrend, width),
		m.renderKPICard(s, dashboard.KPICostSavings,
			dashboard.FigureCostSavingsGauge, dashboard.FigureCostSavingsTrend, width),
		m.renderKPICard(s, dashboard.KPIProfitability,
			dashboard.FigureProfitabilityGauge, dashboard.FigureProfitabilityTrend, width),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m DashboardModel) renderKPICard(s *dashboard.Snapshot, name, gaugeName, trendName string, width int) string {
	k, _ := s.KPI(name)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(strings.ToUpper(k.Title)))
	b.WriteString("\n")
	b.WriteString(ValueStyle.Render(k.ValueLabel()))
	b.WriteString("\n")
	if fig, ok := s.Figure(gaugeName); ok {
		if g, isGauge := fig.(present.Gauge); isGauge {
			b.WriteString(RenderGauge(g, width-2))
			b.WriteString("\n")
		}
	}
	if fig, ok := s.Figure(trendName); ok {
		if t, isTrend := fig.(present.Trend); isTrend {
			b.WriteString(RenderTrend(t))
		}
	}
	return BoxStyle.Width(width).Render(b.String())
}

func (m DashboardModel) renderBreakdowns() string {
	s := m.snapshot
	if s == nil {
		return ""
	}
	width := m.cardWidth()

	var left, right []string
	if fig, ok := s.Figure(dashboard.FigureCategoryEmissions); ok {
		if l, isLine := fig.(present.LineChart); isLine {
			left = append(left, RenderLine(l))
		}
	}
	for _, name := range []string{dashboard.FigureCostComparison, dashboard.FigureIncomePerPassenger} {
		if fig, ok := s.Figure(name); ok {
			if bc, isBar := fig.(present.BarChart); isBar {
				left = append(left, RenderBars(bc, width))
			}
		}
	}
	if fig, ok := s.Figure(dashboard.FigureFuelTypeCost); ok {
		if bc, isBar := fig.(present.BarChart); isBar {
			right = append(right, RenderBars(bc, width))
		}
	}
	if fig, ok := s.Figure(dashboard.FigurePM25Map); ok {
		if bm, isMap := fig.(present.BubbleMap); isMap {
			right = append(right, RenderBubbleMap(bm))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		BoxStyle.Width(width*2).Render(strings.Join(left, "\n\n")),
		BoxStyle.Width(width).Render(strings.Join(right, "\n\n")),
	)
}
