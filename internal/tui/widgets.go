package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/fleetkpi/internal/greenops"
	"github.com/rshade/fleetkpi/internal/present"
)

// Widget layout.
const (
	minBarWidth    = 10
	barLabelWidth  = 14
	maxMapEntries  = 8
	sparkWeekLabel = 3
)

//nolint:gochecknoglobals // Sparkline glyphs, lowest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderGauge draws g as a horizontal progress bar with the value and goal.
func RenderGauge(g present.Gauge, width int) string {
	color := string(colorOK)
	if g.OverRange() {
		color = string(colorWarning)
	}
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(max(width, minBarWidth)),
		progress.WithoutPercentage(),
	)

	var b strings.Builder
	b.WriteString(bar.ViewAs(g.Fraction()))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("0 … %s", greenops.FormatFloat(g.Max, 0))))
	if g.Goal != "" {
		b.WriteString(LabelStyle.Render("   goal "))
		b.WriteString(ValueStyle.Render(g.Goal))
	}
	return b.String()
}

// RenderTrend draws the actual series as a sparkline over its day labels,
// followed by the goal.
func RenderTrend(t present.Trend) string {
	if t.Actual.Len() == 0 {
		return SubtleStyle.Render("no trend data")
	}

	var b strings.Builder
	b.WriteString(InfoStyle.Render(sparkline(t.Actual.Values)))
	b.WriteString("  ")
	labels := make([]string, len(t.Actual.Labels))
	for i, l := range t.Actual.Labels {
		labels[i] = abbreviate(l, sparkWeekLabel)
	}
	b.WriteString(LabelStyle.Render(strings.Join(labels, " ")))
	if t.Goal.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("goal "))
		b.WriteString(greenops.FormatFloat(t.Goal.Values[0], 2))
	}
	return b.String()
}

func sparkline(values []float64) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]rune, len(values))
	top := len(sparkBlocks) - 1
	for i, v := range values {
		idx := top / 2
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// RenderBars draws b as horizontal bars scaled to its largest value.
func RenderBars(b present.BarChart, width int) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(b.Title))
	sb.WriteString("\n")
	if len(b.Bars) == 0 {
		sb.WriteString(SubtleStyle.Render("no data"))
		return sb.String()
	}

	barWidth := max(width-barLabelWidth-12, minBarWidth)
	peak := b.MaxValue()
	for _, bar := range b.Bars {
		n := 0
		if peak > 0 && bar.Value > 0 {
			n = int(math.Round(bar.Value / peak * float64(barWidth)))
		}
		fmt.Fprintf(&sb, "%s %s %s\n",
			LabelStyle.Render(fmt.Sprintf("%-*s", barLabelWidth, abbreviate(bar.Label, barLabelWidth))),
			OKStyle.Render(strings.Repeat("█", n)),
			greenops.FormatFloat(bar.Value, 2))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderLine lists the points of l, one per line.
func RenderLine(l present.LineChart) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(l.Title))
	if l.Series.Len() == 0 {
		sb.WriteString("\n")
		sb.WriteString(SubtleStyle.Render("no data"))
		return sb.String()
	}
	for i, label := range l.Series.Labels {
		fmt.Fprintf(&sb, "\n%s %s",
			LabelStyle.Render(fmt.Sprintf("%-*s", barLabelWidth, label)),
			greenops.FormatCO2(l.Series.Values[i]))
	}
	return sb.String()
}

// RenderBubbleMap lists the strongest measurements of m, coloured by
// intensity.
func RenderBubbleMap(m present.BubbleMap) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(m.Title))
	if len(m.Bubbles) == 0 {
		sb.WriteString("\n")
		sb.WriteString(SubtleStyle.Render("no measurements"))
		return sb.String()
	}

	bubbles := append([]present.Bubble(nil), m.Bubbles...)
	sort.SliceStable(bubbles, func(i, j int) bool { return bubbles[i].Value > bubbles[j].Value })
	for i, bub := range bubbles {
		if i == maxMapEntries {
			fmt.Fprintf(&sb, "\n%s", SubtleStyle.Render(fmt.Sprintf("… %d more", len(bubbles)-maxMapEntries)))
			break
		}
		style := OKStyle
		switch {
		case bub.Intensity >= 0.75:
			style = CriticalStyle
		case bub.Intensity >= 0.4:
			style = WarningStyle
		}
		fmt.Fprintf(&sb, "\n%s %s %s",
			style.Render("●"),
			lipgloss.NewStyle().Width(barLabelWidth*2).Render(abbreviate(bub.Label, barLabelWidth*2)),
			greenops.FormatFloat(bub.Value, 1))
	}
	return sb.String()
}
