package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/fleetkpi/internal/present"
)

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁█▁", sparkline([]float64{1, 5, 1}))
	assert.Equal(t, "▄▄", sparkline([]float64{2, 2}))
}

func TestRenderGauge(t *testing.T) {
	out := RenderGauge(present.Gauge{Title: "Cost savings", Value: 35, Max: 100, Goal: "20%"}, 30)
	assert.Contains(t, out, "goal")
	assert.Contains(t, out, "20%")
	assert.Contains(t, out, "100")
}

func TestRenderTrend(t *testing.T) {
	out := RenderTrend(present.Trend{Actual: present.DefaultTrend(), Goal: present.DefaultTrendGoal()})
	assert.Contains(t, out, "Mon Tue Wed")
	assert.Contains(t, out, "0.02")

	assert.Contains(t, RenderTrend(present.Trend{}), "no trend data")
}

func TestRenderBars(t *testing.T) {
	out := RenderBars(present.BarChart{
		Title: "Costs",
		Bars:  []present.Bar{{Label: "Conventional", Value: 1000}, {Label: "Electric", Value: 400}},
	}, 60)
	assert.Contains(t, out, "Conventional")
	assert.Contains(t, out, "1,000.00")

	assert.Contains(t, RenderBars(present.BarChart{Title: "Empty"}, 60), "no data")
}

func TestRenderBubbleMap(t *testing.T) {
	bubbles := make([]present.Bubble, 10)
	for i := range bubbles {
		bubbles[i] = present.Bubble{Label: "place", Value: float64(i), Intensity: float64(i) / 9}
	}
	out := RenderBubbleMap(present.BubbleMap{Title: "PM2.5", Bubbles: bubbles})
	assert.Contains(t, out, "2 more")
	assert.Contains(t, out, "9.0")

	assert.Contains(t, RenderBubbleMap(present.BubbleMap{}), "no measurements")
}
