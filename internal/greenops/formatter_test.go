package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{123, "123"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
		{0, "0"},
		{-1234, "-1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{"round to integer", 18248.56, 0, "18,249"},
		{"one decimal place", 781.25, 1, "781.3"},
		{"two decimal places", 1234.5678, 2, "1,234.57"},
		{"small number", 0.5, 1, "0.5"},
		{"zero", 0.0, 2, "0.00"},
		{"negative with precision", -1234.56, 2, "-1,234.56"},
		{"negative below one", -0.25, 2, "-0.25"},
		{"negative rounds to zero", -0.001, 2, "0.00"},
		{"round up at boundary", 999.999, 2, "1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatPercentAndCO2(t *testing.T) {
	assert.Equal(t, "35.0%", FormatPercent(35))
	assert.Equal(t, "-12.5%", FormatPercent(-12.5))
	assert.Equal(t, "1,212.5 g/mi", FormatCO2(1212.46))
}

func TestFormatLarge(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{999999, "999,999"},
		{1000000, "~1.0 million"},
		{5200000, "~5.2 million"},
		{1000000000, "~1.0 billion"},
		{1500000000, "~1.5 billion"},
		{0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLarge(tt.n))
		})
	}
}

func BenchmarkFormatFloat(b *testing.B) {
	for b.Loop() {
		FormatFloat(1234.5678, 2)
	}
}
