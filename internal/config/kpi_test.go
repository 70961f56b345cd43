package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fleetkpi/internal/config"
)

func TestDefaultKPIConfig(t *testing.T) {
	k := config.DefaultKPIConfig()

	assert.InDelta(t, 0.0, k.Categories.ElectricMaxCO2, 1e-9)
	assert.InDelta(t, 200.0, k.Categories.HybridMaxCO2, 1e-9)
	assert.InDelta(t, 120.0, k.Offsets.Electric, 1e-9)
	assert.InDelta(t, 200.0, k.Offsets.Hybrid, 1e-9)
	assert.Equal(t, config.Target{Goal: 1000, GaugeMax: 1000}, k.Targets.AvoidedEmissions)
	assert.Equal(t, config.Target{Goal: 20, GaugeMax: 100}, k.Targets.CostSavings)
	assert.Equal(t, config.Target{Goal: 1500, GaugeMax: 1500}, k.Targets.Profitability)
	assert.InDelta(t, 10000.0, k.MileageMax, 1e-9)
	require.NoError(t, k.Validate())
}

func TestKPIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(k *config.KPIConfig)
		wantErr error
	}{
		{
			name: "thresholds out of order",
			mutate: func(k *config.KPIConfig) {
				k.Categories.ElectricMaxCO2 = 300
			},
			wantErr: config.ErrThresholdOrder,
		},
		{
			name:    "negative offset",
			mutate:  func(k *config.KPIConfig) { k.Offsets.Hybrid = -1 },
			wantErr: config.ErrOffsetNegative,
		},
		{
			name:    "zero gauge max",
			mutate:  func(k *config.KPIConfig) { k.Targets.Profitability.GaugeMax = 0 },
			wantErr: config.ErrGaugeMaxNotPositive,
		},
		{
			name:    "negative goal",
			mutate:  func(k *config.KPIConfig) { k.Targets.CostSavings.Goal = -5 },
			wantErr: config.ErrGoalNegative,
		},
		{
			name: "mileage inverted",
			mutate: func(k *config.KPIConfig) {
				k.MileageMin = 50
				k.MileageMax = 10
			},
			wantErr: config.ErrMileageRange,
		},
		{
			name:   "equal thresholds allowed",
			mutate: func(k *config.KPIConfig) { k.Categories.ElectricMaxCO2 = 200 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := config.DefaultKPIConfig()
			tt.mutate(&k)
			err := k.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
