package greenops

// Category thresholds in grams of CO2 per mile. A value equal to a threshold
// belongs to the lower category.
const (
	// DefaultElectricMaxCO2 is the upper bound of the electric category.
	DefaultElectricMaxCO2 = 0.0

	// DefaultHybridMaxCO2 is the upper bound of the hybrid category.
	DefaultHybridMaxCO2 = 200.0
)

// Emission offsets in grams of CO2 per mile.
const (
	// DefaultElectricOffset is added to an electric record's CO2 before
	// comparing it to the fleet maximum.
	DefaultElectricOffset = 120.0

	// DefaultHybridOffset is the hybrid counterpart of DefaultElectricOffset.
	DefaultHybridOffset = 200.0
)

// Display thresholds for abbreviated number formatting.
const (
	// LargeNumberThreshold is the threshold for using abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)

// percent scales a ratio to a percentage.
const percent = 100.0

// DefaultThresholds returns the stock category thresholds (0 and 200).
func DefaultThresholds() Thresholds {
	return Thresholds{ElectricMax: DefaultElectricMaxCO2, HybridMax: DefaultHybridMaxCO2}
}

// DefaultParams returns the stock thresholds and offsets (120 and 200).
func DefaultParams() Params {
	return Params{
		Thresholds: DefaultThresholds(),
		Offsets:    Offsets{Electric: DefaultElectricOffset, Hybrid: DefaultHybridOffset},
	}
}
