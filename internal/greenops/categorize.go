package greenops

// Categorize classifies a CO2-per-mile value with the default thresholds.
//
//	v <= 0       electric
//	0 < v <= 200 hybrid
//	v > 200      conventional
func Categorize(co2PerMile float64) Category {
	return DefaultThresholds().Categorize(co2PerMile)
}

// Categorize classifies a CO2-per-mile value with t.
func (t Thresholds) Categorize(co2PerMile float64) Category {
	switch {
	case co2PerMile <= t.ElectricMax:
		return CategoryElectric
	case co2PerMile <= t.HybridMax:
		return CategoryHybrid
	default:
		return CategoryConventional
	}
}

// Validate checks that the electric bound does not exceed the hybrid bound.
func (t Thresholds) Validate() error {
	if t.ElectricMax > t.HybridMax {
		return ErrInvalidThresholds
	}
	return nil
}

// Validate checks thresholds and offsets.
func (p Params) Validate() error {
	if err := p.Thresholds.Validate(); err != nil {
		return err
	}
	if p.Offsets.Electric < 0 || p.Offsets.Hybrid < 0 {
		return ErrNegativeOffset
	}
	return nil
}

// Offset returns the emission offset of c; conventional has none.
func (o Offsets) Offset(c Category) float64 {
	switch c {
	case CategoryElectric:
		return o.Electric
	case CategoryHybrid:
		return o.Hybrid
	default:
		return 0
	}
}
