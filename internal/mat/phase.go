package mat

// Resolve derives the phase and weight of material m at the given
// temperature. The returned material differs from m only when m melts into
// another material, which is a one way change.
//
// Gas weight shrinks linearly above the boil point and is floored at zero
// once the temperature passes WeightLossLimitGas above it.
func Resolve(m Mat, temperature float64) (Mat, Phase, float64) {
	if m == None {
		return None, Static, 0
	}
	p := Props(m)
	switch {
	case temperature < p.MeltPoint:
		return m, p.Solid, p.Weight
	case temperature < p.BoilPoint:
		if p.MeltsInto != None {
			m = p.MeltsInto
			p = Props(m)
		}
		return m, Liquid, p.Weight * WeightFactorLiquid
	default:
		weight := p.Weight * WeightFactorGas
		weight -= weight * (temperature - p.BoilPoint) / WeightLossLimitGas
		if weight < 0 {
			weight = 0
		}
		return m, Gas, weight
	}
}
