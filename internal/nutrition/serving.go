package nutrition

// Serving describes the reference portion a nutrient table refers to.
type Serving struct {
	Qty         float64 // number of units in the reference portion
	WeightGrams float64 // weight of the reference portion
}

// ServingMultiplier returns the factor that scales a reference portion's
// nutrients to qty units. When the chosen unit is an alternative measure
// with its own serving weight, the weights are used to convert between units.
func ServingMultiplier(base Serving, qty float64, altWeight float64) float64 {
	if altWeight > 0 && base.WeightGrams > 0 && base.Qty > 0 {
		return altWeight * qty / (base.WeightGrams * base.Qty)
	}
	if base.Qty <= 0 {
		return 0
	}
	return qty / base.Qty
}
