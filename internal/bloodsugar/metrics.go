package bloodsugar

// Status is the coarse quality band of a single reading.
type Status string

const (
	StatusGood    Status = "good"
	StatusNeutral Status = "neutral"
	StatusBad     Status = "bad"
)

// Upper bounds (inclusive) of the status bands in mg/dL.
const (
	GoodCeiling    = 120
	NeutralCeiling = 180
)

// ClassifyStatus returns the status band of a reading value.
func ClassifyStatus(mgdl float64) Status {
	switch {
	case mgdl <= GoodCeiling:
		return StatusGood
	case mgdl <= NeutralCeiling:
		return StatusNeutral
	default:
		return StatusBad
	}
}

// Coefficients of the ADAG linear relation between average glucose and HbA1c.
const (
	hba1cOffset = 46.7
	hba1cSlope  = 28.7
)

// EstimateHbA1c converts an average glucose in mg/dL to an HbA1c percentage.
func EstimateHbA1c(avgMgdl float64) float64 {
	return (avgMgdl + hba1cOffset) / hba1cSlope
}

// Average returns the arithmetic mean of values and false when there are none.
func Average(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
