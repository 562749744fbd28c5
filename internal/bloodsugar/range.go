// Package bloodsugar classifies glucose values and derives glucose metrics.
package bloodsugar

import (
	"math"
	"strings"
	"time"
)

// RangeStatus represents the glucose range classification.
type RangeStatus string

const (
	RangeUrgentLow RangeStatus = "urgentLow"
	RangeLow       RangeStatus = "low"
	RangeNormal    RangeStatus = "normal"
	RangeHigh      RangeStatus = "high"
	RangeVeryHigh  RangeStatus = "veryHigh"
)

// Glucose thresholds in mg/dL.
const (
	ThresholdUrgentLow = 55
	ThresholdLow       = 70
	ThresholdHigh      = 180
	ThresholdVeryHigh  = 250
)

// StaleThreshold is how old a sensor reading can be before it's considered stale.
const StaleThreshold = 10 * time.Minute

// TrendArrows maps Dexcom trend names to text arrows.
var TrendArrows = map[string]string{
	"doubleup":      "^^",
	"singleup":      "^",
	"fortyfiveup":   "/",
	"flat":          "-",
	"fortyfivedown": "\\",
	"singledown":    "v",
	"doubledown":    "vv",
}

// ClassifyRange determines the range status for a glucose value.
func ClassifyRange(mgdl float64) RangeStatus {
	if mgdl < ThresholdUrgentLow {
		return RangeUrgentLow
	}
	if mgdl < ThresholdLow {
		return RangeLow
	}
	if mgdl <= ThresholdHigh {
		return RangeNormal
	}
	if mgdl <= ThresholdVeryHigh {
		return RangeHigh
	}
	return RangeVeryHigh
}

// OutOfRange reports whether a value falls outside the normal band.
func OutOfRange(mgdl float64) bool {
	return ClassifyRange(mgdl) != RangeNormal
}

// MapTrendArrow converts a Dexcom trend string to a display arrow.
func MapTrendArrow(trend string) string {
	lower := strings.ToLower(trend)
	if arrow, ok := TrendArrows[lower]; ok {
		return arrow
	}
	return "?"
}

// IsStaleReading checks if a reading taken at t is older than the stale threshold.
func IsStaleReading(t, now time.Time) bool {
	return now.Sub(t) >= StaleThreshold
}

// MgdlToMmol converts mg/dL to mmol/L, rounded to one decimal.
func MgdlToMmol(mgdl float64) float64 {
	return math.Round(mgdl/18.0182*10) / 10
}
