package planner

import (
	"math"
	"strconv"
)

// QualityBand buckets a road quality score for display coloring.
type QualityBand string

const (
	BandGood QualityBand = "good"
	BandFair QualityBand = "fair"
	BandPoor QualityBand = "poor"
)

// BandForScore maps a 0-100 road quality score to its color band.
// Band lower bounds are inclusive: exactly 80 is good, exactly 50 is fair.
func BandForScore(score float64) QualityBand {
	switch {
	case score >= 80:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// Color returns the display color for a band. Unknown bands render neutral.
func (b QualityBand) Color() string {
	switch b {
	case BandGood:
		return "#16a34a"
	case BandFair:
		return "#f59e0b"
	case BandPoor:
		return "#ef4444"
	}
	return neutralColor
}

// FormatKm renders a distance in meters as kilometers with exactly two
// decimal digits, rounding half away from zero.
func FormatKm(meters float64) string {
	return strconv.FormatFloat(math.Round(meters/10)/100, 'f', 2, 64)
}

// FormatScore renders a quality score as the UI shows it, e.g. "87/100".
func FormatScore(score float64) string {
	return strconv.FormatFloat(math.Round(score), 'f', 0, 64) + "/100"
}
