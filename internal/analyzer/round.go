package analyzer

import "math"

// roundHalfUp rounds to the nearest integer with halves going toward +Inf,
// so -2.5 rounds to -2 and 2.5 to 3.
func roundHalfUp(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}

// round1 rounds to one decimal place with the same tie rule as roundHalfUp.
func round1(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor(x*10+0.5) / 10
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
