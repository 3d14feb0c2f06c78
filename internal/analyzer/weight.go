package analyzer

import "github.com/blackwell-systems/fitwatch/internal/fitness"

// WeightTrend returns last minus first weight over the trailing weeks samples,
// rounded to one decimal. Fewer than two samples yield 0. Samples are taken in
// the order given; they are not re-sorted.
func WeightTrend(samples []fitness.WeightSample, weeks int) float64 {
	window := Last(samples, weeks)
	if len(window) < 2 {
		return 0
	}
	return round1(window[len(window)-1].Weight - window[0].Weight)
}
