package analyzer

import (
	"math"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

// CalorieAdherence returns how closely the trailing days entries of intake
// tracked targetCalories, as a 0-100 percentage.
//
// Each day scores max(0, 100 - |intake - target| / target * 100) and the
// result is the rounded mean. The target used as a divisor is clamped to at
// least 1 so a misconfigured target cannot divide by zero.
func CalorieAdherence(history []fitness.CalorieDay, targetCalories float64, days int) int {
	window := Last(history, days)
	if len(window) == 0 {
		return 0
	}

	divisor := math.Max(targetCalories, 1)
	total := 0.0
	for _, d := range window {
		variance := math.Abs(d.Intake - targetCalories)
		total += math.Max(0, 100-variance/divisor*100)
	}
	return clampPercent(roundHalfUp(total / float64(len(window))))
}

// Nutrition computes per-day averages over the trailing days entries.
func Nutrition(history []fitness.CalorieDay, targetCalories float64, days int) NutritionBreakdown {
	window := Last(history, days)
	b := NutritionBreakdown{Days: len(window), TargetCalorie: targetCalories}
	if len(window) == 0 {
		return b
	}

	for _, d := range window {
		b.AvgIntake += d.Intake
		b.AvgBurned += d.Burned
		b.AvgProteinG += d.Protein
		b.AvgCarbsG += d.Carbs
		b.AvgFatsG += d.Fats
	}

	n := float64(len(window))
	b.AvgIntake /= n
	b.AvgBurned /= n
	b.AvgProteinG /= n
	b.AvgCarbsG /= n
	b.AvgFatsG /= n
	b.AvgNet = b.AvgIntake - b.AvgBurned
	return b
}
