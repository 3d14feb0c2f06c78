package insight

import (
	"fmt"
	"math"
	"strconv"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

// Thresholds used by the built-in rules.
const (
	ExcellentConsistency = 80
	GoodConsistency      = 60
	PerfectNutrition     = 85
	NutritionAttention   = 70
	WeightChangeKg       = 0.5
	StrengthGainPercent  = 10
)

// DefaultRules returns the built-in rules in evaluation order: consistency,
// nutrition, goal-specific weight progress, then strength.
func DefaultRules() []Rule {
	return []Rule{
		ExcellentConsistencyRule,
		GoodConsistencyRule,
		ImproveConsistencyRule,
		PerfectNutritionRule,
		NutritionAttentionRule,
		WeightLossRule,
		MuscleGainRule,
		StrengthGainsRule,
	}
}

// ExcellentConsistencyRule fires at a consistency score of 80 or more.
var ExcellentConsistencyRule = Rule{
	Name: "excellent_consistency",
	When: func(ctx *Context) bool { return ctx.ConsistencyScore >= ExcellentConsistency },
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeSuccess,
			Title:   "Excellent Consistency",
			Message: fmt.Sprintf("You've completed %d%% of your expected workouts. Keep up the momentum!", ctx.ConsistencyScore),
		}
	},
}

// GoodConsistencyRule fires at a consistency score in [60, 80).
var GoodConsistencyRule = Rule{
	Name: "good_consistency",
	When: func(ctx *Context) bool {
		return ctx.ConsistencyScore >= GoodConsistency && ctx.ConsistencyScore < ExcellentConsistency
	},
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeWarning,
			Title:   "Good Consistency",
			Message: fmt.Sprintf("You're at %d%% consistency. One more session a week would put you on target.", ctx.ConsistencyScore),
		}
	},
}

// ImproveConsistencyRule fires below a consistency score of 60.
var ImproveConsistencyRule = Rule{
	Name: "improve_consistency",
	When: func(ctx *Context) bool { return ctx.ConsistencyScore < GoodConsistency },
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeAlert,
			Title:   "Improve Consistency",
			Message: fmt.Sprintf("Your consistency is %d%%. Aim for at least 4 workouts per week.", ctx.ConsistencyScore),
		}
	},
}

// PerfectNutritionRule fires at a calorie adherence of 85 or more.
var PerfectNutritionRule = Rule{
	Name: "perfect_nutrition",
	When: func(ctx *Context) bool { return ctx.CalorieAdherence >= PerfectNutrition },
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeSuccess,
			Title:   "Perfect Nutrition",
			Message: fmt.Sprintf("Your calorie intake is %d%% aligned with your target.", ctx.CalorieAdherence),
		}
	},
}

// NutritionAttentionRule fires below a calorie adherence of 70. Adherence
// between 70 and 84 produces no nutrition insight.
var NutritionAttentionRule = Rule{
	Name: "nutrition_attention",
	When: func(ctx *Context) bool { return ctx.CalorieAdherence < NutritionAttention },
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeWarning,
			Title:   "Nutrition Needs Attention",
			Message: fmt.Sprintf("Your calorie adherence is %d%%. Try logging every meal against your target.", ctx.CalorieAdherence),
		}
	},
}

// WeightLossRule fires for the weight_loss goal when more than 0.5 kg was lost.
var WeightLossRule = Rule{
	Name: "weight_loss_progress",
	When: func(ctx *Context) bool {
		return ctx.Goal == fitness.GoalWeightLoss && ctx.WeightTrend < -WeightChangeKg
	},
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeSuccess,
			Title:   "Weight Loss Progress",
			Message: fmt.Sprintf("You've lost %s kg over the last %d weeks!", formatKg(math.Abs(ctx.WeightTrend)), ctx.weeks()),
		}
	},
}

// MuscleGainRule fires for the muscle_gain goal when more than 0.5 kg was gained.
var MuscleGainRule = Rule{
	Name: "muscle_gain_progress",
	When: func(ctx *Context) bool {
		return ctx.Goal == fitness.GoalMuscleGain && ctx.WeightTrend > WeightChangeKg
	},
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeSuccess,
			Title:   "Muscle Gain Progress",
			Message: fmt.Sprintf("You've gained %s kg over the last %d weeks!", formatKg(ctx.WeightTrend), ctx.weeks()),
		}
	},
}

// StrengthGainsRule fires when training volume improved by more than 10%.
var StrengthGainsRule = Rule{
	Name: "strength_gains",
	When: func(ctx *Context) bool { return ctx.PerformanceImprovement > StrengthGainPercent },
	Build: func(ctx *Context) Insight {
		return Insight{
			Type:    TypeSuccess,
			Title:   "Strength Gains",
			Message: fmt.Sprintf("Your training volume is up %d%% over the last %d weeks.", ctx.PerformanceImprovement, ctx.weeks()),
		}
	},
}

// formatKg renders a weight in its shortest form: 2 -> "2", 1.5 -> "1.5".
func formatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
