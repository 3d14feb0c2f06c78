package insight

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/fitwatch/internal/fitness"
)

func titles(insights []Insight) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Title)
	}
	return out
}

func TestEngineRun_NilContext(t *testing.T) {
	got := NewEngine().Run(nil)
	// Zero metrics: consistency alert and nutrition warning.
	assert.Equal(t, []string{"Improve Consistency", "Nutrition Needs Attention"}, titles(got))
}

func TestEngineRun_ConsistencyBands(t *testing.T) {
	tests := []struct {
		score int
		title string
		typ   Type
	}{
		{100, "Excellent Consistency", TypeSuccess},
		{80, "Excellent Consistency", TypeSuccess},
		{79, "Good Consistency", TypeWarning},
		{60, "Good Consistency", TypeWarning},
		{59, "Improve Consistency", TypeAlert},
		{0, "Improve Consistency", TypeAlert},
	}
	for _, tc := range tests {
		got := NewEngine().Run(&Context{ConsistencyScore: tc.score, CalorieAdherence: 75})
		require.Len(t, got, 1, "score %d", tc.score)
		assert.Equal(t, tc.title, got[0].Title, "score %d", tc.score)
		assert.Equal(t, tc.typ, got[0].Type, "score %d", tc.score)
	}
}

func TestEngineRun_NutritionBands(t *testing.T) {
	tests := []struct {
		adherence int
		want      []string
	}{
		{100, []string{"Excellent Consistency", "Perfect Nutrition"}},
		{85, []string{"Excellent Consistency", "Perfect Nutrition"}},
		{84, []string{"Excellent Consistency"}},
		{70, []string{"Excellent Consistency"}},
		{69, []string{"Excellent Consistency", "Nutrition Needs Attention"}},
	}
	for _, tc := range tests {
		got := NewEngine().Run(&Context{ConsistencyScore: 90, CalorieAdherence: tc.adherence})
		assert.Equal(t, tc.want, titles(got), "adherence %d", tc.adherence)
	}
}

func TestEngineRun_WeightLossCitesAbsoluteKg(t *testing.T) {
	got := NewEngine().Run(&Context{
		ConsistencyScore: 90,
		CalorieAdherence: 75,
		WeightTrend:      -2.0,
		Goal:             fitness.GoalWeightLoss,
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Weight Loss Progress", got[1].Title)
	assert.Equal(t, TypeSuccess, got[1].Type)
	assert.Equal(t, "You've lost 2 kg over the last 4 weeks!", got[1].Message)
}

func TestEngineRun_GoalGating(t *testing.T) {
	tests := []struct {
		name  string
		goal  string
		trend float64
		want  string
	}{
		{"loss met", fitness.GoalWeightLoss, -0.6, "Weight Loss Progress"},
		{"loss at threshold", fitness.GoalWeightLoss, -0.5, ""},
		{"loss wrong direction", fitness.GoalWeightLoss, 1.5, ""},
		{"gain met", fitness.GoalMuscleGain, 1.5, "Muscle Gain Progress"},
		{"gain at threshold", fitness.GoalMuscleGain, 0.5, ""},
		{"general fitness", fitness.GoalGeneralFitness, -3, ""},
		{"unknown goal", "marathon", -3, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewEngine().Run(&Context{ConsistencyScore: 90, CalorieAdherence: 75, WeightTrend: tc.trend, Goal: tc.goal})
			if tc.want == "" {
				assert.Len(t, got, 1)
				return
			}
			require.Len(t, got, 2)
			assert.Equal(t, tc.want, got[1].Title)
		})
	}
}

func TestEngineRun_MuscleGainMessage(t *testing.T) {
	got := NewEngine().Run(&Context{ConsistencyScore: 90, CalorieAdherence: 75, WeightTrend: 1.5, Goal: fitness.GoalMuscleGain, Weeks: 6})
	require.Len(t, got, 2)
	assert.Equal(t, "You've gained 1.5 kg over the last 6 weeks!", got[1].Message)
}

func TestEngineRun_StrengthGains(t *testing.T) {
	got := NewEngine().Run(&Context{ConsistencyScore: 90, CalorieAdherence: 75, PerformanceImprovement: 11})
	require.Len(t, got, 2)
	assert.Equal(t, "Strength Gains", got[1].Title)
	assert.Contains(t, got[1].Message, "11%")

	got = NewEngine().Run(&Context{ConsistencyScore: 90, CalorieAdherence: 75, PerformanceImprovement: 10})
	assert.Len(t, got, 1)
}

func TestEngineRun_FullOrder(t *testing.T) {
	got := NewEngine().Run(&Context{
		ConsistencyScore:       40,
		CalorieAdherence:       95,
		WeightTrend:            -1.2,
		PerformanceImprovement: 25,
		Goal:                   fitness.GoalWeightLoss,
	})
	assert.Equal(t, []string{
		"Improve Consistency",
		"Perfect Nutrition",
		"Weight Loss Progress",
		"Strength Gains",
	}, titles(got))
}

func TestNewEngineWithRules(t *testing.T) {
	e := NewEngineWithRules(StrengthGainsRule, ExcellentConsistencyRule, Rule{Name: "incomplete"})
	assert.Equal(t, []string{"strength_gains", "excellent_consistency", "incomplete"}, e.Rules())

	got := e.Run(&Context{ConsistencyScore: 100, PerformanceImprovement: 50})
	assert.Equal(t, []string{"Strength Gains", "Excellent Consistency"}, titles(got))
}

func TestLimit(t *testing.T) {
	in := []Insight{{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}}
	assert.Len(t, Limit(in, 3), 3)
	assert.Len(t, Limit(in, 10), 4)
	assert.Len(t, Limit(in, 0), 4)
	assert.Empty(t, Limit(nil, 3))
}

// rulePosition maps each built-in title to its position in evaluation order.
var rulePosition = map[string]int{
	"Excellent Consistency":     0,
	"Good Consistency":          0,
	"Improve Consistency":       0,
	"Perfect Nutrition":         1,
	"Nutrition Needs Attention": 1,
	"Weight Loss Progress":      2,
	"Muscle Gain Progress":      2,
	"Strength Gains":            3,
}

func TestProperty_InsightOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	goals := gen.OneConstOf(fitness.GoalWeightLoss, fitness.GoalMuscleGain, fitness.GoalGeneralFitness, "")

	properties.Property("insights follow rule order and exactly one consistency insight fires", prop.ForAll(
		func(consistency, adherence, perf int, trend float64, goal string) bool {
			got := NewEngine().Run(&Context{
				ConsistencyScore:       consistency,
				CalorieAdherence:       adherence,
				WeightTrend:            trend,
				PerformanceImprovement: perf,
				Goal:                   goal,
			})
			if len(got) == 0 || rulePosition[got[0].Title] != 0 {
				return false
			}
			last := -1
			for _, in := range got {
				pos, ok := rulePosition[in.Title]
				if !ok || pos <= last {
					return false
				}
				last = pos
			}
			return true
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
		gen.IntRange(-200, 200),
		gen.Float64Range(-10, 10),
		goals,
	))

	properties.TestingRun(t)
}
