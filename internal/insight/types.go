// Package insight provides the ordered insight rules evaluated against
// progress metrics.
package insight

// Type is the severity or sentiment of an insight.
type Type string

// Insight types.
const (
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeAlert   Type = "alert"
)

// Insight is a short typed judgment derived from one or more metrics.
type Insight struct {
	Type    Type   `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Context carries the metric values the rules are evaluated against.
type Context struct {
	// ConsistencyScore is the 0-100 workout consistency score.
	ConsistencyScore int `json:"consistency_score"`

	// CalorieAdherence is the 0-100 calorie adherence percentage.
	CalorieAdherence int `json:"calorie_adherence"`

	// WeightTrend is the weight change in kg over the trend window.
	WeightTrend float64 `json:"weight_trend"`

	// PerformanceImprovement is the signed training volume change in percent.
	PerformanceImprovement int `json:"performance_improvement"`

	// Goal is the user's goal tag, e.g. "weight_loss".
	Goal string `json:"goal"`

	// Weeks is the trend window the weight and performance metrics cover.
	Weeks int `json:"weeks"`
}

// DefaultWeeks is used in messages when Context.Weeks is unset.
const DefaultWeeks = 4

func (c *Context) weeks() int {
	if c.Weeks <= 0 {
		return DefaultWeeks
	}
	return c.Weeks
}

// Rule pairs a predicate with the insight it produces when the predicate holds.
type Rule struct {
	Name  string
	When  func(ctx *Context) bool
	Build func(ctx *Context) Insight
}
