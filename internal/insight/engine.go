package insight

// Engine evaluates rules in registration order and collects the insights of
// every rule whose predicate holds. Results are never re-sorted.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with the built-in rules registered.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules creates an engine that evaluates only the given rules.
func NewEngineWithRules(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the registered rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.Name)
	}
	return names
}

// Run evaluates every rule against ctx and returns the produced insights in
// rule order. A nil ctx is treated as all-zero metrics.
func (e *Engine) Run(ctx *Context) []Insight {
	if ctx == nil {
		ctx = &Context{}
	}
	insights := []Insight{}
	for _, rule := range e.rules {
		if rule.When == nil || rule.Build == nil {
			continue
		}
		if rule.When(ctx) {
			insights = append(insights, rule.Build(ctx))
		}
	}
	return insights
}

// Limit returns at most the first n insights. n <= 0 returns all of them.
func Limit(insights []Insight, n int) []Insight {
	if n <= 0 || len(insights) <= n {
		return insights
	}
	return insights[:n]
}
