// Package fitness provides types and parsers for exported fitness-tracking data.
package fitness

import "time"

// Goal tags recognised by the insight rules. Other values are allowed and
// simply match no goal-specific rule.
const (
	GoalWeightLoss     = "weight_loss"
	GoalMuscleGain     = "muscle_gain"
	GoalGeneralFitness = "general_fitness"
)

// Day types in a training plan.
const (
	DayTypeWorkout = "workout"
	DayTypeRest    = "rest"
)

// Workout is one finished workout session.
type Workout struct {
	// CompletedAt is when the session finished. It is the zero time when the
	// source timestamp could not be parsed.
	CompletedAt time.Time `json:"completed_at"`

	// Name is the label of the workout.
	Name string `json:"name"`

	// Exercises is the ordered list of exercises performed.
	Exercises []Exercise `json:"exercises"`
}

// Exercise is a single exercise within a workout.
type Exercise struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   Reps    `json:"reps"`
	Weight float64 `json:"weight"`
}

// Volume returns sets x reps x weight summed over the workout's exercises.
func (w Workout) Volume() float64 {
	total := 0.0
	for _, ex := range w.Exercises {
		total += float64(ex.Sets) * float64(ex.Reps.Leading()) * ex.Weight
	}
	return total
}

// CalorieDay is one calendar day's nutrition ledger.
type CalorieDay struct {
	Date    string  `json:"date"`
	Intake  float64 `json:"intake"`
	Burned  float64 `json:"burned"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// WeightSample is one body-weight observation in kilograms.
type WeightSample struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Profile is the user's profile document.
type Profile struct {
	Name           string  `json:"name,omitempty"`
	Goal           string  `json:"goal,omitempty"`
	TargetCalories float64 `json:"target_calories,omitempty"`
	DaysPerWeek    int     `json:"days_per_week,omitempty"`
}

// Target describes the user's active plan targets.
type Target struct {
	TargetCalories float64 `json:"target_calories"`
	Goal           string  `json:"goal"`
}

// History is a snapshot of everything the analyzer reads.
type History struct {
	Workouts    []Workout      `json:"workouts"`
	CalorieDays []CalorieDay   `json:"calorie_days"`
	Weights     []WeightSample `json:"weights"`
	Profile     Profile        `json:"profile"`
}

// Task is a simple completable task such as hydration or sleep.
type Task struct {
	Completed bool `json:"completed"`
}

// PlannedWorkout is the workout scheduled for a plan day.
type PlannedWorkout struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// PlannedMeal is one meal scheduled for a plan day.
type PlannedMeal struct {
	Name      string  `json:"name"`
	Calories  float64 `json:"calories,omitempty"`
	Completed bool    `json:"completed"`
}

// DayPlan is the task state for a single plan day.
type DayPlan struct {
	Day       string          `json:"day"`
	Type      string          `json:"type"`
	Workout   *PlannedWorkout `json:"workout,omitempty"`
	Meals     []PlannedMeal   `json:"meals"`
	Hydration *Task           `json:"hydration,omitempty"`
	Sleep     *Task           `json:"sleep,omitempty"`
}

// WeekPlan is an ordered sequence of plan days.
type WeekPlan struct {
	Days []DayPlan `json:"days"`
}

// TrainingPlan is the multi-week plan document.
type TrainingPlan struct {
	Weeks       []WeekPlan `json:"weeks"`
	CurrentWeek int        `json:"current_week"`
}

// Week returns the week at index i, or false if out of range.
func (p *TrainingPlan) Week(i int) (WeekPlan, bool) {
	if p == nil || i < 0 || i >= len(p.Weeks) {
		return WeekPlan{}, false
	}
	return p.Weeks[i], true
}
