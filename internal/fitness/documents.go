package fitness

import "encoding/json"

// workoutDoc is a workout completion as stored in the document export.
// Older documents use completedAt or date instead of timestamp.
type workoutDoc struct {
	Timestamp   json.RawMessage `json:"timestamp"`
	CompletedAt json.RawMessage `json:"completedAt"`
	Date        json.RawMessage `json:"date"`
	Name        string          `json:"name"`
	WorkoutName string          `json:"workoutName"`
	Exercises   []exerciseDoc   `json:"exercises"`
}

type exerciseDoc struct {
	Name   string  `json:"name"`
	Sets   *number `json:"sets"`
	Reps   Reps    `json:"reps"`
	Weight *number `json:"weight"`
}

// calorieDoc is a daily calorie ledger. Macro fields appear under several
// names depending on which client wrote them.
type calorieDoc struct {
	Date     label   `json:"date"`
	Intake   *number `json:"intake"`
	Burned   *number `json:"burned"`
	Protein  *number `json:"protein"`
	ProteinG *number `json:"protein_g"`
	Carbs    *number `json:"carbs"`
	CarbsG   *number `json:"carbs_g"`
	Fats     *number `json:"fats"`
	FatsG    *number `json:"fats_g"`
	Fat      *number `json:"fat"`
	FatG     *number `json:"fat_g"`
}

type weightDoc struct {
	Date   label   `json:"date"`
	Week   label   `json:"week"`
	Weight *number `json:"weight"`
}

type profileDoc struct {
	Name           string  `json:"name"`
	Goal           string  `json:"goal"`
	FitnessGoal    string  `json:"fitnessGoal"`
	TargetCalories *number `json:"targetCalories"`
	DailyCalories  *number `json:"dailyCalories"`
	DaysPerWeek    *number `json:"daysPerWeek"`
}

// firstNumber returns the first non-nil value, or 0.
func firstNumber(vals ...*number) float64 {
	for _, v := range vals {
		if v != nil {
			return float64(*v)
		}
	}
	return 0
}

func (d workoutDoc) normalize() Workout {
	w := Workout{
		CompletedAt: parseTimeValue(d.Timestamp),
		Name:        d.Name,
		Exercises:   make([]Exercise, 0, len(d.Exercises)),
	}
	if w.CompletedAt.IsZero() {
		w.CompletedAt = parseTimeValue(d.CompletedAt)
	}
	if w.CompletedAt.IsZero() {
		w.CompletedAt = parseTimeValue(d.Date)
	}
	if w.Name == "" {
		w.Name = d.WorkoutName
	}
	for _, ex := range d.Exercises {
		sets := int(firstNumber(ex.Sets))
		if sets < 0 {
			sets = 0
		}
		weight := 1.0
		if ex.Weight != nil {
			weight = float64(*ex.Weight)
		}
		w.Exercises = append(w.Exercises, Exercise{
			Name:   ex.Name,
			Sets:   sets,
			Reps:   ex.Reps,
			Weight: weight,
		})
	}
	return w
}

func (d calorieDoc) normalize() CalorieDay {
	return CalorieDay{
		Date:    string(d.Date),
		Intake:  firstNumber(d.Intake),
		Burned:  firstNumber(d.Burned),
		Protein: firstNumber(d.Protein, d.ProteinG),
		Carbs:   firstNumber(d.Carbs, d.CarbsG),
		Fats:    firstNumber(d.Fats, d.FatsG, d.Fat, d.FatG),
	}
}

// normalize returns false for samples without a weight value.
func (d weightDoc) normalize() (WeightSample, bool) {
	if d.Weight == nil {
		return WeightSample{}, false
	}
	date := string(d.Date)
	if date == "" {
		date = string(d.Week)
	}
	return WeightSample{Date: date, Weight: float64(*d.Weight)}, true
}

func (d profileDoc) normalize() Profile {
	p := Profile{
		Name:           d.Name,
		Goal:           d.Goal,
		TargetCalories: firstNumber(d.TargetCalories, d.DailyCalories),
		DaysPerWeek:    int(firstNumber(d.DaysPerWeek)),
	}
	if p.Goal == "" {
		p.Goal = d.FitnessGoal
	}
	return p
}

// DecodeWorkout decodes and normalizes a single workout document.
func DecodeWorkout(data []byte) (Workout, error) {
	var d workoutDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return Workout{}, err
	}
	return d.normalize(), nil
}

// DecodeCalorieDays decodes and normalizes a JSON array of calorie documents.
func DecodeCalorieDays(data []byte) ([]CalorieDay, error) {
	var docs []calorieDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	days := make([]CalorieDay, 0, len(docs))
	for _, d := range docs {
		days = append(days, d.normalize())
	}
	return days, nil
}

// DecodeWeights decodes a JSON array of weight samples. Samples without a
// weight are dropped; the second return value counts them.
func DecodeWeights(data []byte) ([]WeightSample, int, error) {
	var docs []weightDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, 0, err
	}
	samples := make([]WeightSample, 0, len(docs))
	dropped := 0
	for _, d := range docs {
		s, ok := d.normalize()
		if !ok {
			dropped++
			continue
		}
		samples = append(samples, s)
	}
	return samples, dropped, nil
}

// DecodeProfile decodes and normalizes a profile document.
func DecodeProfile(data []byte) (Profile, error) {
	var d profileDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return Profile{}, err
	}
	return d.normalize(), nil
}
