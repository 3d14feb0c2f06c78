package fitness

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Export file names inside the data directory.
const (
	WorkoutsJSONLFile = "workouts.jsonl"
	WorkoutsJSONFile  = "workouts.json"
	CaloriesFile      = "calories.json"
	WeightsFile       = "weights.json"
	ProfileFile       = "profile.json"
	PlanFile          = "plan.json"
)

// LoadHistory reads the workout, calorie, weight and profile exports from dir
// concurrently. Missing files yield empty collections. Malformed workout lines
// are skipped and logged.
func LoadHistory(ctx context.Context, dir string, logger *zap.Logger) (*History, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var h History
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ws, err := loadWorkouts(ctx, dir, logger)
		if err != nil {
			return fmt.Errorf("loading workouts: %w", err)
		}
		h.Workouts = ws
		return nil
	})

	g.Go(func() error {
		data, err := readOptional(filepath.Join(dir, CaloriesFile))
		if err != nil || data == nil {
			return err
		}
		days, err := DecodeCalorieDays(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", CaloriesFile, err)
		}
		h.CalorieDays = days
		return nil
	})

	g.Go(func() error {
		data, err := readOptional(filepath.Join(dir, WeightsFile))
		if err != nil || data == nil {
			return err
		}
		samples, dropped, err := DecodeWeights(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", WeightsFile, err)
		}
		if dropped > 0 {
			logger.Warn("skipped weight samples without a weight", zap.Int("count", dropped))
		}
		h.Weights = samples
		return nil
	})

	g.Go(func() error {
		data, err := readOptional(filepath.Join(dir, ProfileFile))
		if err != nil || data == nil {
			return err
		}
		p, err := DecodeProfile(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", ProfileFile, err)
		}
		h.Profile = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("history loaded",
		zap.String("dir", dir),
		zap.Int("workouts", len(h.Workouts)),
		zap.Int("calorie_days", len(h.CalorieDays)),
		zap.Int("weights", len(h.Weights)),
	)
	return &h, nil
}

// LoadPlan reads plan.json from dir. It returns nil if the file does not exist.
func LoadPlan(dir string) (*TrainingPlan, error) {
	data, err := readOptional(filepath.Join(dir, PlanFile))
	if err != nil || data == nil {
		return nil, err
	}
	var plan TrainingPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", PlanFile, err)
	}
	return &plan, nil
}

// loadWorkouts prefers the streaming workouts.jsonl export and falls back to a
// workouts.json array.
func loadWorkouts(ctx context.Context, dir string, logger *zap.Logger) ([]Workout, error) {
	f, err := os.Open(filepath.Join(dir, WorkoutsJSONLFile))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		return loadWorkoutArray(dir, logger)
	}
	defer func() { _ = f.Close() }()

	var workouts []Workout
	scanner := bufio.NewScanner(f)
	// Generated workouts can carry long exercise notes.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		w, err := DecodeWorkout(line)
		if err != nil {
			logger.Warn("skipping malformed workout line",
				zap.Int("line", lineNo),
				zap.Error(err),
			)
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, scanner.Err()
}

func loadWorkoutArray(dir string, logger *zap.Logger) ([]Workout, error) {
	data, err := readOptional(filepath.Join(dir, WorkoutsJSONFile))
	if err != nil || data == nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", WorkoutsJSONFile, err)
	}
	workouts := make([]Workout, 0, len(raw))
	for i, r := range raw {
		w, err := DecodeWorkout(r)
		if err != nil {
			logger.Warn("skipping malformed workout", zap.Int("index", i), zap.Error(err))
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// readOptional reads a file, returning nil data and no error when it does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
