package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fitwatch/internal/config"
	"github.com/blackwell-systems/fitwatch/internal/fitness"
	"github.com/blackwell-systems/fitwatch/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the fitwatch setup is healthy",
	Long: `Run a series of health checks against your fitwatch configuration and
fitness export directory. Prints a pass/fail line for each check and a
summary of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	checks := runDoctorChecks(cmd.Context(), cfg.DataDir, config.DBPath())

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		return writeJSON(doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		})
	}

	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range checks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// runDoctorChecks runs every health check against the export directory and
// database path.
func runDoctorChecks(ctx context.Context, dataDir, dbPath string) []doctorCheck {
	checks := []doctorCheck{checkDataDir(dataDir)}
	if !checks[0].Passed {
		return append(checks, checkDatabase(dbPath))
	}

	checks = append(checks, checkHistory(ctx, dataDir)...)
	checks = append(checks, checkPlan(dataDir))
	checks = append(checks, checkDatabase(dbPath))
	return checks
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkDataDir verifies that the export directory exists and is a directory.
func checkDataDir(dir string) doctorCheck {
	info, err := os.Stat(dir)
	if err != nil {
		return doctorCheck{
			Name:    "Export directory",
			Passed:  false,
			Message: fmt.Sprintf("not found: %s", dir),
		}
	}
	if !info.IsDir() {
		return doctorCheck{
			Name:    "Export directory",
			Passed:  false,
			Message: fmt.Sprintf("path exists but is not a directory: %s", dir),
		}
	}
	return doctorCheck{
		Name:    "Export directory",
		Passed:  true,
		Message: dir,
	}
}

// checkHistory loads the export and reports how much of each record kind
// was found. A decode failure fails a single check naming the error.
func checkHistory(ctx context.Context, dir string) []doctorCheck {
	h, err := fitness.LoadHistory(ctx, dir, logger)
	if err != nil {
		return []doctorCheck{{
			Name:    "Export files",
			Passed:  false,
			Message: err.Error(),
		}}
	}

	return []doctorCheck{
		countCheck("Workouts", len(h.Workouts), fitness.WorkoutsJSONLFile),
		countCheck("Calorie days", len(h.CalorieDays), fitness.CaloriesFile),
		countCheck("Weight samples", len(h.Weights), fitness.WeightsFile),
		checkProfile(dir, h.Profile),
	}
}

func countCheck(name string, n int, file string) doctorCheck {
	if n == 0 {
		return doctorCheck{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("none found (expected %s)", file),
		}
	}
	return doctorCheck{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%d found", n),
	}
}

// checkProfile reports the profile's target and goal. A missing profile
// passes since the configured target and defaults apply.
func checkProfile(dir string, p fitness.Profile) doctorCheck {
	if _, err := os.Stat(filepath.Join(dir, fitness.ProfileFile)); err != nil {
		return doctorCheck{
			Name:    "Profile",
			Passed:  true,
			Message: "not found; using configured target",
		}
	}
	goal := p.Goal
	if goal == "" {
		goal = "no goal"
	}
	return doctorCheck{
		Name:    "Profile",
		Passed:  true,
		Message: fmt.Sprintf("%s, %.0f kcal target", goal, p.TargetCalories),
	}
}

// checkPlan verifies that plan.json parses and its current week is in range.
func checkPlan(dir string) doctorCheck {
	plan, err := fitness.LoadPlan(dir)
	if err != nil {
		return doctorCheck{
			Name:    "Training plan",
			Passed:  false,
			Message: err.Error(),
		}
	}
	if plan == nil {
		return doctorCheck{
			Name:    "Training plan",
			Passed:  false,
			Message: fmt.Sprintf("%s not found (completion unavailable)", fitness.PlanFile),
		}
	}
	if _, ok := plan.Week(plan.CurrentWeek); !ok {
		return doctorCheck{
			Name:    "Training plan",
			Passed:  false,
			Message: fmt.Sprintf("current week %d out of range (plan has %d weeks)", plan.CurrentWeek, len(plan.Weeks)),
		}
	}
	return doctorCheck{
		Name:    "Training plan",
		Passed:  true,
		Message: fmt.Sprintf("%d weeks, current week %d", len(plan.Weeks), plan.CurrentWeek),
	}
}

// checkDatabase verifies that the SQLite database file exists.
func checkDatabase(dbPath string) doctorCheck {
	if _, err := os.Stat(dbPath); err != nil {
		return doctorCheck{
			Name:    "SQLite database",
			Passed:  false,
			Message: fmt.Sprintf("not found at %s (run 'fitwatch track' to create)", dbPath),
		}
	}
	return doctorCheck{
		Name:    "SQLite database",
		Passed:  true,
		Message: dbPath,
	}
}
