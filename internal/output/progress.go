package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s", ScoreStyle(score).Render(bar), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// ScoreStyle picks the style for a 0-100 score band.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return StyleSuccess
	case score >= 40:
		return StyleWarning
	default:
		return StyleError
	}
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// The higherIsBetter parameter decides which direction is styled as good.
func TrendArrow(delta float64, higherIsBetter bool) string {
	return arrow(delta, higherIsBetter, "%+.1f")
}

// TrendArrowPercent returns a styled trend indicator for a percentage delta.
func TrendArrowPercent(delta float64, higherIsBetter bool) string {
	return arrow(delta, higherIsBetter, "%+.0f%%")
}

// WeightChange renders a weight trend in kg, styled by whether the direction
// matches the goal. Goals other than weight_loss and muscle_gain render muted.
func WeightChange(kg float64, goal string) string {
	text := fmt.Sprintf("%+.1f kg", kg)
	if kg == 0 {
		return StyleMuted.Render("0.0 kg")
	}
	switch goal {
	case "weight_loss":
		if kg < 0 {
			return StyleSuccess.Render(text)
		}
		return StyleError.Render(text)
	case "muscle_gain":
		if kg > 0 {
			return StyleSuccess.Render(text)
		}
		return StyleError.Render(text)
	}
	return StyleMuted.Render(text)
}

func arrow(delta float64, higherIsBetter bool, format string) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	symbol := "▼"
	if isPositive {
		symbol = "▲"
	}
	text := symbol + " " + fmt.Sprintf(format, delta)

	if isImproved {
		return StyleSuccess.Render(text)
	}
	return StyleError.Render(text)
}

// Section returns a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", ruleWidth))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
