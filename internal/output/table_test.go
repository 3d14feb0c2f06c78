package output

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/fitwatch/internal/insight"
)

func TestVisualLen_StripsANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"color", "\x1b[31mred\x1b[0m", 3},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
		{"bar glyphs", "██░░", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, visualLen(tc.input))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "hi        ", pad("hi", 10))
	assert.Equal(t, "hello", pad("hello", 5))
	assert.Equal(t, "toolong", pad("toolong", 3))
	// Styled text pads to its visible width.
	assert.Equal(t, 6, visualLen(pad("\x1b[31mred\x1b[0m", 6)))
}

func TestTable_Render(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Metric", "Value")
	tbl.AddRow("Consistency", "88")
	tbl.AddRow("Adherence", "100", "ignored")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Metric")
	assert.Contains(t, lines[1], "─")
	assert.Equal(t, "Consistency  88   ", lines[2])
	assert.NotContains(t, lines[3], "ignored")
	assert.Equal(t, tbl.Render(), tbl.String())
}

func TestTable_AlignRight(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Metric", "Delta").AlignRight(1, 7)
	tbl.AddRow("Overall", "+8.0")
	tbl.AddRow("Weight", "-1.5")
	tbl.AddRow("Streak", "+12.0")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Metric   Delta", lines[0])
	assert.Equal(t, "Overall   +8.0", lines[2])
	assert.Equal(t, "Streak   +12.0", lines[4])
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "   42", padLeft("42", 5))
	assert.Equal(t, "12345", padLeft("12345", 3))
}

func TestTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, NewTable().Render())
}

func TestSetNoColor_RoundTrip(t *testing.T) {
	SetNoColor(true)
	assert.True(t, IsNoColor())
	assert.NotContains(t, StyleHeader.Render("test"), "\x1b[")

	SetNoColor(false)
	assert.False(t, IsNoColor())
	assert.Equal(t, ColorPrimary, StyleHeader.GetForeground())
}

func TestShouldDisableColor(t *testing.T) {
	assert.True(t, ShouldDisableColor(true, os.Stdout))
	assert.True(t, ShouldDisableColor(false, nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.True(t, ShouldDisableColor(false, f), "regular files are not terminals")
}

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "████████░░ 80/100", ScoreBar(80, 10))
	assert.Equal(t, "░░░░░░░░░░ -5/100", ScoreBar(-5, 10))
	assert.Equal(t, "██████████ 120/100", ScoreBar(120, 10))
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "─", TrendArrow(0, true))
	assert.Equal(t, "▲ +2.5", TrendArrow(2.5, true))
	assert.Equal(t, "▼ -1.0", TrendArrow(-1, false))
	assert.Equal(t, "▲ +12%", TrendArrowPercent(12, true))
}

func TestWeightChange(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	assert.Equal(t, "-2.0 kg", WeightChange(-2, "weight_loss"))
	assert.Equal(t, "+1.5 kg", WeightChange(1.5, "muscle_gain"))
	assert.Equal(t, "0.0 kg", WeightChange(0, "weight_loss"))
}

func TestInsight(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := Insight(insight.Insight{Type: insight.TypeAlert, Title: "Improve Consistency", Message: "Your consistency is 40%."})
	assert.Equal(t, " ✗ Improve Consistency\n   Your consistency is 40%.", got)
	assert.Equal(t, "✓", InsightBadge(insight.TypeSuccess))
	assert.Equal(t, "·", InsightBadge("unknown"))
}

func TestSection_Width(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)
	defer SetWidth(80)

	SetWidth(40)
	assert.Equal(t, "\n Summary\n "+strings.Repeat("─", 26), Section("Summary"))
	SetWidth(5)
	assert.Contains(t, Section("x"), strings.Repeat("─", 26))
}
