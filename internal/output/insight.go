package output

import (
	"fmt"

	"github.com/blackwell-systems/fitwatch/internal/insight"
)

// InsightBadge returns a short styled marker for an insight type.
func InsightBadge(t insight.Type) string {
	switch t {
	case insight.TypeSuccess:
		return StyleSuccess.Render("✓")
	case insight.TypeWarning:
		return StyleWarning.Render("!")
	case insight.TypeAlert:
		return StyleError.Render("✗")
	}
	return StyleMuted.Render("·")
}

// Insight renders one insight as a badge and title line followed by its
// indented message.
func Insight(in insight.Insight) string {
	return fmt.Sprintf(" %s %s\n   %s", InsightBadge(in.Type), StyleBold.Render(in.Title), StyleMuted.Render(in.Message))
}
