package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/ui/theme"
)

// Button is a labelled action. Hidden buttons are not drawn; disabled ones
// are drawn dimmed.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
	Hidden   bool
}

// View renders the button.
func (b Button) View() string {
	if b.Hidden {
		return ""
	}
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.Border).Render(b.Label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}

// ButtonRow renders the visible buttons side by side.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if v := b.View(); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, interleave(parts, "  ")...)
}

func interleave(parts []string, sep string) []string {
	out := make([]string, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, strings.Repeat(" ", len(sep)))
		}
		out = append(out, p)
	}
	return out
}
