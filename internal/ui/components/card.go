package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for course content.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 86 {
		w = 86
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Section renders a bold heading over a card.
func Section(heading, content string, cw int) string {
	h := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(heading)
	return h + "\n" + Card(content, cw)
}
