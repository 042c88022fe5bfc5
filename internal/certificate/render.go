package certificate

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/ui/theme"
)

const heading = "CERTIFICATE OF COMPLETION"

// Text returns the plain-text certificate used for printing.
func Text(c *Certificate) string {
	var b strings.Builder
	fmt.Fprintln(&b, heading)
	fmt.Fprintln(&b, c.CourseTitle)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "This certifies that")
	fmt.Fprintf(&b, "    %s\n", c.Name)
	fmt.Fprintf(&b, "has successfully completed the %s\n", c.CourseTitle)
	fmt.Fprintf(&b, "with a score of %d%%\n", c.ScorePercent)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Date: %s\n", c.Date())
	fmt.Fprintf(&b, "Certificate ID: %s\n", c.ID)
	fmt.Fprintf(&b, "Course version: %s\n", c.CourseVersion)
	return b.String()
}

// Render draws the certificate as a bordered card no wider than width.
func Render(c *Certificate, width int) string {
	cardWidth := min(width-4, 64)
	if cardWidth < 30 {
		cardWidth = 30
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(heading)
	course := theme.Subtitle.Render(c.CourseTitle)
	name := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(c.Name)
	score := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("Score: %d%%", c.ScorePercent))
	meta := theme.Hint.Render(fmt.Sprintf("%s  ·  %s", c.Date(), shortID(c.ID)))

	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		course,
		"",
		theme.Body.Render("This certifies that"),
		name,
		theme.Body.Render("has successfully completed the training"),
		"",
		score,
		"",
		meta,
	)

	return lipgloss.NewStyle().
		Width(cardWidth).
		Align(lipgloss.Center).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2).
		Render(body)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
