package classroom

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/ui/components"
	"github.com/abhisek/phishcourse/internal/ui/layout"
	"github.com/abhisek/phishcourse/internal/ui/theme"
)

func (c *ClassroomScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	top := []string{c.renderTabs(width)}
	if notice, ok := c.svc.Notice(); ok {
		top = append(top, theme.Notice.Render("✓ "+notice))
	}
	header := strings.Join(top, "\n")

	var body []string
	focus := 0
	id := c.section()
	switch {
	case id == course.SectionWelcome:
		body = c.renderWelcome(cw)
	case id == course.SectionAssessment:
		body = c.renderAssessment(cw)
		focus = len(body) - 1
	default:
		n, _ := course.ModuleNumber(id)
		body, focus = c.renderModule(n, cw)
	}

	avail := height - lipgloss.Height(header) - 1
	content := strings.Join(layout.Window(body, focus, avail), "\n")
	content = lipgloss.NewStyle().Width(cw).Render(content)

	return header + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// renderTabs draws the section bar. Completed modules carry a check mark.
func (c *ClassroomScreen) renderTabs(width int) string {
	tabs := c.svc.Tabs()
	compact := layout.IsCompactWidth(width)
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := t.Title
		if n, ok := course.ModuleNumber(t.ID); ok && compact {
			label = "M" + string(rune('0'+n))
		}
		if t.Completed {
			label = "✓ " + label
		}
		switch {
		case t.Active:
			parts = append(parts, theme.TabActive.Render(label))
		case t.Completed:
			parts = append(parts, theme.TabCompleted.Render(label))
		default:
			parts = append(parts, theme.TabIdle.Render(label))
		}
	}
	bar := lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, " "))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}

func (c *ClassroomScreen) renderWelcome(cw int) []string {
	co := c.svc.Course()
	wrap := lipgloss.NewStyle().Width(cw).Foreground(theme.Text)

	var lines []string
	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}

	add(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(co.Title))
	add("")
	for _, p := range co.Welcome.Body {
		add(wrap.Render(p))
	}
	add("")
	add(heading("Modules"))
	snap := c.svc.Snapshot()
	for _, m := range co.Modules {
		mark := "○"
		style := theme.Unselected
		if snap.IsCompleted(m.ID()) {
			mark = "✓"
			style = theme.Correct
		}
		add(style.Render("  " + mark + " " + m.Title))
	}
	add("")
	add(components.NewProgressBar("Progress", c.svc.Progress(), true, min(cw, 60)).View())
	add("")
	add(components.Button{Label: "Start Training", Focused: true}.View())
	return lines
}
