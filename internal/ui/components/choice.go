package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/ui/theme"
)

// NoChoice marks a Choice with nothing picked.
const NoChoice = -1

// Choice is a single-select radio list. The cursor moves with up/down and
// space or enter picks the option under it.
type Choice struct {
	Prompt  string
	Options []string
	Cursor  int
	Chosen  int

	// Reveal colours Correct green and a wrong Chosen red.
	Reveal  bool
	Correct int
}

// NewChoice creates a Choice with nothing picked.
func NewChoice(prompt string, options []string) Choice {
	return Choice{Prompt: prompt, Options: options, Chosen: NoChoice, Correct: NoChoice}
}

// Update handles keyboard navigation. It reports whether the pick changed.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	if c.Reveal {
		return c, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, false
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "enter":
		if c.Chosen != c.Cursor {
			c.Chosen = c.Cursor
			return c, true
		}
	case "a", "b", "c", "d":
		i := int(kmsg.String()[0] - 'a')
		if i < len(c.Options) {
			c.Cursor = i
			if c.Chosen != i {
				c.Chosen = i
				return c, true
			}
		}
	}
	return c, false
}

// View renders the prompt and options.
func (c Choice) View(focused bool) string {
	var b strings.Builder
	if c.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
		b.WriteString("\n\n")
	}

	for i, opt := range c.Options {
		mark := "( )"
		if i == c.Chosen {
			mark = "(•)"
		}
		prefix := "  "
		if focused && i == c.Cursor && !c.Reveal {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %c) %s", prefix, mark, 'A'+i, opt)

		style := theme.Unselected
		switch {
		case c.Reveal && i == c.Correct:
			style = theme.Correct
		case c.Reveal && i == c.Chosen:
			style = theme.Incorrect
		case c.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case focused && i == c.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		if i < len(c.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
