package classroom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/assessment"
	"github.com/abhisek/phishcourse/internal/router"
	"github.com/abhisek/phishcourse/internal/screens/results"
	"github.com/abhisek/phishcourse/internal/ui/components"
	"github.com/abhisek/phishcourse/internal/ui/layout"
	"github.com/abhisek/phishcourse/internal/ui/theme"
)

func (c *ClassroomScreen) assessmentHints() []layout.KeyHint {
	e := c.svc.Assessment()
	if e.Phase() == assessment.PhaseResults {
		return []layout.KeyHint{
			{Key: "Enter", Description: "View results"},
			{Key: "R", Description: "Retake"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "←→", Description: "Previous/Next"},
	}
	if e.Current().ShowSubmit {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
	}
	return hints
}

// questionChoice builds the option list for the current question, keeping
// the cursor when the question has not changed.
func (c *ClassroomScreen) questionChoice() components.Choice {
	v := c.svc.Assessment().Current()
	if v.Index != c.assessIndex {
		c.assessIndex = v.Index
		c.assessCursor = max(v.Selected, 0)
	}
	ch := components.NewChoice(v.Prompt, v.Options)
	ch.Chosen = v.Selected
	ch.Cursor = min(c.assessCursor, max(len(v.Options)-1, 0))
	return ch
}

func (c *ClassroomScreen) updateAssessment(ctx context.Context, kmsg tea.KeyPressMsg) tea.Cmd {
	e := c.svc.Assessment()

	if e.Phase() == assessment.PhaseResults {
		switch kmsg.String() {
		case "enter":
			if res, ok := e.Result(); ok {
				return c.showResults(res)
			}
		case "r", "R":
			c.svc.RetakeAssessment(ctx)
			c.assessErr = ""
		}
		return nil
	}

	switch kmsg.String() {
	case "left", "h":
		e.Previous()
		c.assessErr = ""
		return nil
	case "right", "l":
		e.Next()
		c.assessErr = ""
		return nil
	case "s", "S":
		if !e.Current().ShowSubmit {
			return nil
		}
		res, err := c.svc.SubmitAssessment(ctx)
		if err != nil {
			var inc *assessment.IncompleteError
			if errors.As(err, &inc) {
				c.assessErr = inc.Error()
			}
			return nil
		}
		c.assessErr = ""
		return c.showResults(res)
	}

	ch := c.questionChoice()
	ch, changed := ch.Update(kmsg)
	c.assessCursor = ch.Cursor
	if changed {
		e.Select(ch.Chosen)
		c.assessErr = ""
	}
	return nil
}

func (c *ClassroomScreen) showResults(res assessment.Result) tea.Cmd {
	scr := results.New(c.svc, res)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}

func (c *ClassroomScreen) renderAssessment(cw int) []string {
	co := c.svc.Course()
	e := c.svc.Assessment()

	var lines []string
	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}
	wrap := lipgloss.NewStyle().Width(cw)

	add(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(co.AssessmentTitle))
	add(wrap.Foreground(theme.TextDim).Render(co.AssessmentIntro))
	add("")

	if e.Phase() == assessment.PhaseResults {
		res, _ := e.Result()
		style := theme.Incorrect
		if res.Passed {
			style = theme.Correct
		}
		add(style.Render(fmt.Sprintf("Your score: %d%% (%d/%d)", res.Percent, res.Correct, res.Total)))
		add(wrap.Foreground(theme.Text).Render(res.Feedback()))
		add("")
		add(theme.Hint.Render("Press Enter to review your answers or R to retake the assessment."))
		return lines
	}

	v := e.Current()
	add(components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", v.Number, v.Total),
		100*v.Number/max(v.Total, 1), false, min(cw, 60)).View())
	add("")
	add(c.questionChoice().View(true))
	add("")
	add(components.ButtonRow(
		components.Button{Label: "← Previous", Disabled: !v.CanPrevious},
		components.Button{Label: "Next →", Hidden: !v.ShowNext},
		components.Button{Label: "Submit (S)", Hidden: !v.ShowSubmit, Focused: v.ShowSubmit},
	))
	if c.assessErr != "" {
		add("")
		add(wrap.Foreground(theme.Error).Render(c.assessErr))
	}
	return lines
}
