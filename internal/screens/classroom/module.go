package classroom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/training"
	"github.com/abhisek/phishcourse/internal/ui/components"
	"github.com/abhisek/phishcourse/internal/ui/theme"
)

type itemKind int

const (
	itemSite itemKind = iota
	itemChecklist
	itemQuizOption
	itemCheckQuiz
	itemComplete
)

// item is one focusable line of a module page.
type item struct {
	kind  itemKind
	index int
}

// moduleState is the presentation state of one module page. None of it is
// persisted.
type moduleState struct {
	cursor   int
	quizPick int
	feedback *training.QuizFeedback
	verdicts map[int]string
}

func (c *ClassroomScreen) moduleState(n int) *moduleState {
	st, ok := c.modules[n]
	if !ok {
		st = &moduleState{quizPick: components.NoChoice, verdicts: make(map[int]string)}
		c.modules[n] = st
	}
	return st
}

// moduleItems lists the focusable lines of module m in display order.
func (c *ClassroomScreen) moduleItems(m course.Module) []item {
	var items []item
	for i := range m.Sites {
		items = append(items, item{kind: itemSite, index: i})
	}
	if m.Number == course.ModuleCount {
		for i := range c.svc.Course().Checklist {
			items = append(items, item{kind: itemChecklist, index: i})
		}
	}
	for i := range m.Quiz.Options {
		items = append(items, item{kind: itemQuizOption, index: i})
	}
	items = append(items, item{kind: itemCheckQuiz}, item{kind: itemComplete})
	return items
}

func (c *ClassroomScreen) updateModule(ctx context.Context, n int, kmsg tea.KeyPressMsg) {
	m, ok := c.svc.Course().Module(n)
	if !ok {
		return
	}
	st := c.moduleState(n)
	items := c.moduleItems(m)

	switch kmsg.String() {
	case "up", "k":
		if st.cursor > 0 {
			st.cursor--
		}
	case "down", "j":
		if st.cursor < len(items)-1 {
			st.cursor++
		}
	case "enter", "space", " ":
		c.activate(ctx, m, st, items[st.cursor])
	}
}

func (c *ClassroomScreen) activate(ctx context.Context, m course.Module, st *moduleState, it item) {
	switch it.kind {
	case itemSite:
		if v, err := c.svc.CheckSite(ctx, m.Number, it.index); err == nil {
			st.verdicts[it.index] = v
		}
	case itemChecklist:
		c.svc.ToggleChecklist(ctx, it.index)
	case itemQuizOption:
		st.quizPick = it.index
		st.feedback = nil
	case itemCheckQuiz:
		selected := ""
		if st.quizPick != components.NoChoice {
			selected = m.Quiz.Options[st.quizPick].Value
		}
		fb, err := c.svc.CheckQuizAnswer(ctx, m.Number, selected, m.Quiz.Correct)
		if err != nil && !errors.Is(err, training.ErrNoSelection) {
			return
		}
		st.feedback = &fb
	case itemComplete:
		c.svc.CompleteModule(ctx, m.Number)
	}
}

// renderModule returns the module page lines and the index of the line
// holding the focused item.
func (c *ClassroomScreen) renderModule(n, cw int) ([]string, int) {
	m, ok := c.svc.Course().Module(n)
	if !ok {
		return nil, 0
	}
	st := c.moduleState(n)
	items := c.moduleItems(m)
	if st.cursor >= len(items) {
		st.cursor = len(items) - 1
	}
	focus := items[st.cursor]
	focusLine := 0

	var lines []string
	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}
	addItem := func(it item, s string) {
		if it == focus {
			focusLine = len(lines)
		}
		add(s)
	}
	wrap := lipgloss.NewStyle().Width(cw)

	add(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Module %d: %s", m.Number, m.Title)))
	add(wrap.Foreground(theme.Text).Render(m.Summary))
	add("")
	points := make([]string, 0, len(m.Points))
	for _, p := range m.Points {
		points = append(points, "• "+p)
	}
	pointStyle := lipgloss.NewStyle().Width(max(cw-8, 10)).Foreground(theme.Text)
	add(components.Section("Key points", pointStyle.Render(strings.Join(points, "\n")), cw-2))

	if len(m.Sites) > 0 {
		add("")
		add(heading("Spot the fake website"))
		for i, s := range m.Sites {
			it := item{kind: itemSite, index: i}
			line := cursorPrefix(it == focus) + s.URL
			style := theme.Unselected
			if v, ok := st.verdicts[i]; ok {
				line += "  " + v
				style = theme.Correct
				if s.Phishing {
					style = theme.Incorrect
				}
			} else if it == focus {
				style = theme.Selected
			}
			addItem(it, style.Render(line))
		}
	}

	if m.Number == course.ModuleCount && len(c.svc.Course().Checklist) > 0 {
		add("")
		add(heading("Daily security checklist"))
		checked := c.svc.Checklist()
		for i, label := range c.svc.Course().Checklist {
			it := item{kind: itemChecklist, index: i}
			box := "[ ]"
			if checked[i] {
				box = "[x]"
			}
			style := theme.Unselected
			if it == focus {
				style = theme.Selected
			}
			addItem(it, style.Render(cursorPrefix(it == focus)+box+" "+label))
		}
		if c.svc.ChecklistComplete() {
			add(theme.Correct.Render("  Excellent! You've mastered the daily security checklist."))
		}
	}

	add("")
	add(heading("Knowledge check"))
	add(wrap.Foreground(theme.Text).Bold(true).Render(m.Quiz.Prompt))
	for i, o := range m.Quiz.Options {
		it := item{kind: itemQuizOption, index: i}
		mark := "( )"
		if st.quizPick == i {
			mark = "(•)"
		}
		style := theme.Unselected
		if it == focus {
			style = theme.Selected
		}
		addItem(it, style.Render(fmt.Sprintf("%s%s %s) %s", cursorPrefix(it == focus), mark, strings.ToUpper(o.Value), o.Label)))
	}
	checkBtn := components.Button{Label: "Check answer", Focused: focus.kind == itemCheckQuiz}
	addItem(item{kind: itemCheckQuiz}, checkBtn.View())
	if st.feedback != nil {
		style := theme.Incorrect
		if st.feedback.Correct {
			style = theme.Correct
		}
		add(style.Render(st.feedback.Message))
	}

	add("")
	done := c.svc.Snapshot().IsCompleted(m.ID())
	label := "Complete Module"
	if done {
		label = "✓ Module completed"
	}
	completeBtn := components.Button{Label: label, Focused: focus.kind == itemComplete}
	addItem(item{kind: itemComplete}, completeBtn.View())

	return lines, focusLine
}

func heading(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s)
}

func cursorPrefix(focused bool) string {
	if focused {
		return "▸ "
	}
	return "  "
}
