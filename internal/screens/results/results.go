package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/assessment"
	"github.com/abhisek/phishcourse/internal/router"
	"github.com/abhisek/phishcourse/internal/screen"
	certscreen "github.com/abhisek/phishcourse/internal/screens/certificate"
	"github.com/abhisek/phishcourse/internal/training"
	"github.com/abhisek/phishcourse/internal/ui/components"
	"github.com/abhisek/phishcourse/internal/ui/layout"
	"github.com/abhisek/phishcourse/internal/ui/theme"
)

// ResultsScreen shows the score of a submitted assessment with a review of
// every question.
type ResultsScreen struct {
	svc    *training.Service
	result assessment.Result
	menu   components.Menu
	scroll int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for res.
func New(svc *training.Service, res assessment.Result) *ResultsScreen {
	s := &ResultsScreen{svc: svc, result: res}

	certItem := components.MenuItem{
		Label: "Get your certificate",
		Action: func() tea.Cmd {
			next := certscreen.New(svc)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		},
	}
	if !res.Passed {
		certItem.Label = fmt.Sprintf("Get your certificate (%d%% required)", assessment.PassingScore)
		certItem.Disabled = true
	}
	retake := components.MenuItem{
		Label: "Retake assessment",
		Action: func() tea.Cmd {
			svc.RetakeAssessment(context.Background())
			return func() tea.Msg { return router.PopScreenMsg{} }
		},
	}
	back := components.MenuItem{
		Label:  "Back to course",
		Action: func() tea.Cmd { return func() tea.Msg { return router.PopScreenMsg{} } },
	}

	if res.Passed {
		s.menu = components.NewMenu([]components.MenuItem{certItem, retake, back})
	} else {
		s.menu = components.NewMenu([]components.MenuItem{retake, certItem, back})
	}
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Assessment Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "PgUp/PgDn", Description: "Scroll review"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "pgdown":
			s.scroll++
			return s, nil
		case "pgup":
			if s.scroll > 0 {
				s.scroll--
			}
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	res := s.result
	cw := components.ContentWidth(width)

	scoreStyle := theme.Incorrect
	heading := "Keep practising"
	if res.Passed {
		scoreStyle = theme.Correct
		heading = "Congratulations!"
	}

	top := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(heading),
		"",
		scoreStyle.Render(fmt.Sprintf("%d%%", res.Percent)),
		theme.Subtitle.Render(fmt.Sprintf("%d of %d correct", res.Correct, res.Total)),
		"",
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.Text).Render(res.Feedback()),
		"",
		s.menu.View(),
		"",
	)

	review := s.reviewLines(cw)
	avail := height - lipgloss.Height(top) - 2
	if s.scroll > len(review) {
		s.scroll = len(review)
	}
	window := layout.Window(review[min(s.scroll, len(review)):], 0, avail)

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(cw, 60)))
	body := lipgloss.NewStyle().Width(cw).Render(strings.Join(window, "\n"))

	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, top),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, body),
	)
}

// reviewLines lists every question with its outcome. Explanations are shown
// for wrong answers only.
func (s *ResultsScreen) reviewLines(cw int) []string {
	wrap := lipgloss.NewStyle().Width(cw - 4)
	var lines []string
	for _, r := range s.result.Review {
		mark, style := "✓", theme.Correct
		if !r.IsCorrect {
			mark, style = "✗", theme.Incorrect
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %d. ", mark, r.Number))+
			lipgloss.NewStyle().Foreground(theme.Text).Render(r.Prompt))
		if !r.IsCorrect && r.Explanation != "" {
			exp := wrap.Foreground(theme.TextDim).Italic(true).Render(r.Explanation)
			for _, l := range strings.Split(exp, "\n") {
				lines = append(lines, "    "+l)
			}
		}
	}
	return lines
}
