package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/router"
	"github.com/abhisek/phishcourse/internal/schedule"
	"github.com/abhisek/phishcourse/internal/screen"
	"github.com/abhisek/phishcourse/internal/screens/classroom"
	"github.com/abhisek/phishcourse/internal/screens/welcome"
	"github.com/abhisek/phishcourse/internal/training"
	"github.com/abhisek/phishcourse/internal/ui/layout"
	"github.com/abhisek/phishcourse/internal/ui/theme"
)

// PurposeAnnounce is the scheduler purpose that clears the section
// announcement.
const PurposeAnnounce schedule.Purpose = "announce"

const announceDuration = time.Second

const tagline = "Learn to spot the hook before it catches you."

// timerMsg delivers an elapsed scheduler task back into Update.
type timerMsg struct {
	task schedule.Task
}

// AppModel is the root Bubble Tea model. It owns the screen stack and drives
// the training service's scheduled tasks with tea.Tick.
type AppModel struct {
	svc      *training.Service
	router   *router.Router
	announce string
	width    int
	height   int
}

// New creates the root model. Unless resume is set the learner starts on
// the welcome section behind the splash screen.
func New(svc *training.Service, resume bool) *AppModel {
	m := &AppModel{svc: svc}

	var first screen.Screen = classroom.New(svc)
	if !resume {
		svc.ShowSection(context.Background(), course.SectionWelcome)
		first = welcome.New(tagline, func() screen.Screen { return classroom.New(svc) })
	}
	m.router = router.New(first)

	svc.OnSectionChanged(func(id string) {
		m.announce = "Now viewing: " + svc.Course().SectionTitle(id)
		svc.Timers().After(PurposeAnnounce, announceDuration, func() {
			m.announce = ""
		})
	})
	return m
}

func (m *AppModel) Init() tea.Cmd {
	m.svc.StartAutosave()
	return tea.Batch(m.router.Active().Init(), m.armTimers())
}

// armTimers turns every newly scheduled task into a tick.
func (m *AppModel) armTimers() tea.Cmd {
	tasks := m.svc.Timers().Drain()
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(tasks))
	for i, t := range tasks {
		cmds[i] = tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return timerMsg{task: t}
		})
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case timerMsg:
		m.svc.Timers().Fire(msg.task)
		return m, m.armTimers()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.svc.Save(context.Background())
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.armTimers())
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.svc.Progress(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 1
	if contentHeight < 0 {
		contentHeight = 0
	}

	status := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, theme.Hint.Render(m.announce))
	content := m.router.View(m.width, contentHeight) + "\n" + status
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(svc *training.Service, resume bool) error {
	p := tea.NewProgram(New(svc, resume))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
