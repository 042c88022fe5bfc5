package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/router"
	"github.com/abhisek/phishcourse/internal/screen"
	"github.com/abhisek/phishcourse/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const envelopeArt = `  ╭─────────────────╮
  │╲               ╱│
  │  ╲           ╱  │
  │    ╲  ◉ ◉  ╱    │
  │      ╲ ▽ ╱      │
  │        ╳        │
  ╰─────────────────╯`

// hookFrames bob the fishing hook above the envelope.
var hookFrames = []string{"  ⌡", " ⌡ "}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the course.
// Any key skips ahead.
type WelcomeScreen struct {
	next         func() screen.Screen
	tagline      string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen produced
// by next.
func New(tagline string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next, tagline: tagline}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(envelopeArt)

	// Phase 2+: the hook bobs above the envelope.
	if w.elapsed >= phase1End {
		hook := lipgloss.NewStyle().Foreground(theme.Accent).
			Render(strings.Repeat(" ", 9) + hookFrames[w.tickCount%len(hookFrames)])
		art = hook + "\n" + art
	}
	sections = append(sections, art)

	// Phase 3+: banner, tagline and hint.
	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(w.tagline))
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
