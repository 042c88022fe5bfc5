package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/logging"
	"github.com/abhisek/phishcourse/internal/router"
	"github.com/abhisek/phishcourse/internal/store"
	"github.com/abhisek/phishcourse/internal/training"
)

func newService(t *testing.T) *training.Service {
	t.Helper()
	return training.New(context.Background(), course.Default(), store.NewMemoryKV(), nil,
		logging.Discard(), training.Config{ExportDir: t.TempDir()})
}

func TestNewStartsWithSplash(t *testing.T) {
	svc := newService(t)
	svc.ShowSection(context.Background(), "module3")

	m := New(svc, false)
	if got := m.router.Active().Title(); got != "" {
		t.Errorf("expected splash screen first, got %q", got)
	}
	if got := svc.Snapshot().CurrentSection; got != course.SectionWelcome {
		t.Errorf("expected welcome section, got %q", got)
	}

	// Any key hands over to the classroom.
	_, cmd := m.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from the splash keypress")
	}
	msg := firstMsg(cmd)
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	m.Update(msg)
	if got := m.router.Active().Title(); got != "Welcome" {
		t.Errorf("expected classroom on welcome, got %q", got)
	}
}

func TestResumeSkipsSplash(t *testing.T) {
	svc := newService(t)
	svc.ShowSection(context.Background(), "module3")

	m := New(svc, true)
	if got := m.router.Active().Title(); got != "Social Engineering Tactics" {
		t.Errorf("expected resumed module title, got %q", got)
	}
}

func TestTimersDriveAutoAdvance(t *testing.T) {
	svc := newService(t)
	m := New(svc, true)
	m.Init()

	if err := svc.CompleteModule(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	for _, task := range svc.Timers().Drain() {
		m.Update(timerMsg{task: task})
	}

	if got := svc.Snapshot().CurrentSection; got != "module2" {
		t.Errorf("expected auto-advance to module2, got %q", got)
	}
	if m.announce != "Now viewing: Recognizing Phishing Emails" {
		t.Errorf("unexpected announcement %q", m.announce)
	}
	if _, ok := svc.Notice(); ok {
		t.Error("notice should have cleared")
	}
}

func TestAnnouncementClears(t *testing.T) {
	svc := newService(t)
	m := New(svc, true)

	svc.ShowSection(context.Background(), "module4")
	if m.announce == "" {
		t.Fatal("expected an announcement")
	}
	for _, task := range svc.Timers().Drain() {
		m.Update(timerMsg{task: task})
	}
	if m.announce != "" {
		t.Errorf("announcement should clear, got %q", m.announce)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := New(newService(t), true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestViewSmallTerminal(t *testing.T) {
	m := New(newService(t), true)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}

func TestViewRenders(t *testing.T) {
	m := New(newService(t), true)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.View()
}

// firstMsg runs cmd, unwrapping batches, and returns the first message that
// is not nil.
func firstMsg(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if m := firstMsg(c); m != nil {
				return m
			}
		}
		return nil
	}
	return msg
}
