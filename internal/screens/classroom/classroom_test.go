package classroom

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phishcourse/internal/assessment"
	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/logging"
	"github.com/abhisek/phishcourse/internal/router"
	"github.com/abhisek/phishcourse/internal/screens/results"
	"github.com/abhisek/phishcourse/internal/store"
	"github.com/abhisek/phishcourse/internal/training"
)

func newTestClassroom(t *testing.T) (*ClassroomScreen, *training.Service) {
	t.Helper()
	svc := training.New(context.Background(), course.Default(), store.NewMemoryKV(), nil,
		logging.Discard(), training.Config{ExportDir: t.TempDir()})
	return New(svc), svc
}

func press(c *ClassroomScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = c.Update(k)
	}
	return cmd
}

var (
	keyEnter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyDown     = tea.KeyPressMsg{Code: tea.KeyDown}
	keyRight    = tea.KeyPressMsg{Code: tea.KeyRight}
	keyTab      = tea.KeyPressMsg{Code: tea.KeyTab}
	keyShiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
)

func letter(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// focus moves the module cursor onto the first item of kind.
func focus(t *testing.T, c *ClassroomScreen, kind itemKind) {
	t.Helper()
	n, _ := course.ModuleNumber(c.section())
	m, _ := c.svc.Course().Module(n)
	for i, it := range c.moduleItems(m) {
		if it.kind == kind {
			c.moduleState(n).cursor = i
			return
		}
	}
	t.Fatalf("no item of kind %d in module %d", kind, n)
}

func TestWelcomeEnterStartsTraining(t *testing.T) {
	c, svc := newTestClassroom(t)
	press(c, keyEnter)
	if got := svc.Snapshot().CurrentSection; got != "module1" {
		t.Errorf("expected module1, got %q", got)
	}
	if c.Title() != "What is Phishing?" {
		t.Errorf("Title = %q", c.Title())
	}
}

func TestTabCyclesSections(t *testing.T) {
	c, svc := newTestClassroom(t)
	for _, want := range []string{"module1", "module2", "module3", "module4", "module5", "assessment", "welcome"} {
		press(c, keyTab)
		if got := svc.Snapshot().CurrentSection; got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	press(c, keyShiftTab)
	if got := svc.Snapshot().CurrentSection; got != course.SectionAssessment {
		t.Errorf("shift+tab from welcome should wrap to assessment, got %q", got)
	}
}

func TestQuizWithoutSelection(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), "module1")

	focus(t, c, itemCheckQuiz)
	press(c, keyEnter)

	if !strings.Contains(c.View(100, 200), training.NoSelectionMessage) {
		t.Error("expected the no-selection message")
	}
	if _, ok := svc.Snapshot().ModuleScores["module1"]; ok {
		t.Error("no score should be recorded without a selection")
	}
}

func TestQuizCorrectAnswer(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), "module1")

	// Module 1's answer is option b.
	focus(t, c, itemQuizOption)
	press(c, keyDown, keyEnter)
	focus(t, c, itemCheckQuiz)
	press(c, keyEnter)

	if got := svc.Snapshot().ModuleScores["module1"]; got != 1 {
		t.Errorf("module1 score = %d, want 1", got)
	}
	if !strings.Contains(c.View(100, 200), "Correct! Well done.") {
		t.Error("expected correct feedback")
	}
}

func TestCompleteModuleButton(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), "module2")

	focus(t, c, itemComplete)
	press(c, keyEnter)

	if !svc.Snapshot().IsCompleted("module2") {
		t.Fatal("module2 should be completed")
	}
	view := c.View(100, 200)
	if !strings.Contains(view, "Module 2 completed successfully!") {
		t.Error("expected completion notice")
	}
	if !strings.Contains(view, "Module completed") {
		t.Error("expected completed button label")
	}
}

func TestSiteCheckReveals(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), "module2")

	focus(t, c, itemSite)
	press(c, keyDown, keyEnter)

	if !strings.Contains(c.View(100, 200), "DANGEROUS - Phishing attempt") {
		t.Error("expected the second site to be revealed as phishing")
	}
}

func TestChecklistInLastModule(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), "module5")

	focus(t, c, itemChecklist)
	for range svc.Course().Checklist {
		press(c, keyEnter, keyDown)
	}
	if !svc.ChecklistComplete() {
		t.Fatal("expected every checklist item checked")
	}
	if !strings.Contains(c.View(100, 200), "mastered the daily security checklist") {
		t.Error("expected checklist completion message")
	}
}

func TestAssessmentIncompleteSubmit(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), course.SectionAssessment)

	for i := 0; i < 9; i++ {
		press(c, keyRight)
	}
	if cmd := press(c, letter('s')); cmd != nil {
		t.Error("incomplete submit should not navigate")
	}
	if !strings.Contains(c.View(100, 200), "Please answer all questions. Missing: Question 1, 2") {
		t.Error("expected missing-questions message")
	}
}

func TestAssessmentSubmitPushesResults(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), course.SectionAssessment)
	bank := svc.Course().Bank

	var cmd tea.Cmd
	for i := 0; i < bank.Len(); i++ {
		q, _ := bank.Question(i)
		press(c, letter(rune('a'+q.Correct)))
		if i < bank.Len()-1 {
			press(c, keyRight)
		}
	}
	cmd = press(c, letter('s'))
	if cmd == nil {
		t.Fatal("expected a command after submitting")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("expected results screen, got %T", push.Screen)
	}
	if got := svc.Snapshot().FinalScore; got != 100 {
		t.Errorf("FinalScore = %d, want 100", got)
	}
	if svc.Assessment().Phase() != assessment.PhaseResults {
		t.Error("expected results phase")
	}

	// Retake from the classroom resets the attempt.
	press(c, letter('r'))
	if svc.Assessment().Phase() != assessment.PhaseQuestions {
		t.Error("expected question phase after retake")
	}
}

func TestAssessmentSelectionSurvivesNavigation(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), course.SectionAssessment)

	press(c, letter('c'), keyRight, tea.KeyPressMsg{Code: tea.KeyLeft})
	if got := svc.Assessment().Current().Selected; got != 2 {
		t.Errorf("expected restored selection 2, got %d", got)
	}
}

func TestKeyHintsPerSection(t *testing.T) {
	c, svc := newTestClassroom(t)
	if !hasHint(c, "Start training") {
		t.Error("welcome should offer Start training")
	}
	svc.ShowSection(context.Background(), course.SectionAssessment)
	if !hasHint(c, "Previous/Next") {
		t.Error("assessment should offer Previous/Next")
	}
}

func TestViewShowsTabs(t *testing.T) {
	c, _ := newTestClassroom(t)
	view := c.View(240, 40)
	for _, want := range []string{"Welcome", "Final Assessment", "Start Training"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func hasHint(c *ClassroomScreen, desc string) bool {
	for _, h := range c.KeyHints() {
		if h.Description == desc {
			return true
		}
	}
	return false
}

func TestModulePageShowsKeyPoints(t *testing.T) {
	c, svc := newTestClassroom(t)
	svc.ShowSection(context.Background(), "module1")

	view := c.View(120, 200)
	if !strings.Contains(view, "Key points") {
		t.Error("expected the key points card")
	}
	if !strings.Contains(view, "phishing emails are sent every day") {
		t.Error("expected the module's first point")
	}
}
