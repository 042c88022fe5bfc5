package training

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/phishcourse/internal/assessment"
	"github.com/abhisek/phishcourse/internal/certificate"
	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/engagement"
	"github.com/abhisek/phishcourse/internal/navigation"
	"github.com/abhisek/phishcourse/internal/progress"
	"github.com/abhisek/phishcourse/internal/schedule"
	"github.com/abhisek/phishcourse/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(context.Background(), course.Default(), st.KV(), st.EventRepo(), logger, Config{
		ExportDir: filepath.Join(t.TempDir(), "exports"),
	})
	return svc, st
}

// passAssessment answers every question, getting wrong the ones in wrong.
func passAssessment(t *testing.T, svc *Service, wrong int) assessment.Result {
	t.Helper()
	ctx := context.Background()
	svc.ShowSection(ctx, course.SectionAssessment)
	e := svc.Assessment()
	bank := svc.Course().Bank
	for i := 0; i < bank.Len(); i++ {
		q, _ := bank.Question(i)
		pick := q.Correct
		if i < wrong {
			pick = (q.Correct + 1) % 4
		}
		require.NoError(t, e.Select(pick))
		e.Next()
	}
	res, err := svc.SubmitAssessment(ctx)
	require.NoError(t, err)
	return res
}

// fireNow runs the armed task for purpose without waiting for its delay.
func fireNow(svc *Service, purpose schedule.Purpose) bool {
	fired := false
	for _, task := range svc.Timers().Drain() {
		if task.Purpose == purpose {
			fired = svc.Timers().Fire(task) || fired
		}
	}
	return fired
}

func TestStartTraining(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, course.SectionWelcome, svc.Snapshot().CurrentSection)
	require.True(t, svc.StartTraining(context.Background()))
	assert.Equal(t, "module1", svc.Snapshot().CurrentSection)
}

func TestProgressSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(path)
	require.NoError(t, err)
	svc := New(ctx, course.Default(), st.KV(), st.EventRepo(), logger, Config{})
	svc.ShowSection(ctx, "module3")
	require.NoError(t, svc.CompleteModule(ctx, 1))
	require.NoError(t, svc.CompleteModule(ctx, 2))
	require.NoError(t, st.Close())

	st, err = store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	svc = New(ctx, course.Default(), st.KV(), st.EventRepo(), logger, Config{})
	snap := svc.Snapshot()
	assert.Equal(t, "module3", snap.CurrentSection)
	assert.Equal(t, []string{"module1", "module2"}, snap.CompletedModules)
	assert.Equal(t, 40, svc.Progress())
}

func TestCompleteModuleTracksOnce(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CompleteModule(ctx, 1))
	require.NoError(t, svc.CompleteModule(ctx, 1))

	counts, err := st.EventRepo().CountByAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[engagement.ActionModuleComplete])
}

func TestCompleteModuleAutoAdvance(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	var announced []string
	svc.OnSectionChanged(func(id string) { announced = append(announced, id) })

	require.NoError(t, svc.CompleteModule(ctx, 3))
	notice, ok := svc.Notice()
	require.True(t, ok)
	assert.Equal(t, "Module 3 completed successfully!", notice)

	assert.True(t, fireNow(svc, navigation.PurposeAdvance))
	assert.Equal(t, "module4", svc.Snapshot().CurrentSection)
	assert.Equal(t, []string{"module4"}, announced)

	counts, err := st.EventRepo().CountByAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[engagement.ActionSectionView])
}

func TestCompleteModuleUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.CompleteModule(context.Background(), 7)
	assert.ErrorIs(t, err, navigation.ErrUnknownModule)
}

func TestCheckQuizAnswer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	fb, err := svc.CheckQuizAnswer(ctx, 1, "b", "b")
	require.NoError(t, err)
	assert.True(t, fb.Correct)
	assert.Equal(t, "Correct! Well done.", fb.Message)
	assert.Equal(t, 1, svc.Snapshot().ModuleScores["module1"])

	fb, err = svc.CheckQuizAnswer(ctx, 1, "a", "b")
	require.NoError(t, err)
	assert.False(t, fb.Correct)
	assert.Contains(t, fb.Message, "Incorrect")
	assert.Equal(t, 0, svc.Snapshot().ModuleScores["module1"])
}

func TestCheckQuizAnswerNoSelection(t *testing.T) {
	svc, _ := newTestService(t)
	fb, err := svc.CheckQuizAnswer(context.Background(), 2, "", "c")
	assert.True(t, errors.Is(err, ErrNoSelection))
	assert.Equal(t, NoSelectionMessage, fb.Message)
	_, scored := svc.Snapshot().ModuleScores["module2"]
	assert.False(t, scored)
}

func TestCheckQuizAnswerUnknownModule(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CheckQuizAnswer(context.Background(), 0, "a", "a")
	assert.ErrorIs(t, err, navigation.ErrUnknownModule)
}

func TestCheckSite(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	m, _ := svc.Course().Module(2)

	for i, site := range m.Sites {
		verdict, err := svc.CheckSite(ctx, 2, i)
		require.NoError(t, err)
		assert.Equal(t, site.Verdict(), verdict)
	}

	_, err := svc.CheckSite(ctx, 2, len(m.Sites))
	assert.ErrorIs(t, err, ErrUnknownSite)
	_, err = svc.CheckSite(ctx, 9, 0)
	assert.ErrorIs(t, err, navigation.ErrUnknownModule)
}

func TestChecklist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	n := len(svc.Course().Checklist)
	require.Positive(t, n)

	for i := 0; i < n-1; i++ {
		assert.False(t, svc.ToggleChecklist(ctx, i))
	}
	assert.True(t, svc.ToggleChecklist(ctx, n-1))
	assert.True(t, svc.ChecklistComplete())

	assert.False(t, svc.ToggleChecklist(ctx, 0))
	assert.False(t, svc.Checklist()[0])

	// Out of range is ignored.
	assert.False(t, svc.ToggleChecklist(ctx, 99))
}

func TestSubmitAssessmentRecordsScore(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	res := passAssessment(t, svc, 2)
	assert.Equal(t, 80, res.Percent)
	assert.True(t, res.Passed)
	assert.Equal(t, 80, svc.Snapshot().FinalScore)

	loaded := progress.NewStore(st.KV(), nil).Load(ctx)
	assert.Equal(t, 80, loaded.FinalScore)
}

func TestSubmitAssessmentIncomplete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.ShowSection(ctx, course.SectionAssessment)

	_, err := svc.SubmitAssessment(ctx)
	var inc *assessment.IncompleteError
	require.ErrorAs(t, err, &inc)
	assert.Len(t, inc.Missing, 10)
	assert.Equal(t, 0, svc.Snapshot().FinalScore)
}

func TestEnteringAssessmentResetsAttempt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	passAssessment(t, svc, 0)
	require.Equal(t, assessment.PhaseResults, svc.Assessment().Phase())

	svc.ShowSection(ctx, "module1")
	svc.ShowSection(ctx, course.SectionAssessment)
	assert.Equal(t, assessment.PhaseQuestions, svc.Assessment().Phase())
	assert.Equal(t, 0, svc.Assessment().Current().Index)
}

func TestRetakeAssessment(t *testing.T) {
	svc, _ := newTestService(t)
	passAssessment(t, svc, 5)
	svc.RetakeAssessment(context.Background())
	assert.Equal(t, assessment.PhaseQuestions, svc.Assessment().Phase())
	// The recorded score stays until a new submission.
	assert.Equal(t, 50, svc.Snapshot().FinalScore)
}

func TestIssueCertificate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	passAssessment(t, svc, 1)

	c, err := svc.IssueCertificate(ctx, " Grace Hopper ")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", c.Name)
	assert.Equal(t, 90, c.ScorePercent)
	assert.Equal(t, "Grace Hopper", svc.Snapshot().UserName)

	paths, err := svc.ExportCertificate(ctx, c)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestIssueCertificateRequiresPass(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.IssueCertificate(ctx, "Grace")
	assert.ErrorIs(t, err, certificate.ErrNotEligible)

	passAssessment(t, svc, 3)
	_, err = svc.IssueCertificate(ctx, "Grace")
	assert.ErrorIs(t, err, certificate.ErrNotEligible)
	assert.Equal(t, progress.DefaultUserName, svc.Snapshot().UserName)
}

func TestIssueCertificateRequiresName(t *testing.T) {
	svc, _ := newTestService(t)
	passAssessment(t, svc, 0)
	_, err := svc.IssueCertificate(context.Background(), "  ")
	assert.ErrorIs(t, err, certificate.ErrNameRequired)
}

func TestAutosaveRearms(t *testing.T) {
	svc, _ := newTestService(t)
	svc.StartAutosave()

	tasks := svc.Timers().Drain()
	require.Len(t, tasks, 1)
	assert.Equal(t, PurposeAutosave, tasks[0].Purpose)
	assert.Equal(t, DefaultAutosaveInterval, tasks[0].Delay)

	require.True(t, svc.Timers().Fire(tasks[0]))
	assert.True(t, svc.Timers().Pending(PurposeAutosave))
	assert.Len(t, svc.Timers().Drain(), 1)
}

func TestTrackEngagement(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	svc.TrackEngagement(ctx, "custom", map[string]any{"k": "v"})

	events, err := st.EventRepo().RecentEngagement(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "custom", events[0].Action)
	assert.Equal(t, svc.SessionID(), events[0].SessionID)
}
