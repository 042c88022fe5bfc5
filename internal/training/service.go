// Package training is the action surface of the course. It owns the
// application state and wires navigation, assessment, certificates and
// engagement tracking together.
package training

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/phishcourse/internal/assessment"
	"github.com/abhisek/phishcourse/internal/certificate"
	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/engagement"
	"github.com/abhisek/phishcourse/internal/navigation"
	"github.com/abhisek/phishcourse/internal/progress"
	"github.com/abhisek/phishcourse/internal/schedule"
	"github.com/abhisek/phishcourse/internal/store"
)

// PurposeAutosave is the scheduler purpose of the periodic save.
const PurposeAutosave schedule.Purpose = "autosave"

// DefaultAutosaveInterval is how often state is saved without a mutation.
const DefaultAutosaveInterval = 30 * time.Second

// NoSelectionMessage is shown when an inline quiz is checked with no answer.
const NoSelectionMessage = "Please select an answer first."

// ErrNoSelection is returned when an inline quiz is checked with no answer.
var ErrNoSelection = errors.New("training: no answer selected")

// ErrUnknownSite is returned for a website exercise index out of range.
var ErrUnknownSite = errors.New("training: unknown website")

// Config tunes the service. Zero durations use the package defaults.
type Config struct {
	AdvanceDelay     time.Duration
	NoticeDuration   time.Duration
	AutosaveInterval time.Duration
	ExportDir        string
}

// QuizFeedback is the outcome of checking an inline quiz.
type QuizFeedback struct {
	Correct bool
	Message string
}

// Service is the course's single entry point for every learner action.
type Service struct {
	course   *course.Course
	holder   *progress.Holder
	sched    *schedule.Scheduler
	nav      *navigation.Controller
	engine   *assessment.Engine
	issuer   *certificate.Issuer
	exporter *certificate.Exporter
	tracker  *engagement.Tracker
	logger   *slog.Logger

	autosave  time.Duration
	checklist []bool
}

// New loads persisted progress from kv and builds the service. events may
// be nil.
func New(ctx context.Context, c *course.Course, kv store.KV, events store.EventRepo,
	logger *slog.Logger, cfg Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = DefaultAutosaveInterval
	}

	holder := progress.NewHolder(ctx, progress.NewStore(kv, logger))
	sched := schedule.New()
	engine := assessment.New(c.Bank)
	nav := navigation.New(holder, c, sched, engine, logger, navigation.Options{
		AdvanceDelay:   cfg.AdvanceDelay,
		NoticeDuration: cfg.NoticeDuration,
	})

	s := &Service{
		course:    c,
		holder:    holder,
		sched:     sched,
		nav:       nav,
		engine:    engine,
		issuer:    certificate.NewIssuer(c),
		exporter:  certificate.NewExporter(cfg.ExportDir),
		tracker:   engagement.NewTracker(events, logger),
		logger:    logger,
		autosave:  cfg.AutosaveInterval,
		checklist: make([]bool, len(c.Checklist)),
	}
	nav.OnSectionChanged(func(id string) {
		s.tracker.Track(context.Background(), engagement.ActionSectionView, map[string]any{"section": id})
	})
	return s
}

// Course returns the course content.
func (s *Service) Course() *course.Course { return s.course }

// Snapshot returns a copy of the application state.
func (s *Service) Snapshot() progress.State { return s.holder.Snapshot() }

// Timers returns the scheduler the presentation must drive.
func (s *Service) Timers() *schedule.Scheduler { return s.sched }

// Assessment returns the final assessment engine.
func (s *Service) Assessment() *assessment.Engine { return s.engine }

// SessionID identifies this run in the engagement log.
func (s *Service) SessionID() string { return s.tracker.SessionID() }

// ShowSection switches to section id. Unknown ids are logged and ignored.
func (s *Service) ShowSection(ctx context.Context, id string) bool {
	return s.nav.ShowSection(ctx, id)
}

// StartTraining moves from the welcome page to the first module.
func (s *Service) StartTraining(ctx context.Context) bool {
	return s.nav.ShowSection(ctx, course.ModuleID(1))
}

// CompleteModule marks module n completed.
func (s *Service) CompleteModule(ctx context.Context, n int) error {
	already := s.holder.Snapshot().IsCompleted(course.ModuleID(n))
	if err := s.nav.CompleteModule(ctx, n); err != nil {
		return err
	}
	if !already {
		s.tracker.Track(ctx, engagement.ActionModuleComplete, map[string]any{"module": n})
	}
	return nil
}

// Progress returns the percentage of modules completed.
func (s *Service) Progress() int { return s.nav.Progress() }

// Tabs returns the navigation bar entries.
func (s *Service) Tabs() []navigation.Tab { return s.nav.Tabs() }

// Notice returns the transient completion notice, if any.
func (s *Service) Notice() (string, bool) { return s.nav.Notice() }

// OnSectionChanged registers fn to run after every section change.
func (s *Service) OnSectionChanged(fn func(id string)) { s.nav.OnSectionChanged(fn) }

// CheckQuizAnswer scores the inline quiz of module n. selected is the value
// of the chosen option; an empty selection is ErrNoSelection.
func (s *Service) CheckQuizAnswer(ctx context.Context, n int, selected, correct string) (QuizFeedback, error) {
	if n < 1 || n > course.ModuleCount {
		return QuizFeedback{}, fmt.Errorf("check quiz %d: %w", n, navigation.ErrUnknownModule)
	}
	if selected == "" {
		return QuizFeedback{Message: NoSelectionMessage}, ErrNoSelection
	}

	ok := selected == correct
	score := 0
	fb := QuizFeedback{Correct: ok, Message: "Incorrect. The correct answer helps you stay safe from phishing attacks."}
	if ok {
		score = 1
		fb.Message = "Correct! Well done."
	}

	id := course.ModuleID(n)
	s.holder.Update(ctx, func(st *progress.State) {
		if st.ModuleScores == nil {
			st.ModuleScores = make(map[string]int)
		}
		st.ModuleScores[id] = score
	})
	s.tracker.Track(ctx, engagement.ActionQuizAnswer, map[string]any{"module": n, "correct": ok})
	return fb, nil
}

// CheckSite reveals whether site i of module n's website exercise is real.
func (s *Service) CheckSite(ctx context.Context, n, i int) (string, error) {
	m, ok := s.course.Module(n)
	if !ok {
		return "", fmt.Errorf("check site: %w", navigation.ErrUnknownModule)
	}
	if i < 0 || i >= len(m.Sites) {
		return "", fmt.Errorf("check site %d of module %d: %w", i, n, ErrUnknownSite)
	}
	site := m.Sites[i]
	s.tracker.Track(ctx, engagement.ActionSiteCheck, map[string]any{"url": site.URL, "phishing": site.Phishing})
	return site.Verdict(), nil
}

// ToggleChecklist flips checklist item i and reports whether every item is
// now checked.
func (s *Service) ToggleChecklist(ctx context.Context, i int) bool {
	if i < 0 || i >= len(s.checklist) {
		return s.ChecklistComplete()
	}
	s.checklist[i] = !s.checklist[i]
	done := s.ChecklistComplete()
	if done && s.checklist[i] {
		s.tracker.Track(ctx, engagement.ActionChecklistComplete, nil)
	}
	return done
}

// Checklist returns the checked state of each checklist item.
func (s *Service) Checklist() []bool {
	return append([]bool(nil), s.checklist...)
}

// ChecklistComplete reports whether every checklist item is checked.
func (s *Service) ChecklistComplete() bool {
	if len(s.checklist) == 0 {
		return false
	}
	for _, c := range s.checklist {
		if !c {
			return false
		}
	}
	return true
}

// SubmitAssessment scores the final assessment and records the score.
func (s *Service) SubmitAssessment(ctx context.Context) (assessment.Result, error) {
	res, err := s.engine.Submit()
	if err != nil {
		var inc *assessment.IncompleteError
		if errors.As(err, &inc) {
			s.tracker.Track(ctx, engagement.ActionAssessmentIncomplete, map[string]any{"missing": len(inc.Missing)})
		}
		return res, err
	}

	s.holder.Update(ctx, func(st *progress.State) {
		st.FinalScore = res.Percent
	})
	s.tracker.Track(ctx, engagement.ActionAssessmentSubmit, map[string]any{
		"score":  res.Percent,
		"passed": res.Passed,
	})
	return res, nil
}

// RetakeAssessment discards the attempt and returns to the first question.
func (s *Service) RetakeAssessment(ctx context.Context) {
	s.engine.Retake()
	s.tracker.Track(ctx, engagement.ActionAssessmentRetake, nil)
}

// IssueCertificate issues a certificate for name using the recorded final
// score. The name becomes the stored participant name.
func (s *Service) IssueCertificate(ctx context.Context, name string) (*certificate.Certificate, error) {
	c, err := s.issuer.Issue(name, s.holder.Snapshot().FinalScore)
	if err != nil {
		return nil, err
	}
	s.holder.Update(ctx, func(st *progress.State) {
		st.UserName = c.Name
	})
	s.tracker.Track(ctx, engagement.ActionCertificateIssue, map[string]any{"certificate": c.ID, "score": c.ScorePercent})
	return c, nil
}

// ExportCertificate writes c to the export directory.
func (s *Service) ExportCertificate(ctx context.Context, c *certificate.Certificate) ([]string, error) {
	paths, err := s.exporter.Export(ctx, c)
	if err != nil {
		s.logger.WarnContext(ctx, "could not export certificate", "certificate", c.ID, "error", err)
		return nil, err
	}
	s.tracker.Track(ctx, engagement.ActionCertificateExport, map[string]any{"certificate": c.ID})
	return paths, nil
}

// ExportDir is the directory certificates are written to.
func (s *Service) ExportDir() string {
	return s.exporter.Dir()
}

// TrackEngagement records an arbitrary learner action.
func (s *Service) TrackEngagement(ctx context.Context, action string, details map[string]any) {
	s.tracker.Track(ctx, action, details)
}

// StartAutosave arms the recurring save. Each run re-arms itself.
func (s *Service) StartAutosave() {
	s.sched.After(PurposeAutosave, s.autosave, func() {
		s.holder.Save(context.Background())
		s.StartAutosave()
	})
}

// Save persists the current state immediately.
func (s *Service) Save(ctx context.Context) bool {
	return s.holder.Save(ctx)
}
