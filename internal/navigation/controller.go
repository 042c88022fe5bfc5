// Package navigation moves the learner between course sections and records
// module completion.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/progress"
	"github.com/abhisek/phishcourse/internal/schedule"
)

// Scheduler purposes owned by the controller.
const (
	PurposeAdvance schedule.Purpose = "advance"
	PurposeNotice  schedule.Purpose = "notice"
)

// Default timings.
const (
	DefaultAdvanceDelay   = 2 * time.Second
	DefaultNoticeDuration = 3 * time.Second
)

// ErrUnknownModule is returned for a module number outside the course.
var ErrUnknownModule = errors.New("navigation: unknown module")

// Resetter starts a fresh assessment attempt.
type Resetter interface {
	Reset()
}

// Options tunes controller timings. Zero values use the defaults.
type Options struct {
	AdvanceDelay   time.Duration
	NoticeDuration time.Duration
}

// Tab is one entry of the section navigation bar.
type Tab struct {
	ID        string
	Title     string
	Active    bool
	Completed bool
	Enabled   bool
}

// Controller owns section changes and module completion.
type Controller struct {
	holder     *progress.Holder
	course     *course.Course
	sched      *schedule.Scheduler
	assessment Resetter
	logger     *slog.Logger
	opts       Options

	listeners []func(id string)
	notice    string
}

// New creates a Controller. assessment may be nil.
func New(holder *progress.Holder, c *course.Course, sched *schedule.Scheduler,
	assessment Resetter, logger *slog.Logger, opts Options) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AdvanceDelay <= 0 {
		opts.AdvanceDelay = DefaultAdvanceDelay
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = DefaultNoticeDuration
	}
	return &Controller{
		holder:     holder,
		course:     c,
		sched:      sched,
		assessment: assessment,
		logger:     logger,
		opts:       opts,
	}
}

// ShowSection makes id the current section. An unknown id is logged and
// ignored. Entering the assessment always starts a fresh attempt.
func (c *Controller) ShowSection(ctx context.Context, id string) bool {
	if !course.IsSectionID(id) {
		c.logger.ErrorContext(ctx, "section not found", "section", id)
		return false
	}

	c.sched.Cancel(PurposeAdvance)
	c.holder.Update(ctx, func(s *progress.State) {
		s.CurrentSection = id
	})
	if id == course.SectionAssessment && c.assessment != nil {
		c.assessment.Reset()
	}

	for _, fn := range c.listeners {
		fn(id)
	}
	return true
}

// Current returns the current section id.
func (c *Controller) Current() string {
	return c.holder.Snapshot().CurrentSection
}

// CompleteModule marks module n completed. Completing a module a second time
// does nothing. A first completion posts a notice and schedules an advance
// to the following section.
func (c *Controller) CompleteModule(ctx context.Context, n int) error {
	if n < 1 || n > course.ModuleCount {
		return fmt.Errorf("complete module %d: %w", n, ErrUnknownModule)
	}

	id := course.ModuleID(n)
	if c.holder.Snapshot().IsCompleted(id) {
		return nil
	}
	c.holder.Update(ctx, func(s *progress.State) {
		s.MarkCompleted(id)
	})

	c.notice = fmt.Sprintf("Module %d completed successfully!", n)
	c.sched.After(PurposeNotice, c.opts.NoticeDuration, func() {
		c.notice = ""
	})

	next := course.SectionAssessment
	if n < course.ModuleCount {
		next = course.ModuleID(n + 1)
	}
	c.sched.After(PurposeAdvance, c.opts.AdvanceDelay, func() {
		c.ShowSection(context.Background(), next)
	})
	return nil
}

// Progress returns the percentage of modules completed.
func (c *Controller) Progress() int {
	return c.holder.Snapshot().Percent()
}

// OnSectionChanged registers fn to be called after every section change.
func (c *Controller) OnSectionChanged(fn func(id string)) {
	c.listeners = append(c.listeners, fn)
}

// Notice returns the transient completion notice, if one is showing.
func (c *Controller) Notice() (string, bool) {
	return c.notice, c.notice != ""
}

// Tabs returns the navigation bar entries in display order.
func (c *Controller) Tabs() []Tab {
	s := c.holder.Snapshot()
	ids := course.SectionIDs()
	tabs := make([]Tab, len(ids))
	for i, id := range ids {
		tabs[i] = Tab{
			ID:        id,
			Title:     c.course.SectionTitle(id),
			Active:    id == s.CurrentSection,
			Completed: s.IsCompleted(id),
			Enabled:   true,
		}
	}
	return tabs
}
