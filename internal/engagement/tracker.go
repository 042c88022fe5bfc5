// Package engagement records learner actions for later reporting.
package engagement

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/phishcourse/internal/store"
)

// Actions recorded by the training service.
const (
	ActionSectionView          = "section_view"
	ActionModuleComplete       = "module_complete"
	ActionSiteCheck            = "site_check"
	ActionQuizAnswer           = "quiz_answer"
	ActionAssessmentSubmit     = "assessment_submit"
	ActionCertificateIssue     = "certificate_issue"
	ActionCertificateExport    = "certificate_export"
	ActionChecklistComplete    = "checklist_complete"
	ActionAssessmentRetake     = "assessment_retake"
	ActionAssessmentIncomplete = "assessment_incomplete"
)

// Tracker logs engagement events and appends them to the event log.
type Tracker struct {
	repo      store.EventRepo
	logger    *slog.Logger
	sessionID string
	now       func() time.Time
}

// NewTracker creates a Tracker with a fresh session id. repo may be nil, in
// which case events are only logged.
func NewTracker(repo store.EventRepo, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		repo:      repo,
		logger:    logger,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
}

// SessionID identifies this run in the event log.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// Track records action with details. Storage failures are logged, not returned.
func (t *Tracker) Track(ctx context.Context, action string, details map[string]any) {
	attrs := make([]any, 0, 2*len(details)+4)
	attrs = append(attrs, "action", action, "session", t.sessionID)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, details[k])
	}
	t.logger.InfoContext(ctx, "engagement", attrs...)

	if t.repo == nil {
		return
	}
	err := t.repo.AppendEngagement(ctx, store.EngagementEvent{
		SessionID: t.sessionID,
		Action:    action,
		Details:   details,
		CreatedAt: t.now(),
	})
	if err != nil {
		t.logger.WarnContext(ctx, "could not record engagement event", "action", action, "error", err)
	}
}
