package assessment

import (
	"fmt"
	"math"

	"github.com/abhisek/phishcourse/internal/course"
)

// PassingScore is the minimum percentage that earns a certificate.
const PassingScore = 80

// Unanswered marks a question with no recorded answer.
const Unanswered = -1

// Phase is where the learner is within the assessment.
type Phase int

const (
	PhaseQuestions Phase = iota // Answering questions
	PhaseResults                // Viewing the score after a successful submit
)

// Session is a snapshot of the in-progress attempt.
type Session struct {
	Index   int
	Answers []int
}

// QuestionView is everything the presentation needs to draw one question.
type QuestionView struct {
	Index       int
	Number      int
	Total       int
	Prompt      string
	Options     []string
	Selected    int // Unanswered when nothing is selected
	CanPrevious bool
	ShowNext    bool
	ShowSubmit  bool
}

// Review describes one question of a scored attempt.
type Review struct {
	Number      int
	Prompt      string
	Chosen      int
	Correct     int
	IsCorrect   bool
	Explanation string
}

// Result is a scored attempt.
type Result struct {
	Correct int
	Total   int
	Percent int
	Passed  bool
	Review  []Review
}

// Feedback returns the message shown with the score.
func (r Result) Feedback() string {
	if r.Passed {
		return fmt.Sprintf("Excellent! You answered %d out of %d questions correctly. "+
			"You're well-prepared to identify and prevent phishing attacks.", r.Correct, r.Total)
	}
	return fmt.Sprintf("You scored %d%% (%d/%d). Review the training materials and try again "+
		"to earn your certificate.", r.Percent, r.Correct, r.Total)
}

// Engine runs the final assessment over a question bank.
type Engine struct {
	bank     *course.Bank
	index    int
	answers  []int
	selected int
	phase    Phase
	result   *Result
}

// New creates an Engine positioned at the first question.
func New(bank *course.Bank) *Engine {
	e := &Engine{bank: bank}
	e.Reset()
	return e
}

// Reset discards the attempt: index 0, every answer cleared.
func (e *Engine) Reset() {
	e.index = 0
	e.answers = make([]int, e.bank.Len())
	for i := range e.answers {
		e.answers[i] = Unanswered
	}
	e.selected = Unanswered
	e.phase = PhaseQuestions
	e.result = nil
}

// Retake starts a fresh attempt and returns to the question view.
func (e *Engine) Retake() {
	e.Reset()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Session returns a copy of the attempt state.
func (e *Engine) Session() Session {
	return Session{Index: e.index, Answers: append([]int(nil), e.answers...)}
}

// Select marks option as the in-progress answer for the current question.
// It is recorded when the learner moves on or submits.
func (e *Engine) Select(option int) error {
	if e.phase != PhaseQuestions {
		return ErrNotInProgress
	}
	q, ok := e.bank.Question(e.index)
	if !ok || option < 0 || option >= len(q.Options) {
		return ErrInvalidOption
	}
	e.selected = option
	return nil
}

// Next records the current selection and moves forward. It reports false at
// the last question.
func (e *Engine) Next() bool {
	if e.phase != PhaseQuestions || e.index >= e.bank.Len()-1 {
		return false
	}
	e.commit()
	e.moveTo(e.index + 1)
	return true
}

// Previous records the current selection and moves back. It reports false at
// the first question.
func (e *Engine) Previous() bool {
	if e.phase != PhaseQuestions || e.index <= 0 {
		return false
	}
	e.commit()
	e.moveTo(e.index - 1)
	return true
}

// Current returns the rendering data for the current question.
func (e *Engine) Current() QuestionView {
	n := e.bank.Len()
	q, _ := e.bank.Question(e.index)
	return QuestionView{
		Index:       e.index,
		Number:      e.index + 1,
		Total:       n,
		Prompt:      q.Prompt,
		Options:     q.Options,
		Selected:    e.selected,
		CanPrevious: e.index > 0,
		ShowNext:    e.index < n-1,
		ShowSubmit:  e.index == n-1,
	}
}

// Submit records the current selection and scores the attempt. If any
// question is unanswered it returns *IncompleteError and scores nothing.
func (e *Engine) Submit() (Result, error) {
	if e.phase == PhaseQuestions {
		e.commit()
	}

	var missing []int
	for i, a := range e.answers {
		if a == Unanswered {
			missing = append(missing, i+1)
		}
	}
	if len(missing) > 0 {
		return Result{}, &IncompleteError{Missing: missing}
	}

	res := Result{Total: e.bank.Len()}
	for i, a := range e.answers {
		q, _ := e.bank.Question(i)
		ok := a == q.Correct
		if ok {
			res.Correct++
		}
		res.Review = append(res.Review, Review{
			Number:      i + 1,
			Prompt:      q.Prompt,
			Chosen:      a,
			Correct:     q.Correct,
			IsCorrect:   ok,
			Explanation: q.Explanation,
		})
	}
	res.Percent = percent(res.Correct, res.Total)
	res.Passed = res.Percent >= PassingScore

	e.phase = PhaseResults
	e.result = &res
	return res, nil
}

// Result returns the last scored attempt, if results are showing.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}

// commit copies the in-progress selection into the recorded answers.
func (e *Engine) commit() {
	if e.selected != Unanswered && e.index < len(e.answers) {
		e.answers[e.index] = e.selected
	}
}

// moveTo changes question and restores any answer already recorded for it.
func (e *Engine) moveTo(i int) {
	e.index = i
	e.selected = e.answers[i]
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}
