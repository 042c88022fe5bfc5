package course

// Question is a single final-assessment question.
type Question struct {
	Prompt      string
	Options     []string
	Correct     int
	Explanation string
}

// Bank is the ordered, read-only set of assessment questions.
type Bank struct {
	questions []Question
}

// NewBank copies qs into a new Bank.
func NewBank(qs []Question) *Bank {
	b := &Bank{questions: make([]Question, len(qs))}
	for i, q := range qs {
		b.questions[i] = q.clone()
	}
	return b
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Question returns the question at index i. The returned value is a copy;
// mutating it does not affect the bank.
func (b *Bank) Question(i int) (Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[i].clone(), true
}

func (q Question) clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
