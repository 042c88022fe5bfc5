package assessment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned when a selection is outside the question's options.
var ErrInvalidOption = errors.New("assessment: option out of range")

// ErrNotInProgress is returned when answering while results are showing.
var ErrNotInProgress = errors.New("assessment: not accepting answers")

// IncompleteError reports a submission with unanswered questions.
type IncompleteError struct {
	// Missing holds the 1-based numbers of every unanswered question.
	Missing []int
}

func (e *IncompleteError) Error() string {
	nums := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		nums[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("Please answer all questions. Missing: Question %s", strings.Join(nums, ", "))
}
