package progress

import (
	"maps"
	"math"
	"slices"

	"github.com/abhisek/phishcourse/internal/course"
)

// DefaultUserName is the name used until the learner supplies one.
const DefaultUserName = "Participant"

// State is the learner's persisted application state. The JSON names match
// the blob layout stored under StorageKey.
type State struct {
	CurrentSection   string         `json:"currentSection" validate:"section"`
	CompletedModules []string       `json:"completedModules" validate:"max=5,unique,dive,module"`
	ModuleScores     map[string]int `json:"moduleScores" validate:"dive,keys,module,endkeys,oneof=0 1"`
	FinalScore       int            `json:"finalScore" validate:"min=0,max=100"`
	UserName         string         `json:"userName"`
}

// DefaultState returns the state of a learner who has not started.
func DefaultState() State {
	return State{
		CurrentSection:   course.SectionWelcome,
		CompletedModules: []string{},
		ModuleScores:     map[string]int{},
		FinalScore:       0,
		UserName:         DefaultUserName,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.CompletedModules = slices.Clone(s.CompletedModules)
	if s.CompletedModules == nil {
		s.CompletedModules = []string{}
	}
	s.ModuleScores = maps.Clone(s.ModuleScores)
	if s.ModuleScores == nil {
		s.ModuleScores = map[string]int{}
	}
	return s
}

// IsCompleted reports whether the module section id has been completed.
func (s State) IsCompleted(moduleID string) bool {
	return slices.Contains(s.CompletedModules, moduleID)
}

// MarkCompleted adds moduleID to the completed set. It reports false if the
// module was already complete.
func (s *State) MarkCompleted(moduleID string) bool {
	if s.IsCompleted(moduleID) {
		return false
	}
	s.CompletedModules = append(s.CompletedModules, moduleID)
	return true
}

// Percent returns round(100 * completed / modules).
func (s State) Percent() int {
	return PercentOf(len(s.CompletedModules), course.ModuleCount)
}

// PercentOf returns round(100 * n / total), or 0 when total is 0.
func PercentOf(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}
