package progress

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/phishcourse/internal/course"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// stateValidator returns the shared validator with the course tags registered.
func stateValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
			return course.IsSectionID(fl.Field().String())
		})
		v.RegisterValidation("module", func(fl validator.FieldLevel) bool {
			return course.IsModuleID(fl.Field().String())
		})
		// Report fields by their JSON names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate checks the state invariants.
func (s State) Validate() error {
	return stateValidator().Struct(s)
}

// invalidFields returns the JSON names of top-level fields that fail validation.
func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	var fields []string
	for _, fe := range verrs {
		// Namespace looks like "State.completedModules[2]".
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		if i := strings.IndexAny(ns, ".["); i >= 0 {
			ns = ns[:i]
		}
		fields = append(fields, ns)
	}
	return fields
}

// sanitize drops entries that break the invariants and resets any field
// that still fails validation to its default.
func sanitize(s State) State {
	def := DefaultState()

	completed := make([]string, 0, len(s.CompletedModules))
	for _, id := range s.CompletedModules {
		if course.IsModuleID(id) && !slices.Contains(completed, id) {
			completed = append(completed, id)
		}
	}
	s.CompletedModules = completed

	scores := make(map[string]int, len(s.ModuleScores))
	for id, v := range s.ModuleScores {
		if course.IsModuleID(id) && (v == 0 || v == 1) {
			scores[id] = v
		}
	}
	s.ModuleScores = scores

	for _, field := range invalidFields(s.Validate()) {
		switch field {
		case "currentSection":
			s.CurrentSection = def.CurrentSection
		case "completedModules":
			s.CompletedModules = def.CompletedModules
		case "moduleScores":
			s.ModuleScores = def.ModuleScores
		case "finalScore":
			s.FinalScore = def.FinalScore
		}
	}
	return s
}
