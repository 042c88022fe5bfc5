// Package certificate issues, renders and exports completion certificates.
package certificate

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/abhisek/phishcourse/internal/assessment"
	"github.com/abhisek/phishcourse/internal/course"
)

// MaxNameLength is the longest name printed on a certificate, in characters.
const MaxNameLength = 80

// DateLayout is how the issue date is printed.
const DateLayout = "2006-01-02"

var (
	// ErrNameRequired is returned when the participant name is blank.
	ErrNameRequired = errors.New("certificate: name is required")

	// ErrNotEligible is returned when the score is below the passing threshold.
	ErrNotEligible = errors.New("certificate: score below passing threshold")
)

// Certificate records a successful course completion.
type Certificate struct {
	ID            string    `validate:"required,uuid4"`
	Name          string    `validate:"required,max=80"`
	ScorePercent  int       `validate:"min=0,max=100"`
	IssuedAt      time.Time `validate:"required"`
	CourseTitle   string    `validate:"required"`
	CourseVersion string    `validate:"required,semver"`
}

// Date returns the issue date in DateLayout.
func (c *Certificate) Date() string {
	return c.IssuedAt.Format(DateLayout)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func certValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semver.IsValid(fl.Field().String())
		})
	})
	return validate
}

// Issuer creates certificates for one course.
type Issuer struct {
	course *course.Course
	now    func() time.Time
}

// NewIssuer creates an Issuer for c.
func NewIssuer(c *course.Course) *Issuer {
	return &Issuer{course: c, now: time.Now}
}

// Issue creates a certificate for name. The name is trimmed; score must be at
// least the passing threshold.
func (i *Issuer) Issue(name string, score int) (*Certificate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if score < assessment.PassingScore {
		return nil, fmt.Errorf("issue certificate with score %d%%: %w", score, ErrNotEligible)
	}

	c := &Certificate{
		ID:            uuid.NewString(),
		Name:          name,
		ScorePercent:  score,
		IssuedAt:      i.now(),
		CourseTitle:   i.course.Title,
		CourseVersion: i.course.Version,
	}
	if err := certValidator().Struct(c); err != nil {
		return nil, fmt.Errorf("issue certificate: %w", err)
	}
	return c, nil
}
