package course

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/mod/semver"
)

//go:embed course.json
var embeddedDocument []byte

// ErrInvalidVersion is returned when the document version is not a semantic version.
var ErrInvalidVersion = errors.New("course version is not a valid semantic version")

// Course is the full, immutable training content.
type Course struct {
	Title           string
	Version         string
	Welcome         Page
	AssessmentTitle string
	AssessmentIntro string
	Modules         []Module
	Checklist       []string
	Bank            *Bank
}

// Page is a titled block of prose.
type Page struct {
	Title string
	Body  []string
}

// Module is one instructional unit.
type Module struct {
	Number  int
	Title   string
	Summary string
	Points  []string
	Sites   []Site
	Quiz    InlineQuiz
}

// Site is one entry of a spot-the-fake website exercise.
type Site struct {
	URL      string
	Phishing bool
}

// Verdict returns the label revealed when the learner checks the site.
func (s Site) Verdict() string {
	if s.Phishing {
		return "DANGEROUS - Phishing attempt"
	}
	return "SAFE - Legitimate website"
}

// ID returns the module's section identifier.
func (m Module) ID() string {
	return ModuleID(m.Number)
}

// InlineQuiz is the single comprehension check at the end of a module.
type InlineQuiz struct {
	Prompt  string
	Options []QuizOption
	Correct string
}

// QuizOption is one choice of an inline quiz. Value is what gets compared
// against InlineQuiz.Correct.
type QuizOption struct {
	Value string
	Label string
}

// Module returns module n (1-based).
func (c *Course) Module(n int) (Module, bool) {
	if n < 1 || n > len(c.Modules) {
		return Module{}, false
	}
	return c.Modules[n-1], true
}

// SectionTitle returns the display title for a section id.
func (c *Course) SectionTitle(id string) string {
	switch id {
	case SectionWelcome:
		return c.Welcome.Title
	case SectionAssessment:
		return c.AssessmentTitle
	}
	if n, ok := ModuleNumber(id); ok {
		if m, ok := c.Module(n); ok {
			return m.Title
		}
	}
	return id
}

// document mirrors the JSON layout of course.json.
type document struct {
	Title   string `json:"title"`
	Version string `json:"version"`
	Welcome struct {
		Title string   `json:"title"`
		Body  []string `json:"body"`
	} `json:"welcome"`
	Modules []struct {
		Number  int      `json:"number"`
		Title   string   `json:"title"`
		Summary string   `json:"summary"`
		Points  []string `json:"points"`
		Sites   []struct {
			URL      string `json:"url"`
			Phishing bool   `json:"phishing"`
		} `json:"sites"`
		Quiz struct {
			Prompt  string `json:"prompt"`
			Options []struct {
				Value string `json:"value"`
				Label string `json:"label"`
			} `json:"options"`
			Correct string `json:"correct"`
		} `json:"quiz"`
	} `json:"modules"`
	Assessment struct {
		Title string `json:"title"`
		Intro string `json:"intro"`
	} `json:"assessment"`
	Checklist []string `json:"checklist"`
	Questions []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		Correct     int      `json:"correct"`
		Explanation string   `json:"explanation"`
	} `json:"questions"`
}

// Parse validates raw against the course schema and builds a Course.
func Parse(raw []byte) (*Course, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode course: %w", err)
	}
	if !semver.IsValid(doc.Version) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, doc.Version)
	}

	c := &Course{
		Title:           doc.Title,
		Version:         semver.Canonical(doc.Version),
		Welcome:         Page{Title: doc.Welcome.Title, Body: doc.Welcome.Body},
		AssessmentTitle: doc.Assessment.Title,
		AssessmentIntro: doc.Assessment.Intro,
		Checklist:       doc.Checklist,
		Modules:         make([]Module, ModuleCount),
	}

	seen := make(map[int]bool, ModuleCount)
	for _, dm := range doc.Modules {
		if seen[dm.Number] {
			return nil, fmt.Errorf("duplicate module number %d", dm.Number)
		}
		seen[dm.Number] = true

		m := Module{
			Number:  dm.Number,
			Title:   dm.Title,
			Summary: dm.Summary,
			Points:  dm.Points,
			Quiz:    InlineQuiz{Prompt: dm.Quiz.Prompt, Correct: dm.Quiz.Correct},
		}
		for _, ds := range dm.Sites {
			m.Sites = append(m.Sites, Site{URL: ds.URL, Phishing: ds.Phishing})
		}
		correctFound := false
		for _, o := range dm.Quiz.Options {
			m.Quiz.Options = append(m.Quiz.Options, QuizOption{Value: o.Value, Label: o.Label})
			if o.Value == dm.Quiz.Correct {
				correctFound = true
			}
		}
		if !correctFound {
			return nil, fmt.Errorf("module %d: correct value %q is not an option", dm.Number, dm.Quiz.Correct)
		}
		c.Modules[dm.Number-1] = m
	}

	qs := make([]Question, 0, len(doc.Questions))
	for _, dq := range doc.Questions {
		qs = append(qs, Question{
			Prompt:      dq.Question,
			Options:     dq.Options,
			Correct:     dq.Correct,
			Explanation: dq.Explanation,
		})
	}
	c.Bank = NewBank(qs)

	return c, nil
}

var (
	defaultOnce   sync.Once
	defaultCourse *Course
)

// Default returns the course built from the embedded document. The document
// ships with the binary, so an invalid one is a programming error.
func Default() *Course {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedDocument)
		if err != nil {
			panic(fmt.Sprintf("course: embedded document: %v", err))
		}
		defaultCourse = c
	})
	return defaultCourse
}
