// Package classroom is the main course screen: section tabs, module pages,
// the final assessment and the welcome page.
package classroom

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/phishcourse/internal/course"
	"github.com/abhisek/phishcourse/internal/screen"
	"github.com/abhisek/phishcourse/internal/training"
	"github.com/abhisek/phishcourse/internal/ui/layout"
)

// ClassroomScreen shows whichever section the learner is on. All course
// state is read from the training service on every render.
type ClassroomScreen struct {
	svc     *training.Service
	modules map[int]*moduleState

	assessIndex  int
	assessCursor int
	assessErr    string
}

var _ screen.Screen = (*ClassroomScreen)(nil)
var _ screen.KeyHintProvider = (*ClassroomScreen)(nil)

// New creates the classroom screen.
func New(svc *training.Service) *ClassroomScreen {
	return &ClassroomScreen{
		svc:     svc,
		modules: make(map[int]*moduleState),
	}
}

func (c *ClassroomScreen) Init() tea.Cmd {
	return nil
}

func (c *ClassroomScreen) Title() string {
	return c.svc.Course().SectionTitle(c.section())
}

func (c *ClassroomScreen) section() string {
	return c.svc.Snapshot().CurrentSection
}

func (c *ClassroomScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next section"}}
	id := c.section()
	switch {
	case id == course.SectionWelcome:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start training"})
	case id == course.SectionAssessment:
		hints = append(hints, c.assessmentHints()...)
	default:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Move"},
			layout.KeyHint{Key: "Enter", Description: "Select"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (c *ClassroomScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}
	ctx := context.Background()

	switch kmsg.String() {
	case "tab":
		c.stepSection(ctx, 1)
		return c, nil
	case "shift+tab":
		c.stepSection(ctx, -1)
		return c, nil
	}

	id := c.section()
	switch {
	case id == course.SectionWelcome:
		if kmsg.String() == "enter" {
			c.svc.StartTraining(ctx)
		}
		return c, nil
	case id == course.SectionAssessment:
		return c, c.updateAssessment(ctx, kmsg)
	default:
		n, _ := course.ModuleNumber(id)
		c.updateModule(ctx, n, kmsg)
		return c, nil
	}
}

// stepSection moves to the neighbouring section, wrapping around.
func (c *ClassroomScreen) stepSection(ctx context.Context, delta int) {
	ids := course.SectionIDs()
	cur := 0
	for i, id := range ids {
		if id == c.section() {
			cur = i
			break
		}
	}
	next := (cur + delta + len(ids)) % len(ids)
	c.svc.ShowSection(ctx, ids[next])
}
