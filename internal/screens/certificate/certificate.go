package certificate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/assessment"
	"github.com/abhisek/phishcourse/internal/certificate"
	"github.com/abhisek/phishcourse/internal/progress"
	"github.com/abhisek/phishcourse/internal/router"
	"github.com/abhisek/phishcourse/internal/screen"
	"github.com/abhisek/phishcourse/internal/training"
	"github.com/abhisek/phishcourse/internal/ui/components"
	"github.com/abhisek/phishcourse/internal/ui/layout"
	"github.com/abhisek/phishcourse/internal/ui/theme"
)

// CertificateScreen asks for the participant's name, then shows the issued
// certificate and offers to export it.
type CertificateScreen struct {
	svc    *training.Service
	input  components.TextInput
	cert   *certificate.Certificate
	status string
	failed bool
}

var _ screen.Screen = (*CertificateScreen)(nil)
var _ screen.KeyHintProvider = (*CertificateScreen)(nil)

// New creates the certificate screen, prefilled with the stored name.
func New(svc *training.Service) *CertificateScreen {
	in := components.NewTextInput("Your full name", certificate.MaxNameLength)
	if name := svc.Snapshot().UserName; name != "" && name != progress.DefaultUserName {
		in.SetValue(name)
	}
	return &CertificateScreen{svc: svc, input: in}
}

func (s *CertificateScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *CertificateScreen) Title() string {
	return "Certificate"
}

func (s *CertificateScreen) KeyHints() []layout.KeyHint {
	if s.cert == nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate certificate"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Export"},
		{Key: "N", Description: "Change name"},
		{Key: "Enter/Esc", Description: "Close"},
	}
}

func (s *CertificateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyPressMsg)

	if s.cert == nil {
		if isKey && kmsg.String() == "enter" {
			s.issue()
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if !isKey {
		return s, nil
	}
	switch kmsg.String() {
	case "e", "E", "p", "P":
		s.export()
	case "n", "N":
		s.cert = nil
		s.status = ""
		return s, s.input.Init()
	case "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *CertificateScreen) issue() {
	c, err := s.svc.IssueCertificate(context.Background(), s.input.Value())
	switch {
	case err == nil:
		s.cert = c
		s.status = ""
	case errors.Is(err, certificate.ErrNameRequired):
		s.input.SetError("Please enter your name to generate the certificate.")
	case errors.Is(err, certificate.ErrNotEligible):
		s.input.SetError(fmt.Sprintf("Score %d%% or more on the final assessment to earn a certificate.",
			assessment.PassingScore))
	default:
		s.input.SetError("Could not issue certificate: " + err.Error())
	}
}

func (s *CertificateScreen) export() {
	paths, err := s.svc.ExportCertificate(context.Background(), s.cert)
	if err != nil {
		s.status = "Export failed: " + err.Error()
		s.failed = true
		return
	}
	s.failed = false
	s.status = "Saved " + strings.Join(paths, " and ")
}

func (s *CertificateScreen) View(width, height int) string {
	var content string
	if s.cert == nil {
		content = lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("Claim your certificate"),
			"",
			theme.Body.Render("Enter your name as it should appear on the certificate:"),
			"",
			s.input.View(),
		)
	} else {
		parts := []string{certificate.Render(s.cert, width)}
		if s.status != "" {
			style := lipgloss.NewStyle().Foreground(theme.Success)
			if s.failed {
				style = lipgloss.NewStyle().Foreground(theme.Error)
			}
			parts = append(parts, "", style.Width(min(width-4, 80)).Render(s.status))
		}
		content = lipgloss.JoinVertical(lipgloss.Center, parts...)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
