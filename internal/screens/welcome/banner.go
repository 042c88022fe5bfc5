package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phishcourse/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗  ██╗██╗███████╗██╗  ██╗
 ██╔══██╗██║  ██║██║██╔════╝██║  ██║
 ██████╔╝███████║██║███████╗███████║
 ██╔═══╝ ██╔══██║██║╚════██║██╔══██║
 ██║     ██║  ██║██║███████║██║  ██║
 ╚═╝     ╚═╝  ╚═╝╚═╝╚══════╝╚═╝  ╚═╝`

const bannerCompact = "P H I S H C O U R S E"

// RenderBanner returns the banner styled in the primary color. Terminals
// narrower than 40 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("C O U R S E")
}
