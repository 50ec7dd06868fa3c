package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifecompass/internal/ui/theme"
)

const bannerArt = ` ╦  ╦╔═╗╔═╗  ╔═╗╔═╗╔╦╗╔═╗╔═╗╔═╗╔═╗
 ║  ║╠╣ ║╣   ║  ║ ║║║║╠═╝╠═╣╚═╗╚═╗
 ╩═╝╩╚  ╚═╝  ╚═╝╚═╝╩ ╩╩  ╩ ╩╚═╝╚═╝`

// RenderBanner draws the block-letter title, or spaced capitals when the
// terminal is narrower than the art.
func RenderBanner(width int) string {
	style := theme.Title
	if width < lipgloss.Width(bannerArt) {
		return style.Render(strings.Join(strings.Split("LIFECOMPASS", ""), " "))
	}
	return style.Render(bannerArt)
}
