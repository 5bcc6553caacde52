package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/Lucov/healthcard/internal/presenter"
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) Background() color.Color {
	return t.background
}

func (t Theme) Foreground() color.Color {
	return t.foreground
}

// TierColor maps a quality tier to its palette color.
func TierColor(tier presenter.Tier) color.Color {
	switch tier {
	case presenter.TierBest:
		return ColorTierBest
	case presenter.TierGood:
		return ColorTierGood
	case presenter.TierFair:
		return ColorTierFair
	case presenter.TierWorst:
		return ColorTierWorst
	default:
		return ColorNeutral
	}
}
