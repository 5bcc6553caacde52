package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

// The four quality tiers share one palette across every metric kind:
// best is always green, good blue, fair amber, worst red.
var (
	ColorTierBest  = lipgloss.Color("#16EC06")
	ColorTierGood  = lipgloss.Color("#0093E7")
	ColorTierFair  = lipgloss.Color("#FFDE00")
	ColorTierWorst = lipgloss.Color("#FF0026")
)

var (
	ColorAccent  = lipgloss.Color("#00F19F") // highlights and the weekly strip
	ColorNeutral = lipgloss.Color("#67AEE6") // values without a quality tier
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // darker end of gradient
	ColorBgLight = lipgloss.Color("#283339") // lighter end of gradient
)
