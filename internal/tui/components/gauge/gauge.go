// Package gauge renders a circular braille gauge for a 0-100 metric
// score, colored by its quality tier, with the value and quality text
// stacked beneath the arc.
package gauge

import (
	"fmt"
	"image/color"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/Lucov/healthcard/internal/presenter"
	"github.com/Lucov/healthcard/internal/tui/theme"
)

const (
	// gauge dimensions in braille dots (2 dots per char width, 4 dots
	// per char height)
	gaugeDotsWidth  = 36 // 18 chars wide
	gaugeDotsHeight = 36 // 9 chars tall
)

// Gauge is one score dial. A nil Value renders as "--" with no fill.
type Gauge struct {
	Value   *float64
	Max     float64
	Label   string
	Quality *presenter.Label
	BgColor color.Color
}

type Option func(*Gauge)

func WithBgColor(c color.Color) Option {
	return func(g *Gauge) {
		g.BgColor = c
	}
}

func New(value *float64, max float64, label string, quality *presenter.Label, opts ...Option) Gauge {
	g := Gauge{
		Value:   value,
		Max:     max,
		Label:   label,
		Quality: quality,
		BgColor: theme.ColorBgLight,
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

func (g Gauge) fillColor() color.Color {
	if g.Quality == nil {
		return theme.ColorNeutral
	}
	return theme.TierColor(g.Quality.Tier)
}

func (g Gauge) Render() string {
	canvas := drawille.NewCanvas()

	var (
		centerX = float64(gaugeDotsWidth) / 2
		centerY = float64(gaugeDotsHeight) / 2
		radius  = float64(gaugeDotsWidth)/2 - 1
	)

	var percentage float64
	if g.Value != nil && g.Max > 0 {
		percentage = min(max(*g.Value/g.Max, 0), 1)
	}

	drawFullArc(&canvas, centerX, centerY, radius)
	bgArcStr := getCanvasString(&canvas, gaugeDotsWidth, gaugeDotsHeight)

	canvas.Clear()
	if percentage > 0 {
		drawFilledArc(&canvas, centerX, centerY, radius, percentage)
	}
	filledArcStr := getCanvasString(&canvas, gaugeDotsWidth, gaugeDotsHeight)

	arc := overlayArcs(bgArcStr, filledArcStr, g.BgColor, g.fillColor())
	arcWidth := lipgloss.Width(arc)

	valueStr := "--"
	if g.Value != nil {
		valueStr = fmt.Sprintf("%.0f", *g.Value)
	}

	parts := []string{
		arc,
		lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).Width(arcWidth).Align(lipgloss.Center).Render(valueStr),
	}

	if g.Quality != nil {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(g.fillColor()).
			Width(arcWidth).
			Align(lipgloss.Center).
			Render(g.Quality.Text))
	}

	parts = append(parts, lipgloss.NewStyle().
		Foreground(theme.ColorDim).
		Width(arcWidth).
		Align(lipgloss.Center).
		Render(g.Label))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// getCanvasString extracts the canvas as a string with consistent
// dimensions: each braille char is 2 dots wide and 4 dots tall.
func getCanvasString(canvas *drawille.Canvas, width, height int) string {
	charWidth := width / 2
	charHeight := height / 4

	rows := canvas.Rows(0, 0, width, height)

	var lines []string
	for i := range charHeight {
		if i < len(rows) {
			line := rows[i]
			runeCount := len([]rune(line))
			if runeCount < charWidth {
				line += strings.Repeat(" ", charWidth-runeCount)
			} else if runeCount > charWidth {
				line = string([]rune(line)[:charWidth])
			}
			lines = append(lines, line)
		} else {
			lines = append(lines, strings.Repeat(" ", charWidth))
		}
	}

	return strings.Join(lines, "\n")
}

const emptyBraille rune = '⠀'

// overlayArcs merges the background and filled arcs, ORing braille dot
// patterns where both have content so the fill sits on top of the track.
func overlayArcs(bgStr, fillStr string, bgColor, fillColor color.Color) string {
	var (
		bgLines   = strings.Split(bgStr, "\n")
		fillLines = strings.Split(fillStr, "\n")
		result    []string
		bgStyle   = lipgloss.NewStyle().Foreground(bgColor)
		fillStyle = lipgloss.NewStyle().Foreground(fillColor)
	)

	for i := range len(bgLines) {
		bgRunes := []rune(bgLines[i])
		var fillRunes []rune
		if i < len(fillLines) {
			fillRunes = []rune(fillLines[i])
		}

		var lineBuilder strings.Builder
		for j := range len(bgRunes) {
			bgChar := bgRunes[j]
			fillChar := ' '
			if j < len(fillRunes) {
				fillChar = fillRunes[j]
			}

			bgIsBraille := isBraille(bgChar)
			fillHasDots := isBraille(fillChar) && fillChar != emptyBraille

			switch {
			case fillHasDots && bgIsBraille:
				lineBuilder.WriteString(fillStyle.Render(string(combineBraille(bgChar, fillChar))))
			case fillHasDots:
				lineBuilder.WriteString(fillStyle.Render(string(fillChar)))
			case bgIsBraille:
				lineBuilder.WriteString(bgStyle.Render(string(bgChar)))
			default:
				lineBuilder.WriteRune(' ')
			}
		}
		result = append(result, lineBuilder.String())
	}

	return strings.Join(result, "\n")
}

// isBraille reports whether r is in the braille block (U+2800-U+28FF).
func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}

// combineBraille ORs the dot patterns of two braille characters.
func combineBraille(a, b rune) rune {
	patternA := a - emptyBraille
	patternB := b - emptyBraille
	return emptyBraille + (patternA | patternB)
}
