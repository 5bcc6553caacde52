package tui

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Lucov/healthcard/internal/presenter"
	"github.com/Lucov/healthcard/internal/tui/components/gauge"
	"github.com/Lucov/healthcard/internal/tui/theme"
)

func (m *Model) CardView() string {
	card := m.state.card

	if card.Loading {
		return m.notice("Loading health data...", theme.ColorNeutral, false)
	}

	switch card.Outcome.State {
	case presenter.StateLoadFailure:
		return m.notice("Could not load health data: "+card.Outcome.Err, theme.ColorTierWorst, true)
	case presenter.StateStale:
		// not an error: the data is real, just older than the window
		return m.notice("Health data is outdated ("+card.Outcome.Freshness.Reason+")", theme.ColorTierFair, true)
	case presenter.StateInvalid:
		return m.notice("No health data available right now.", theme.ColorDim, true)
	case presenter.StateRendered:
		return m.renderedView(card.Outcome.Model)
	default:
		return m.notice("Loading health data...", theme.ColorNeutral, false)
	}
}

func (m *Model) notice(text string, c color.Color, retry bool) string {
	parts := []string{
		lipgloss.NewStyle().Foreground(c).Render(text),
	}
	if retry {
		parts = append(parts, "", m.footer())
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderedView(model *presenter.Model) string {
	var sections []string

	if gauges := m.gaugesRow(model); gauges != "" {
		sections = append(sections, gauges)
	}
	if cards := m.detailRow(model); cards != "" {
		sections = append(sections, cards)
	}
	if weekly := m.weeklyStrip(model.Weekly); weekly != "" {
		sections = append(sections, weekly)
	}
	sections = append(sections, m.footer())

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// gaugesRow shows the scored metrics as dials: sleep, energy, stress.
func (m *Model) gaugesRow(model *presenter.Model) string {
	type dial struct {
		card  *presenter.Card
		label string
	}

	var rendered []string
	for _, d := range []dial{
		{model.Sleep, "SLEEP"},
		{model.Energy, "ENERGY"},
		{model.Stress, "STRESS"},
	} {
		if d.card == nil || d.card.Quality == nil {
			continue
		}
		value := parseGaugeValue(d.card.Primary)
		rendered = append(rendered, gauge.New(value, 100, d.label, d.card.Quality).Render())
	}

	if len(rendered) == 0 {
		return ""
	}

	const gaugeSpacing = "    "
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(rendered, gaugeSpacing)...)
}

// detailRow shows the remaining cards as bordered boxes.
func (m *Model) detailRow(model *presenter.Model) string {
	var boxes []string
	for _, card := range []*presenter.Card{model.Sleep, model.HeartRate, model.Activity} {
		if card == nil {
			continue
		}
		boxes = append(boxes, m.cardBox(card))
	}
	if len(boxes) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(boxes, "  ")...)
}

func (m *Model) cardBox(card *presenter.Card) string {
	title := lipgloss.NewStyle().Foreground(theme.ColorAccent).Bold(true).
		Render(card.Icon + " " + card.Title)

	primary := card.Primary
	line := lipgloss.NewStyle().Foreground(m.theme.Foreground()).Bold(true).Render(primary)
	if card.Quality != nil {
		line += " " + lipgloss.NewStyle().
			Foreground(theme.TierColor(card.Quality.Tier)).
			Render(card.Quality.Text)
	}

	parts := []string{title, line}
	for _, detail := range card.Details {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorDim).Render(detail))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBgLight).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) weeklyStrip(weekly *presenter.WeeklyBlock) string {
	if weekly == nil || len(weekly.Rows) == 0 {
		return ""
	}

	var parts []string
	for _, row := range weekly.Rows {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.ColorDim).Render(row.Title+" ")+
				lipgloss.NewStyle().Foreground(theme.ColorAccent).Render(row.Value))
	}

	label := lipgloss.NewStyle().Foreground(theme.ColorDim).Bold(true).Render("7-DAY  ")
	return label + strings.Join(parts, lipgloss.NewStyle().Foreground(theme.ColorBgLight).Render("  ·  "))
}

func (m *Model) footer() string {
	return lipgloss.NewStyle().Foreground(theme.ColorDim).Render("r refresh · q quit")
}

// parseGaugeValue pulls the numeric score back out of a card's primary
// string. Cards with a quality label always carry a plain number.
func parseGaugeValue(primary string) *float64 {
	fields := strings.Fields(primary)
	if len(fields) == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil
	}
	return &v
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, 2*len(items))
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
