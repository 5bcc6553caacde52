package tui

import "charm.land/lipgloss/v2"

const logo = `
 ▄▄    ▄▄  ▄▄▄▄▄▄▄   ▄▄▄▄▄▄   ▄▄        ▄▄▄▄▄▄▄▄ ▄▄    ▄▄
 ██    ██  ██▀▀▀▀▀  ██▀▀▀▀██  ██        ▀▀▀██▀▀▀ ██    ██
 ████████  ██████   ████████  ██           ██    ████████
 ██    ██  ██       ██    ██  ██           ██    ██    ██
 ██    ██  ███████  ██    ██  ████████     ██    ██    ██`

func (m *Model) SplashView() string {
	return lipgloss.NewStyle().Foreground(m.theme.Foreground()).Render(logo)
}
