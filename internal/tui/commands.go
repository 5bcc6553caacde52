package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/Lucov/healthcard/internal/presenter"
)

func loadCmd(p *presenter.Presenter) tea.Cmd {
	return func() tea.Msg {
		return OutcomeMsg{Outcome: p.Load(context.Background())}
	}
}
