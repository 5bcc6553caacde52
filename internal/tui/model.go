package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Lucov/healthcard/internal/presenter"
	"github.com/Lucov/healthcard/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	cardPage
)

type CardState struct {
	Loading bool
	Outcome presenter.Outcome
}

type state struct {
	card CardState
}

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps
}

func New(deps Deps) Model {
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
		state: state{
			card: CardState{Loading: true},
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splashDuration, func(time.Time) tea.Msg {
			return SplashTickMsg{}
		}),
		loadCmd(m.deps.Presenter),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// retry starts a fresh load cycle; any in-flight outcome
			// becomes stale by sequence number
			m.state.card.Loading = true
			return m, loadCmd(m.deps.Presenter)
		}

	// splash timer expired - transition to the card
	case SplashTickMsg:
		m.page = cardPage

	case OutcomeMsg:
		if !m.deps.Presenter.IsLatest(msg.Outcome.Seq) {
			return m, nil
		}
		m.state.card.Loading = false
		m.state.card.Outcome = msg.Outcome
	}

	return m, nil
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = m.SplashView()
	case cardPage:
		content = m.CardView()
	}

	view.SetContent(lipgloss.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		content,
	))
	return view
}
