package tui

import (
	"log/slog"

	"github.com/Lucov/healthcard/internal/presenter"
)

type Deps struct {
	Presenter *presenter.Presenter
	Logger    *slog.Logger
}
