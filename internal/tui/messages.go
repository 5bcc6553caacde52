package tui

import (
	"time"

	"github.com/Lucov/healthcard/internal/presenter"
)

const splashDuration = 1200 * time.Millisecond

type SplashTickMsg struct{}

// OutcomeMsg carries the terminal result of one load cycle. The model
// drops it when its sequence number is no longer the latest issued, so a
// slow fetch cannot overwrite the result of a later retry.
type OutcomeMsg struct {
	Outcome presenter.Outcome
}
