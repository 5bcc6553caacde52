// Package presenter turns one fetched health-data snapshot into a
// presentable model, gating on freshness and completeness and producing
// explicit degraded states instead of silently failing.
package presenter

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Lucov/healthcard/internal/snapshot"
	"github.com/Lucov/healthcard/internal/xslog"
)

// Source fetches the current snapshot. Implementations live in
// internal/client/healthdata.
type Source interface {
	Fetch(ctx context.Context) (*snapshot.Snapshot, error)
}

type State uint8

const (
	StateIdle State = iota
	StateLoading
	StateRendered
	StateStale
	StateInvalid
	StateLoadFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateStale:
		return "stale"
	case StateInvalid:
		return "invalid"
	case StateLoadFailure:
		return "load failure"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of one load cycle. Exactly one of
// the four terminal states is set; Model is non-nil only for StateRendered.
type Outcome struct {
	// Seq identifies the load cycle that produced this outcome. Callers
	// apply an outcome only when IsLatest(outcome.Seq) still holds, which
	// keeps a slow earlier fetch from overwriting a newer result.
	Seq uint64

	State      State
	Model      *Model
	Freshness  FreshnessResult
	Validation ValidationResult

	// Err carries the transport or parse failure message for
	// StateLoadFailure.
	Err string
}

type Presenter struct {
	source Source
	maxAge time.Duration
	logger *slog.Logger
	seq    atomic.Uint64
}

type Option func(*Presenter)

func WithMaxAge(d time.Duration) Option {
	return func(p *Presenter) { p.maxAge = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Presenter) { p.logger = logger }
}

func New(source Source, opts ...Option) *Presenter {
	p := &Presenter{
		source: source,
		maxAge: DefaultMaxAge,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NextSeq issues the sequence number for a new load cycle. Each call
// invalidates all previously issued numbers.
func (p *Presenter) NextSeq() uint64 {
	return p.seq.Add(1)
}

// IsLatest reports whether seq belongs to the most recently issued load
// cycle.
func (p *Presenter) IsLatest(seq uint64) bool {
	return seq == p.seq.Load()
}

// Load runs one full cycle: fetch, freshness gate, completeness gate,
// render. It always returns exactly one terminal outcome and never
// panics; anything unexpected inside the pipeline is converted to
// StateLoadFailure so the caller's surface stays intact.
func (p *Presenter) Load(ctx context.Context) (out Outcome) {
	seq := p.NextSeq()

	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "presenter pipeline panicked", xslog.ErrorAny(r))
			out = Outcome{
				Seq:   seq,
				State: StateLoadFailure,
				Err:   fmt.Sprintf("unexpected error: %v", r),
			}
		}
	}()

	snap, err := p.source.Fetch(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "health data fetch failed", xslog.Error(err))
		return Outcome{Seq: seq, State: StateLoadFailure, Err: err.Error()}
	}

	return p.classify(ctx, seq, snap)
}

// classify applies the two gates and renders. Stale and invalid are
// correct classifications of unusable input, not failures, so they log at
// info.
func (p *Presenter) classify(ctx context.Context, seq uint64, snap *snapshot.Snapshot) Outcome {
	freshness := CheckFreshness(snap, p.maxAge)
	if !freshness.Fresh {
		p.logger.InfoContext(ctx, "snapshot not fresh", xslog.Reason(freshness.Reason))
		return Outcome{Seq: seq, State: StateStale, Freshness: freshness}
	}

	validation := Validate(snap)
	if !validation.Valid {
		p.logger.InfoContext(ctx, "snapshot has no usable metrics", xslog.Reason(validation.Reason))
		return Outcome{Seq: seq, State: StateInvalid, Freshness: freshness, Validation: validation}
	}

	p.logger.DebugContext(ctx, "snapshot rendered", xslog.Source(snap.DataSource))

	return Outcome{
		Seq:        seq,
		State:      StateRendered,
		Model:      Render(snap),
		Freshness:  freshness,
		Validation: validation,
	}
}
