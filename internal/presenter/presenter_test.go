package presenter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Lucov/healthcard/internal/snapshot"
)

type fakeSource struct {
	snap  *snapshot.Snapshot
	err   error
	panic any
}

func (f *fakeSource) Fetch(_ context.Context) (*snapshot.Snapshot, error) {
	if f.panic != nil {
		panic(f.panic)
	}
	return f.snap, f.err
}

func validSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	return &snapshot.Snapshot{
		LastUpdated: time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
		DailyStats: &snapshot.DailyStats{
			Sleep: &snapshot.Sleep{Score: snapshot.Ptr(82.0)},
		},
	}
}

func TestLoadRendered(t *testing.T) {
	t.Parallel()

	p := New(&fakeSource{snap: validSnapshot(t)})

	out := p.Load(context.Background())

	if out.State != StateRendered {
		t.Fatalf("State = %v, want rendered", out.State)
	}
	if out.Model == nil || out.Model.Sleep == nil {
		t.Fatal("rendered outcome must carry a model with the sleep card")
	}
	if !out.Freshness.Fresh {
		t.Error("rendered outcome must report fresh")
	}
	if !out.Validation.Valid {
		t.Error("rendered outcome must report valid")
	}
}

func TestLoadFetchError(t *testing.T) {
	t.Parallel()

	p := New(&fakeSource{err: errors.New("connection refused")})

	out := p.Load(context.Background())

	if out.State != StateLoadFailure {
		t.Fatalf("State = %v, want load failure", out.State)
	}
	if out.Err != "connection refused" {
		t.Errorf("Err = %q, want the fetch error message", out.Err)
	}
	if out.Model != nil {
		t.Error("failed outcome must not carry a model")
	}
}

func TestLoadStale(t *testing.T) {
	t.Parallel()

	snap := validSnapshot(t)
	snap.LastUpdated = time.Now().UTC().Add(-72 * time.Hour).Format(time.RFC3339)

	p := New(&fakeSource{snap: snap})

	out := p.Load(context.Background())

	if out.State != StateStale {
		t.Fatalf("State = %v, want stale", out.State)
	}
	if out.Freshness.Fresh {
		t.Error("stale outcome must report not fresh")
	}
	if out.Model != nil {
		t.Error("stale outcome must not carry a model")
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	snap := &snapshot.Snapshot{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		DailyStats:  &snapshot.DailyStats{},
	}

	p := New(&fakeSource{snap: snap})

	out := p.Load(context.Background())

	if out.State != StateInvalid {
		t.Fatalf("State = %v, want invalid", out.State)
	}
	if out.Validation.Reason != "no valid health metrics found" {
		t.Errorf("Reason = %q", out.Validation.Reason)
	}
}

func TestLoadStaleWinsOverInvalid(t *testing.T) {
	t.Parallel()

	// both gates would fail; freshness is checked first
	snap := &snapshot.Snapshot{
		LastUpdated: time.Now().UTC().Add(-100 * time.Hour).Format(time.RFC3339),
	}

	p := New(&fakeSource{snap: snap})

	if out := p.Load(context.Background()); out.State != StateStale {
		t.Fatalf("State = %v, want stale", out.State)
	}
}

func TestLoadRecoversPanic(t *testing.T) {
	t.Parallel()

	p := New(&fakeSource{panic: "boom"})

	out := p.Load(context.Background())

	if out.State != StateLoadFailure {
		t.Fatalf("State = %v, want load failure", out.State)
	}
	if out.Err != "unexpected error: boom" {
		t.Errorf("Err = %q", out.Err)
	}
}

func TestLoadWithMaxAge(t *testing.T) {
	t.Parallel()

	snap := validSnapshot(t) // 2 hours old

	p := New(&fakeSource{snap: snap}, WithMaxAge(time.Hour))

	if out := p.Load(context.Background()); out.State != StateStale {
		t.Fatalf("State = %v, want stale with a 1h window", out.State)
	}
}

func TestSequenceNumbers(t *testing.T) {
	t.Parallel()

	p := New(&fakeSource{snap: validSnapshot(t)})

	first := p.Load(context.Background())
	if !p.IsLatest(first.Seq) {
		t.Error("only outstanding load must be the latest")
	}

	second := p.Load(context.Background())
	if p.IsLatest(first.Seq) {
		t.Error("earlier load must be invalidated by a later one")
	}
	if !p.IsLatest(second.Seq) {
		t.Error("most recent load must be the latest")
	}
}
