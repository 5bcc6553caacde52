package presenter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Lucov/healthcard/internal/snapshot"
)

func TestFormatHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0h 0m"},
		{1.5, "1h 30m"},
		{7.2, "7h 12m"},
		{0.1, "0h 6m"},
		// rounding at the minute boundary carries into the hour
		{7.98, "7h 59m"},
		{7.995, "8h 0m"},
		{1.999, "2h 0m"},
		{8.0, "8h 0m"},
	}

	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{950, "950"},
		{9500, "9,500"},
		{1234567, "1,234,567"},
		{9499.6, "9,500"},
	}

	for _, tt := range tests {
		if got := formatCount(tt.value); got != tt.want {
			t.Errorf("formatCount(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestRenderPartialSnapshot(t *testing.T) {
	t.Parallel()

	snap := &snapshot.Snapshot{
		LastUpdated: "2026-01-10T08:00:00Z",
		DailyStats: &snapshot.DailyStats{
			Stress: &snapshot.Stress{Average: snapshot.Ptr(30.0)},
		},
	}

	model := Render(snap)

	if model.Sleep != nil || model.Energy != nil || model.HeartRate != nil || model.Activity != nil {
		t.Error("absent groups must render as nil cards")
	}
	if model.Weekly != nil {
		t.Error("absent weekly trends must render as nil")
	}

	want := &Card{
		Icon:    "🧘",
		Title:   "Stress",
		Primary: "30",
		Quality: &Label{Text: "Low", Tier: TierGood},
	}
	if diff := cmp.Diff(want, model.Stress); diff != "" {
		t.Errorf("stress card mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFullSnapshot(t *testing.T) {
	t.Parallel()

	snap := &snapshot.Snapshot{
		LastUpdated: "2026-01-10T08:00:00Z",
		DailyStats: &snapshot.DailyStats{
			Sleep: &snapshot.Sleep{
				Score:     snapshot.Ptr(85.0),
				Duration:  snapshot.Ptr(7.5),
				DeepSleep: snapshot.Ptr(1.2),
				RemSleep:  snapshot.Ptr(1.8),
				BedTime:   snapshot.Ptr("23:30"),
				WakeTime:  snapshot.Ptr("07:00"),
			},
			Energy:    &snapshot.Energy{Score: snapshot.Ptr(72.0)},
			HeartRate: &snapshot.HeartRate{Resting: snapshot.Ptr(58.0), Average: snapshot.Ptr(71.0), Min: snapshot.Ptr(52.0), Max: snapshot.Ptr(132.0)},
			Activity:  &snapshot.Activity{Steps: snapshot.Ptr(9500.0), ActiveMinutes: snapshot.Ptr(42.0), Calories: snapshot.Ptr(2150.0)},
			Stress:    &snapshot.Stress{Average: snapshot.Ptr(80.0)},
		},
		WeeklyTrends: &snapshot.WeeklyTrends{
			AverageSleepScore: snapshot.Ptr(78.0),
			AverageSteps:      snapshot.Ptr(8421.0),
		},
	}

	model := Render(snap)

	want := &Model{
		Sleep: &Card{
			Icon:    "😴",
			Title:   "Sleep",
			Primary: "85",
			Quality: &Label{Text: "Excellent", Tier: TierBest},
			Details: []string{"7h 30m asleep", "Deep 1h 12m", "REM 1h 48m", "23:30 - 07:00"},
		},
		Energy: &Card{
			Icon:    "⚡",
			Title:   "Energy",
			Primary: "72",
			Quality: &Label{Text: "Good", Tier: TierGood},
		},
		HeartRate: &Card{
			Icon:    "❤️",
			Title:   "Heart Rate",
			Primary: "58 bpm",
			Quality: &Label{Text: "Athletic", Tier: TierBest},
			Details: []string{"Avg 71 bpm", "Range 52-132 bpm"},
		},
		Activity: &Card{
			Icon:    "🏃",
			Title:   "Activity",
			Primary: "9,500 steps",
			Details: []string{"42 active min", "2,150 kcal"},
		},
		Stress: &Card{
			Icon:    "🧘",
			Title:   "Stress",
			Primary: "80",
			Quality: &Label{Text: "High", Tier: TierWorst},
		},
		Weekly: &WeeklyBlock{
			Rows: []WeeklyRow{
				{Title: "Sleep score", Value: "78"},
				{Title: "Steps", Value: "8,421"},
			},
		},
	}

	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	snap := &snapshot.Snapshot{
		DailyStats: &snapshot.DailyStats{
			Sleep:  &snapshot.Sleep{Score: snapshot.Ptr(68.0), Duration: snapshot.Ptr(6.1)},
			Stress: &snapshot.Stress{Average: snapshot.Ptr(22.0)},
		},
	}

	first := Render(snap)
	second := Render(snap)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Render() is not idempotent (-first +second):\n%s", diff)
	}
}

func TestRenderNilSnapshot(t *testing.T) {
	t.Parallel()

	model := Render(nil)
	if model == nil {
		t.Fatal("Render(nil) must return an empty model, not nil")
	}
	if diff := cmp.Diff(&Model{}, model); diff != "" {
		t.Errorf("Render(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderScoreWithoutQuality(t *testing.T) {
	t.Parallel()

	// sleep group present with details only: card renders with the
	// placeholder primary and no quality label
	snap := &snapshot.Snapshot{
		DailyStats: &snapshot.DailyStats{
			Sleep: &snapshot.Sleep{Duration: snapshot.Ptr(7.0)},
		},
	}

	card := Render(snap).Sleep
	if card == nil {
		t.Fatal("expected a sleep card")
	}
	if card.Primary != "--" {
		t.Errorf("Primary = %q, want placeholder", card.Primary)
	}
	if card.Quality != nil {
		t.Errorf("Quality = %+v, want nil without a score", card.Quality)
	}
}
