package snapshot

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"lastUpdated": "2026-01-10T08:00:00Z",
		"dataSource": "Samsung Health",
		"dailyStats": {
			"date": "2026-01-10",
			"sleep": {"score": 85, "duration": 7.5},
			"heartRate": {"resting": 58}
		},
		"weeklyTrends": {"averageSteps": 8421}
	}`)

	snap, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := &Snapshot{
		LastUpdated: "2026-01-10T08:00:00Z",
		DataSource:  "Samsung Health",
		DailyStats: &DailyStats{
			Date:      "2026-01-10",
			Sleep:     &Sleep{Score: Ptr(85.0), Duration: Ptr(7.5)},
			HeartRate: &HeartRate{Resting: Ptr(58.0)},
		},
		WeeklyTrends: &WeeklyTrends{AverageSteps: Ptr(8421.0)},
	}

	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	snap, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snap.DailyStats != nil || snap.WeeklyTrends != nil {
		t.Error("absent sections must parse as nil")
	}
	if snap.LastUpdated != "" {
		t.Errorf("LastUpdated = %q, want empty", snap.LastUpdated)
	}
}

func TestParseUnknownFieldsIgnored(t *testing.T) {
	t.Parallel()

	snap, err := Parse([]byte(`{"lastUpdated": "2026-01-10T08:00:00Z", "schemaVersion": 3}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if snap.LastUpdated != "2026-01-10T08:00:00Z" {
		t.Errorf("LastUpdated = %q", snap.LastUpdated)
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`{"dailyStats": [`)); err == nil {
		t.Error("Parse() expected error for malformed JSON")
	}
}

func TestMarshalOmitsAbsentFields(t *testing.T) {
	t.Parallel()

	snap := &Snapshot{
		LastUpdated: "2026-01-10T08:00:00Z",
		DailyStats: &DailyStats{
			Stress: &Stress{Average: Ptr(30.0)},
		},
	}

	data, err := snap.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(snap, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	for _, absent := range []string{"sleep", "energy", "weeklyTrends"} {
		if bytes.Contains(data, []byte(absent)) {
			t.Errorf("marshaled document must omit absent section %q", absent)
		}
	}
}
