package googlefit

import (
	"testing"

	"github.com/Lucov/healthcard/internal/snapshot"
)

func TestSleepSessionHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session sleepSession
		want    float64
	}{
		{
			name:    "eight hours",
			session: sleepSession{StartTimeMillis: "0", EndTimeMillis: "28800000"},
			want:    8,
		},
		{
			name:    "ninety minutes",
			session: sleepSession{StartTimeMillis: "1000000", EndTimeMillis: "6400000"},
			want:    1.5,
		},
		{
			name:    "end before start",
			session: sleepSession{StartTimeMillis: "5000", EndTimeMillis: "1000"},
			want:    0,
		},
		{
			name:    "unparseable",
			session: sleepSession{StartTimeMillis: "soon", EndTimeMillis: "later"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.session.hours(); got != tt.want {
				t.Errorf("hours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeriveSleepScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		duration, deep, rem float64
		want                float64
	}{
		{"zero duration", 0, 0, 0, 0},
		{"full night with stages", 8, 1.6, 1.2, 50},
		{"capped at 100", 20, 10, 10, 100},
		{"short night", 4, 0.8, 0.6, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := deriveSleepScore(tt.duration, tt.deep, tt.rem); got != tt.want {
				t.Errorf("deriveSleepScore(%v, %v, %v) = %v, want %v",
					tt.duration, tt.deep, tt.rem, got, tt.want)
			}
		})
	}
}

func emptySnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		DailyStats:   &snapshot.DailyStats{},
		WeeklyTrends: &snapshot.WeeklyTrends{},
	}
}

func TestProcessSleep(t *testing.T) {
	t.Parallel()

	snap := emptySnapshot()
	processSleep(snap, []sleepSession{
		{StartTimeMillis: "0", EndTimeMillis: "25200000"}, // 7h
		{StartTimeMillis: "0", EndTimeMillis: "28800000"}, // 8h, latest
	})

	sleep := snap.DailyStats.Sleep
	if sleep == nil {
		t.Fatal("expected sleep group")
	}
	if *sleep.Duration != 8 {
		t.Errorf("Duration = %v, want the latest session", *sleep.Duration)
	}
	if *sleep.DeepSleep != 1.6 || *sleep.RemSleep != 1.2 {
		t.Errorf("stages = %v/%v, want the estimated split", *sleep.DeepSleep, *sleep.RemSleep)
	}
	if snap.WeeklyTrends.AverageSleepDuration == nil || *snap.WeeklyTrends.AverageSleepDuration != 7.5 {
		t.Errorf("AverageSleepDuration = %v, want 7.5", snap.WeeklyTrends.AverageSleepDuration)
	}
}

func TestProcessSleepNoSessions(t *testing.T) {
	t.Parallel()

	snap := emptySnapshot()
	processSleep(snap, nil)
	if snap.DailyStats.Sleep != nil {
		t.Error("no sessions must leave the group absent")
	}
}

func TestProcessHeartRate(t *testing.T) {
	t.Parallel()

	snap := emptySnapshot()
	processHeartRate(snap, &aggregateResponse{
		Bucket: []bucket{{
			Dataset: []dataset{{
				Point: []point{
					{Value: []pointValue{{FpVal: snapshot.Ptr(62.0)}}},
					{Value: []pointValue{{FpVal: snapshot.Ptr(55.0)}}},
					{Value: []pointValue{{IntVal: snapshot.Ptr(int64(78))}}},
				},
			}},
		}},
	})

	hr := snap.DailyStats.HeartRate
	if hr == nil {
		t.Fatal("expected heart rate group")
	}
	if *hr.Resting != 55 || *hr.Min != 55 || *hr.Max != 78 {
		t.Errorf("resting/min/max = %v/%v/%v", *hr.Resting, *hr.Min, *hr.Max)
	}
	if *hr.Average != 65 {
		t.Errorf("Average = %v, want 65", *hr.Average)
	}
}

func TestProcessActivity(t *testing.T) {
	t.Parallel()

	snap := emptySnapshot()
	processActivity(snap, &aggregateResponse{
		Bucket: []bucket{{
			Dataset: []dataset{
				{Point: []point{{Value: []pointValue{{IntVal: snapshot.Ptr(int64(9500))}}}}},
				{Point: []point{{Value: []pointValue{{FpVal: snapshot.Ptr(2150.4)}}}}},
				{Point: []point{{Value: []pointValue{{IntVal: snapshot.Ptr(int64(42))}}}}},
			},
		}},
	})

	activity := snap.DailyStats.Activity
	if activity == nil {
		t.Fatal("expected activity group")
	}
	if *activity.Steps != 9500 || *activity.Calories != 2150 || *activity.ActiveMinutes != 42 {
		t.Errorf("steps/calories/active = %v/%v/%v", *activity.Steps, *activity.Calories, *activity.ActiveMinutes)
	}
	if snap.WeeklyTrends.AverageSteps == nil || *snap.WeeklyTrends.AverageSteps != 9500 {
		t.Errorf("AverageSteps = %v", snap.WeeklyTrends.AverageSteps)
	}
}

func TestProcessActivityEmpty(t *testing.T) {
	t.Parallel()

	snap := emptySnapshot()
	processActivity(snap, &aggregateResponse{})
	if snap.DailyStats.Activity != nil {
		t.Error("no datapoints must leave the group absent")
	}
}
