// Package snapshot defines the health-data document written by the
// converters and consumed by the presenter. Every field below the top
// level is optional; readers must nil-check each one independently.
package snapshot

import (
	"fmt"

	go_json "github.com/goccy/go-json"
)

type Snapshot struct {
	LastUpdated  string        `json:"lastUpdated,omitempty"`
	DataSource   string        `json:"dataSource,omitempty"`
	DailyStats   *DailyStats   `json:"dailyStats,omitempty"`
	WeeklyTrends *WeeklyTrends `json:"weeklyTrends,omitempty"`
}

type DailyStats struct {
	Date      string     `json:"date,omitempty"`
	Sleep     *Sleep     `json:"sleep,omitempty"`
	Energy    *Energy    `json:"energy,omitempty"`
	HeartRate *HeartRate `json:"heartRate,omitempty"`
	Activity  *Activity  `json:"activity,omitempty"`
	Stress    *Stress    `json:"stress,omitempty"`
}

type Sleep struct {
	Score      *float64 `json:"score,omitempty"`
	Duration   *float64 `json:"duration,omitempty"` // fractional hours
	DeepSleep  *float64 `json:"deepSleep,omitempty"`
	RemSleep   *float64 `json:"remSleep,omitempty"`
	LightSleep *float64 `json:"lightSleep,omitempty"`
	BedTime    *string  `json:"bedTime,omitempty"`
	WakeTime   *string  `json:"wakeTime,omitempty"`
}

type Energy struct {
	Score *float64 `json:"score,omitempty"`
	Level *string  `json:"level,omitempty"`
}

type HeartRate struct {
	Resting *float64 `json:"resting,omitempty"`
	Average *float64 `json:"average,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Min     *float64 `json:"min,omitempty"`
}

type Activity struct {
	Steps         *float64 `json:"steps,omitempty"`
	ActiveMinutes *float64 `json:"activeMinutes,omitempty"`
	Calories      *float64 `json:"calories,omitempty"`
}

type Stress struct {
	Average *float64 `json:"average,omitempty"`
	Level   *string  `json:"level,omitempty"`
}

type WeeklyTrends struct {
	AverageSleepScore    *float64 `json:"averageSleepScore,omitempty"`
	AverageEnergyScore   *float64 `json:"averageEnergyScore,omitempty"`
	AverageSleepDuration *float64 `json:"averageSleepDuration,omitempty"` // fractional hours
	AverageRestingHR     *float64 `json:"averageRestingHR,omitempty"`
	AverageSteps         *float64 `json:"averageSteps,omitempty"`
}

func Parse(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := go_json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing health data: %w", err)
	}
	return &snap, nil
}

func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := go_json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding health data: %w", err)
	}
	return data, nil
}

// Ptr returns a pointer to v. Convenience for building snapshots by hand.
func Ptr[T any](v T) *T { return &v }
