package presenter

import (
	"strings"

	"github.com/Lucov/healthcard/internal/snapshot"
)

type ValidationResult struct {
	Valid bool

	// Groups lists the metric groups whose gating field is present,
	// in the fixed card order.
	Groups []string

	Reason string
}

// Validate accepts a snapshot when at least one of the five metric groups
// carries its gating field. Values are not range-checked: presence is the
// only criterion.
func Validate(snap *snapshot.Snapshot) ValidationResult {
	var groups []string

	if snap != nil && snap.DailyStats != nil {
		daily := snap.DailyStats
		if daily.Sleep != nil && daily.Sleep.Score != nil {
			groups = append(groups, "sleep")
		}
		if daily.Energy != nil && daily.Energy.Score != nil {
			groups = append(groups, "energy")
		}
		if daily.HeartRate != nil && daily.HeartRate.Resting != nil {
			groups = append(groups, "heartRate")
		}
		if daily.Activity != nil && daily.Activity.Steps != nil {
			groups = append(groups, "activity")
		}
		if daily.Stress != nil && daily.Stress.Average != nil {
			groups = append(groups, "stress")
		}
	}

	if len(groups) == 0 {
		return ValidationResult{Reason: "no valid health metrics found"}
	}

	return ValidationResult{
		Valid:  true,
		Groups: groups,
		Reason: "found " + strings.Join(groups, ", "),
	}
}
