package presenter

import (
	"fmt"
	"math"
	"time"

	"github.com/Lucov/healthcard/internal/snapshot"
)

// DefaultMaxAge is the freshness window: snapshots older than this are
// classified as stale rather than rendered.
const DefaultMaxAge = 48 * time.Hour

type FreshnessResult struct {
	Fresh bool

	// Hours since the snapshot was written, rounded to 0.1h for diagnostics.
	Hours float64

	// DisplayHours is the same age rounded to the nearest whole hour.
	DisplayHours int

	Reason string
}

// timestamp layouts accepted for lastUpdated. The converters write
// RFC 3339; older documents omitted the zone suffix and are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// CheckFreshness fails closed: a missing or unparseable lastUpdated is
// never fresh. Future timestamps (clock skew between the converter host
// and the viewer) count as fresh; there is no lower bound on age.
func CheckFreshness(snap *snapshot.Snapshot, maxAge time.Duration) FreshnessResult {
	return checkFreshnessAt(snap, maxAge, time.Now().UTC())
}

func checkFreshnessAt(snap *snapshot.Snapshot, maxAge time.Duration, now time.Time) FreshnessResult {
	if snap == nil || snap.LastUpdated == "" {
		return FreshnessResult{Reason: "no timestamp found"}
	}

	updated, err := parseTimestamp(snap.LastUpdated)
	if err != nil {
		return FreshnessResult{Reason: fmt.Sprintf("invalid timestamp: %s", snap.LastUpdated)}
	}

	hours := now.Sub(updated).Hours()
	result := FreshnessResult{
		Hours:        math.Round(hours*10) / 10,
		DisplayHours: int(math.Round(hours)),
	}

	if hours <= maxAge.Hours() {
		result.Fresh = true
		result.Reason = fmt.Sprintf("updated %d hours ago", result.DisplayHours)
		return result
	}

	result.Reason = fmt.Sprintf("data is %d hours old (limit %d)", result.DisplayHours, int(maxAge.Hours()))
	return result
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
