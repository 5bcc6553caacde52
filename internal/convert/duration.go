package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// parseDuration reads the duration formats Samsung Health exports use:
// "7h 30m", "450m", "7:30", or a bare number of minutes. The result is
// fractional hours rounded to 0.1.
func parseDuration(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var hours, minutes int

	switch {
	case strings.Contains(s, "h"):
		parts := strings.SplitN(s, "h", 2)
		h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, fmt.Errorf("bad hours in %q: %w", raw, err)
		}
		hours = h
		if rest := strings.TrimSpace(parts[1]); strings.Contains(rest, "m") {
			m, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(rest, "m", "")))
			if err != nil {
				return 0, fmt.Errorf("bad minutes in %q: %w", raw, err)
			}
			minutes = m
		}
	case strings.Contains(s, ":"):
		parts := strings.SplitN(s, ":", 2)
		h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return 0, fmt.Errorf("bad clock duration %q", raw)
		}
		hours, minutes = h, m
	case strings.Contains(s, "m"):
		m, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, "m", "")))
		if err != nil {
			return 0, fmt.Errorf("bad minutes in %q: %w", raw, err)
		}
		minutes = m
	default:
		// bare value is minutes
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("bad duration %q: %w", raw, err)
		}
		minutes = int(f)
	}

	return math.Round((float64(hours)+float64(minutes)/60)*10) / 10, nil
}

// clockLayouts accepted for bed and wake times.
var clockLayouts = []string{"15:04:05", "15:04", "3:04 PM", "3:04:05 PM"}

// parseClock normalizes a time-of-day string to HH:MM, passing the raw
// value through when no layout matches.
func parseClock(raw string) string {
	s := strings.TrimSpace(raw)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}
