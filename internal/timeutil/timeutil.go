package timeutil

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey truncates a timestamp to its UTC calendar day ("YYYY-MM-DD").
// Grouping always happens in UTC so an entry never shifts across a day
// boundary when the local zone changes.
func DayKey(value time.Time) string {
	return value.UTC().Format(dayKeyLayout)
}

// DayLabel renders a day key as a display string ("10 Jan 2025").
func DayLabel(dayKey string) string {
	parsed, err := time.Parse(dayKeyLayout, dayKey)
	if err != nil {
		return dayKey
	}
	return parsed.Format("02 Jan 2006")
}

func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// FormatMinutes renders a minute total as "3h 05m" ("45m" below one hour).
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
