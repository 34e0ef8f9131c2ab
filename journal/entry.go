package journal

import "time"

// Entry is one work-log line: a commit message parsed into structured fields,
// or an override supplied by the user. Derived data only, never persisted.
type Entry struct {
	SHA         string
	Name        string
	Description string
	Date        time.Time
	Duration    int // minutes
	Status      string
	Author      string
	URL         string

	// OverrideID is set when the entry came from a patch or commitless
	// override, so the shell can edit or remove it by id.
	OverrideID string
}

// Totals is a duration sum split into hours and minutes for display.
type Totals struct {
	Minutes int
	Hours   int
	Mins    int
}

func NewTotals(minutes int) Totals {
	return Totals{
		Minutes: minutes,
		Hours:   minutes / 60,
		Mins:    minutes % 60,
	}
}

// DayGroup is the aggregation unit: all entries sharing a UTC calendar day,
// in chronological order, with a computed total. Recomputed on every query.
type DayGroup struct {
	DayKey  string
	Label   string
	Entries []Entry
	Total   Totals
}
