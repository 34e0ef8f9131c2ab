package journal

import (
	"sort"
	"time"

	"gitjrnl/internal/timeutil"
	"gitjrnl/project"
)

// Aggregate merges groomed entries with the project's overrides and groups
// the result by UTC calendar day.
//
// Precedence is exclusion > patch > base: an excluded sha disappears even
// when a patch override exists for it, a non-excluded patch replaces the
// groomed entry with its sha, and untouched entries pass through. Commitless
// overrides bypass the author and duration filters entirely; they carry their
// own fields.
func Aggregate(entries []Entry, p *project.Project) ([]DayGroup, Totals) {
	working := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Duration > 0 && entry.Author == p.Identity {
			working = append(working, entry)
		}
	}

	excluded := make(map[string]struct{})
	patches := make(map[string]project.Override)
	commitless := make([]project.Override, 0)
	for _, override := range p.Overrides {
		key := project.NormalizeSHA(override.SHA)
		if override.Excluded && key != "" {
			excluded[key] = struct{}{}
		}
		if override.IsPatch() && !override.Excluded && key != "" {
			patches[key] = override
		}
		if override.IsCommitless() {
			commitless = append(commitless, override)
		}
	}

	merged := make([]Entry, 0, len(working)+len(commitless))
	for _, entry := range working {
		key := project.NormalizeSHA(entry.SHA)
		if _, isExcluded := excluded[key]; isExcluded {
			continue
		}
		if patch, ok := patches[key]; ok {
			merged = append(merged, overrideEntry(patch))
			continue
		}
		merged = append(merged, entry)
	}
	for _, override := range commitless {
		merged = append(merged, overrideEntry(override))
	}

	// Stable keeps same-timestamp entries in merge order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	groups := make([]DayGroup, 0)
	groupIndex := make(map[string]int)
	total := 0
	for _, entry := range merged {
		key := timeutil.DayKey(entry.Date)
		idx, seen := groupIndex[key]
		if !seen {
			idx = len(groups)
			groupIndex[key] = idx
			groups = append(groups, DayGroup{
				DayKey: key,
				Label:  timeutil.DayLabel(key),
			})
		}
		groups[idx].Entries = append(groups[idx].Entries, entry)
		total += entry.Duration
	}

	for i := range groups {
		minutes := 0
		for _, entry := range groups[i].Entries {
			minutes += entry.Duration
		}
		groups[i].Total = NewTotals(minutes)
	}

	return groups, NewTotals(total)
}

func overrideEntry(override project.Override) Entry {
	date, err := project.ParseDate(override.Date)
	if err != nil {
		// The validation gate keeps unparsable dates out of the list; a
		// hand-edited file falls back to the zero time rather than dropping
		// the entry.
		date = time.Time{}
	}
	return Entry{
		SHA:         override.SHA,
		Name:        override.Name,
		Description: override.Description,
		Date:        date,
		Duration:    override.Duration,
		Status:      override.Status,
		Author:      override.Author,
		URL:         override.URL,
		OverrideID:  override.ID,
	}
}
