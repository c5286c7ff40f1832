// Package streak is the consecutive-day engine shared by the prayer,
// habit, and scripture logs. One algorithm, parameterized only by the
// per-domain completion predicate; state is recomputed from the raw
// records on every query so a persisted counter can never drift.
package streak

import (
	"sort"
	"time"

	"mihrab/internal/models"
)

// Predicate decides whether a day's record counts as complete.
type Predicate func(models.DailyRecord) bool

// CountAtLeast builds a predicate satisfied by records with Count >= n.
func CountAtLeast(n int) Predicate {
	return func(r models.DailyRecord) bool { return r.Count >= n }
}

// Completed is the default predicate: any positive count.
var Completed = CountAtLeast(1)

const day = 24 * time.Hour

// Compute derives StreakState from an unsorted record set.
//
// The current streak anchors at today or yesterday (today's entry may not
// have been logged yet) and walks backward while days are complete and
// exactly one calendar day apart. A single missed day breaks it; there is
// deliberately no wider grace period. The longest streak is the maximum
// consecutive run anywhere in the history.
func Compute(records []models.DailyRecord, today time.Time, complete Predicate) models.StreakState {
	if complete == nil {
		complete = Completed
	}

	// Deduplicate by date, completed days only.
	seen := make(map[string]struct{}, len(records))
	days := make([]time.Time, 0, len(records))
	for _, r := range records {
		if !complete(r) {
			continue
		}
		if _, ok := seen[r.Date]; ok {
			continue
		}
		d, err := time.ParseInLocation(models.DateLayout, r.Date, time.UTC)
		if err != nil {
			continue
		}
		seen[r.Date] = struct{}{}
		days = append(days, d)
	}
	if len(days) == 0 {
		return models.StreakState{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	current := 0
	if days[0].Equal(anchor) || days[0].Equal(anchor.Add(-day)) {
		current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].Sub(days[i]) != day {
				break
			}
			current++
		}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == day {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return models.StreakState{
		Current:    current,
		Longest:    longest,
		LastActive: days[0].Format(models.DateLayout),
	}
}
