package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category is the namespace of a reminder. Tags of all notifications
// belonging to a category share the "<category>/" prefix.
type Category string

const (
	CategoryPrayer     Category = "prayer"
	CategoryHabit      Category = "habit"
	CategoryReflection Category = "reflection"
	CategoryDigest     Category = "digest"
)

// QuietHours is a local-time suppression window in minutes since midnight.
// Start > End means the window wraps past midnight (overnight window).
// The window is inclusive of Start and exclusive of End.
type QuietHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseClock parses "HH:mm" into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q, want HH:mm", s)
	}
	// strconv.Atoi parses base 10 regardless of leading zeros; a base-0
	// parser would read "09" as broken octal.
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// ParseQuietHours builds a window from "HH:mm" bounds. Both empty means no
// window and returns nil.
func ParseQuietHours(start, end string) (*QuietHours, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	s, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return nil, err
	}
	return &QuietHours{Start: s, End: e}, nil
}

// Contains reports whether the given minute of day falls inside the window.
func (q QuietHours) Contains(minute int) bool {
	if q.Start == q.End {
		return false // zero-length window
	}
	if q.Start < q.End {
		return minute >= q.Start && minute < q.End
	}
	// wrap: [start..24:00) U [00:00..end)
	return minute >= q.Start || minute < q.End
}

// ContainsTime checks the wall-clock minute of t in its own location.
func (q QuietHours) ContainsTime(t time.Time) bool {
	return q.Contains(t.Hour()*60 + t.Minute())
}

// ParseWeekday resolves an English weekday name, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.ToLower(wd.String()) == name {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// ReminderConfig governs scheduling for one category.
type ReminderConfig struct {
	Category    Category
	Enabled     bool
	LeadMinutes int
	QuietHours  *QuietHours
}

// TriggerRule is either a one-shot absolute instant or a weekly recurring
// rule (weekday + local clock minute).
type TriggerRule struct {
	At        time.Time    `json:"at,omitempty"`
	Recurring bool         `json:"recurring,omitempty"`
	Weekday   time.Weekday `json:"weekday,omitempty"`
	Clock     int          `json:"clock,omitempty"`
}

func AbsoluteTrigger(at time.Time) TriggerRule {
	return TriggerRule{At: at}
}

func WeeklyTrigger(weekday time.Weekday, clock int) TriggerRule {
	return TriggerRule{Recurring: true, Weekday: weekday, Clock: clock}
}

// Notification is a request handed to the notification provider. For a
// given Tag at most one notification may be pending at any time; creating a
// new one for the same tag cancels the old one first.
type Notification struct {
	Tag      string      `json:"tag"`
	Category Category    `json:"category"`
	Title    string      `json:"title"`
	Body     string      `json:"body"`
	Trigger  TriggerRule `json:"trigger"`
}
