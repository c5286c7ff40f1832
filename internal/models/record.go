package models

import (
	"fmt"
	"strconv"
	"time"
)

// Domain names an activity log. The streak engine treats every domain
// identically; only the completion predicate differs.
type Domain string

const (
	DomainPrayer    Domain = "prayer"
	DomainHabit     Domain = "habit"
	DomainScripture Domain = "scripture"
)

// Domains lists every tracked activity domain.
func Domains() []Domain {
	return []Domain{DomainPrayer, DomainHabit, DomainScripture}
}

// ParseDomain resolves a domain name from external input.
func ParseDomain(s string) (Domain, error) {
	for _, d := range Domains() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// DailyRecord is one day's activity for one subject. Count carries the
// domain-specific quantity (prayers completed, verses read, habit done);
// what counts as "complete" is decided by the domain's predicate.
type DailyRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StreakState is recomputed from scratch on every query; no running counter
// is persisted, so it cannot drift. Current <= Longest always.
type StreakState struct {
	Current    int    `json:"current"`
	Longest    int    `json:"longest"`
	LastActive string `json:"last_active,omitempty"`
}

// Milestone kinds.
const (
	MilestoneFirstCompletion = "first-completion"
	MilestoneStreakThreshold = "streak-threshold"
)

// Milestone is a one-time achievement, immutable once created. The
// (SubjectID, Type, Value) triple is the uniqueness key.
type Milestone struct {
	Domain     Domain    `json:"domain"`
	SubjectID  string    `json:"subject_id"`
	Type       string    `json:"type"`
	Value      int       `json:"value"`
	AchievedAt time.Time `json:"achieved_at"`
}

// Key returns the uniqueness key enforcing idempotent awards.
func (m Milestone) Key() string {
	return m.SubjectID + "|" + m.Type + "|" + strconv.Itoa(m.Value)
}
