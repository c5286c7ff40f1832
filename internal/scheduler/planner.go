package scheduler

import (
	"fmt"
	"time"

	"mihrab/internal/models"
)

// SkipReason explains why a planned notification will not be scheduled.
type SkipReason int

const (
	SkipNone  SkipReason = iota
	SkipStale            // trigger already in the past, silently dropped
	SkipQuiet            // trigger inside the quiet-hours window
)

// PlannedNotification pairs a notification with the planner's verdict.
type PlannedNotification struct {
	Notification models.Notification
	Skip         SkipReason
}

// PlanPrayerReminders derives one notification per canonical prayer from an
// offset-applied instant set. Trigger time is the instant minus the lead;
// triggers in the past or inside quiet hours are marked skipped, the rest
// carry date-scoped tags like "prayer/fajr/2026-08-25".
func PlanPrayerReminders(set models.InstantSet, cfg models.ReminderConfig, now time.Time, loc *time.Location) []PlannedNotification {
	if !cfg.Enabled {
		return nil
	}

	lead := time.Duration(cfg.LeadMinutes) * time.Minute
	out := make([]PlannedNotification, 0, 5)
	for _, p := range models.Prayers() {
		trigger := set.At(p).Add(-lead)
		n := models.Notification{
			Tag:      fmt.Sprintf("%s/%s/%s", cfg.Category, p.LowerString(), set.Date),
			Category: cfg.Category,
			Title:    fmt.Sprintf("%s in %d minutes", p, cfg.LeadMinutes),
			Body:     fmt.Sprintf("%s is at %s.", p, set.At(p).In(loc).Format("15:04")),
			Trigger:  models.AbsoluteTrigger(trigger),
		}
		if cfg.LeadMinutes == 0 {
			n.Title = fmt.Sprintf("Time for %s", p)
		}
		out = append(out, PlannedNotification{Notification: n, Skip: verdict(trigger, now, cfg.QuietHours, loc)})
	}
	return out
}

// PlanDailyReminder derives the single clock-driven notification for a
// category on one calendar date.
func PlanDailyReminder(cfg models.ReminderConfig, clock int, date time.Time, now time.Time, loc *time.Location) *PlannedNotification {
	if !cfg.Enabled {
		return nil
	}

	local := date.In(loc)
	governing := time.Date(local.Year(), local.Month(), local.Day(), clock/60, clock%60, 0, 0, loc)
	trigger := governing.Add(-time.Duration(cfg.LeadMinutes) * time.Minute)

	n := models.Notification{
		Tag:      fmt.Sprintf("%s/%s", cfg.Category, governing.Format(models.DateLayout)),
		Category: cfg.Category,
		Title:    dailyTitle(cfg.Category),
		Body:     dailyBody(cfg.Category),
		Trigger:  models.AbsoluteTrigger(trigger),
	}
	return &PlannedNotification{Notification: n, Skip: verdict(trigger, now, cfg.QuietHours, loc)}
}

// verdict applies the skip rules in precedence order: stale first, then
// quiet hours evaluated on the trigger's local wall clock.
func verdict(trigger, now time.Time, quiet *models.QuietHours, loc *time.Location) SkipReason {
	if !trigger.After(now) {
		return SkipStale
	}
	if quiet != nil && quiet.ContainsTime(trigger.In(loc)) {
		return SkipQuiet
	}
	return SkipNone
}

func dailyTitle(c models.Category) string {
	switch c {
	case models.CategoryHabit:
		return "Daily habit check-in"
	case models.CategoryReflection:
		return "Evening reflection"
	}
	return "Reminder"
}

func dailyBody(c models.Category) string {
	switch c {
	case models.CategoryHabit:
		return "Mark today's habits before the day slips away."
	case models.CategoryReflection:
		return "A few minutes of reading and reflection."
	}
	return ""
}
