package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mihrab/internal/models"
)

func testSet(base time.Time) models.InstantSet {
	return models.InstantSet{
		Date:    base.Format(models.DateLayout),
		Fajr:    base.Add(4 * time.Hour),
		Sunrise: base.Add(6 * time.Hour),
		Dhuhr:   base.Add(12 * time.Hour),
		Asr:     base.Add(15 * time.Hour),
		Maghrib: base.Add(19 * time.Hour),
		Isha:    base.Add(21 * time.Hour),
	}
}

func prayerCfg(lead int, quiet *models.QuietHours) models.ReminderConfig {
	return models.ReminderConfig{
		Category:    models.CategoryPrayer,
		Enabled:     true,
		LeadMinutes: lead,
		QuietHours:  quiet,
	}
}

func TestPlanPrayerReminders_TagsAndTriggers(t *testing.T) {
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	set := testSet(base)
	now := base.Add(1 * time.Hour)

	plans := PlanPrayerReminders(set, prayerCfg(10, nil), now, time.UTC)
	require.Len(t, plans, 5)

	assert.Equal(t, "prayer/fajr/2026-08-25", plans[0].Notification.Tag)
	assert.Equal(t, set.Fajr.Add(-10*time.Minute), plans[0].Notification.Trigger.At)
	assert.Equal(t, SkipNone, plans[0].Skip)

	// Sunrise is not a prayer and gets no reminder.
	for _, p := range plans {
		assert.NotContains(t, p.Notification.Tag, "sunrise")
	}
}

func TestPlanPrayerReminders_StaleSkipped(t *testing.T) {
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	set := testSet(base)
	// Past Dhuhr: fajr and dhuhr triggers are behind now.
	now := base.Add(13 * time.Hour)

	plans := PlanPrayerReminders(set, prayerCfg(0, nil), now, time.UTC)
	require.Len(t, plans, 5)
	assert.Equal(t, SkipStale, plans[0].Skip) // fajr
	assert.Equal(t, SkipStale, plans[1].Skip) // dhuhr
	assert.Equal(t, SkipNone, plans[2].Skip)  // asr
	assert.Equal(t, SkipNone, plans[3].Skip)  // maghrib
	assert.Equal(t, SkipNone, plans[4].Skip)  // isha
}

func TestPlanPrayerReminders_QuietHoursSuppress(t *testing.T) {
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	set := testSet(base)
	now := base.Add(1 * time.Hour)

	// 03:00-07:00 window covers the fajr trigger (03:50 with 10min lead).
	quiet := &models.QuietHours{Start: 3 * 60, End: 7 * 60}
	plans := PlanPrayerReminders(set, prayerCfg(10, quiet), now, time.UTC)

	assert.Equal(t, SkipQuiet, plans[0].Skip)
	for _, p := range plans[1:] {
		assert.Equal(t, SkipNone, p.Skip)
	}
}

func TestPlanPrayerReminders_StaleWinsOverQuiet(t *testing.T) {
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	set := testSet(base)
	now := base.Add(5 * time.Hour) // past fajr

	quiet := &models.QuietHours{Start: 0, End: 12 * 60}
	plans := PlanPrayerReminders(set, prayerCfg(0, quiet), now, time.UTC)
	assert.Equal(t, SkipStale, plans[0].Skip)
}

func TestPlanPrayerReminders_Disabled(t *testing.T) {
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	cfg := prayerCfg(0, nil)
	cfg.Enabled = false
	assert.Nil(t, PlanPrayerReminders(testSet(base), cfg, base, time.UTC))
}

func TestPlanPrayerReminders_ZeroLeadTitle(t *testing.T) {
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	plans := PlanPrayerReminders(testSet(base), prayerCfg(0, nil), base, time.UTC)
	assert.Equal(t, "Time for Fajr", plans[0].Notification.Title)

	withLead := PlanPrayerReminders(testSet(base), prayerCfg(15, nil), base, time.UTC)
	assert.Equal(t, "Fajr in 15 minutes", withLead[0].Notification.Title)
}

func TestPlanDailyReminder(t *testing.T) {
	date := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	now := date.Add(8 * time.Hour)
	cfg := models.ReminderConfig{Category: models.CategoryHabit, Enabled: true}

	p := PlanDailyReminder(cfg, 20*60, date, now, time.UTC)
	require.NotNil(t, p)
	assert.Equal(t, "habit/2026-08-25", p.Notification.Tag)
	assert.Equal(t, date.Add(20*time.Hour), p.Notification.Trigger.At)
	assert.Equal(t, SkipNone, p.Skip)

	// Same plan after the governing instant is stale.
	late := PlanDailyReminder(cfg, 20*60, date, date.Add(21*time.Hour), time.UTC)
	require.NotNil(t, late)
	assert.Equal(t, SkipStale, late.Skip)

	cfg.Enabled = false
	assert.Nil(t, PlanDailyReminder(cfg, 20*60, date, now, time.UTC))
}

func TestPlanDailyReminder_LeadAndQuiet(t *testing.T) {
	date := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	cfg := models.ReminderConfig{
		Category:    models.CategoryReflection,
		Enabled:     true,
		LeadMinutes: 30,
		QuietHours:  &models.QuietHours{Start: 21 * 60, End: 6 * 60},
	}

	// 21:30 governing instant minus 30min lead lands at 21:00, the exact
	// quiet window start.
	p := PlanDailyReminder(cfg, 21*60+30, date, date, time.UTC)
	require.NotNil(t, p)
	assert.Equal(t, date.Add(21*time.Hour), p.Notification.Trigger.At)
	assert.Equal(t, SkipQuiet, p.Skip)
}
