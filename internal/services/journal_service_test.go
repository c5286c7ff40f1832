package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mihrab/internal/models"
	"mihrab/internal/testutil"
)

func newTestJournalService(t *testing.T) (JournalServiceInterface, *testutil.MockNotifier, *testutil.MockMetrics) {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	notifier := &testutil.MockNotifier{}
	ledger := models.NewMilestoneLedger()
	milestones := NewMilestoneService(ledger, notifier, logger, metrics)
	return NewJournalService(models.NewJournal(), ledger, milestones, logger), notifier, metrics
}

func at(d string) time.Time {
	ts, err := time.ParseInLocation(models.DateLayout, d, time.UTC)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestJournalService_Log_Validation(t *testing.T) {
	svc, _, _ := newTestJournalService(t)
	now := at("2026-08-25")

	_, _, err := svc.Log(models.DomainHabit, "", "2026-08-25", 1, now)
	assert.Error(t, err)

	_, _, err = svc.Log(models.DomainHabit, "fasting", "2026-08-25", 0, now)
	assert.Error(t, err)

	_, _, err = svc.Log(models.DomainHabit, "fasting", "25/08/2026", 1, now)
	assert.Error(t, err)
}

func TestJournalService_Log_FirstCompletionMilestone(t *testing.T) {
	svc, notifier, metrics := newTestJournalService(t)
	now := at("2026-08-25")

	state, created, err := svc.Log(models.DomainHabit, "fasting", "2026-08-25", 1, now)
	require.NoError(t, err)

	assert.Equal(t, 1, state.Current)
	require.Len(t, created, 1)
	assert.Equal(t, models.MilestoneFirstCompletion, created[0].Type)
	assert.Equal(t, 1, metrics.Milestones["habit"])

	last := notifier.LastScheduled()
	require.NotNil(t, last)
	assert.Equal(t, "milestone/habit/fasting/first-completion/1", last.Tag)
}

func TestJournalService_Log_StreakThresholdOnce(t *testing.T) {
	svc, _, metrics := newTestJournalService(t)

	// Log three consecutive days; the third crosses the first threshold.
	var created []models.Milestone
	for i := 0; i < 3; i++ {
		date := at("2026-08-23").AddDate(0, 0, i)
		var err error
		_, created, err = svc.Log(models.DomainScripture, "quran", date.Format(models.DateLayout), 1, date)
		require.NoError(t, err)
	}
	require.Len(t, created, 1)
	assert.Equal(t, models.MilestoneStreakThreshold, created[0].Type)
	assert.Equal(t, 3, created[0].Value)

	// Re-logging the same day keeps the streak at 3 and awards nothing new.
	_, created, err := svc.Log(models.DomainScripture, "quran", "2026-08-25", 1, at("2026-08-25"))
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, 2, metrics.Milestones["scripture"]) // first-completion + 3-day
}

func TestJournalService_PrayerDomainNeedsFivePrayers(t *testing.T) {
	svc, _, _ := newTestJournalService(t)
	now := at("2026-08-25")

	state, _, err := svc.Log(models.DomainPrayer, "daily", "2026-08-25", 3, now)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Current) // 3 of 5 prayers is not a complete day

	state, _, err = svc.Log(models.DomainPrayer, "daily", "2026-08-25", 2, now)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Current) // counts accumulate to 5
}

func TestJournalService_StreakPerSubject(t *testing.T) {
	svc, _, _ := newTestJournalService(t)
	now := at("2026-08-25")

	_, _, err := svc.Log(models.DomainHabit, "fasting", "2026-08-25", 1, now)
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Streak(models.DomainHabit, "fasting", now).Current)
	assert.Equal(t, 0, svc.Streak(models.DomainHabit, "charity", now).Current)
}

func TestJournalService_SnapshotRoundtrip(t *testing.T) {
	src, _, _ := newTestJournalService(t)
	now := at("2026-08-25")
	_, _, err := src.Log(models.DomainHabit, "fasting", "2026-08-25", 1, now)
	require.NoError(t, err)

	snap := src.GetSnapshot()
	require.NotNil(t, snap)

	dst, _, _ := newTestJournalService(t)
	dst.PutSnapshot(snap)

	assert.Equal(t, 1, dst.TotalRecords())
	assert.Equal(t, 1, dst.Streak(models.DomainHabit, "fasting", now).Current)

	// A restored ledger never re-awards: logging the same first day again
	// creates no duplicate first-completion milestone.
	_, created, err := dst.Log(models.DomainHabit, "fasting", "2026-08-25", 1, now)
	require.NoError(t, err)
	assert.Empty(t, created)

	dst.PutSnapshot(nil)
	assert.Equal(t, 1, dst.TotalRecords())
}
