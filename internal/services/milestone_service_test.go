package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mihrab/internal/models"
	"mihrab/internal/testutil"
)

func newTestMilestoneService(t *testing.T) (MilestoneServiceInterface, *models.MilestoneLedger, *testutil.MockNotifier) {
	t.Helper()
	ledger := models.NewMilestoneLedger()
	notifier := &testutil.MockNotifier{}
	svc := NewMilestoneService(ledger, notifier, &testutil.MockLogger{}, testutil.NewMockMetrics())
	return svc, ledger, notifier
}

func TestMilestoneService_ThresholdAwardedOnce(t *testing.T) {
	svc, ledger, notifier := newTestMilestoneService(t)
	when := time.Date(2026, 8, 25, 5, 0, 0, 0, time.UTC)

	prev := models.StreakState{Current: 6}
	next := models.StreakState{Current: 7}

	created := svc.EvaluateTransition(models.DomainPrayer, "daily", prev, next, false, when)
	require.Len(t, created, 1)
	assert.Equal(t, 7, created[0].Value)

	// The same transition evaluated again is a silent no-op.
	created = svc.EvaluateTransition(models.DomainPrayer, "daily", prev, next, false, when)
	assert.Empty(t, created)
	assert.Len(t, ledger.List("daily"), 1)
	assert.Len(t, notifier.Scheduled, 1)
}

func TestMilestoneService_JumpPastThresholdDoesNotFire(t *testing.T) {
	svc, ledger, _ := newTestMilestoneService(t)
	when := time.Date(2026, 8, 25, 5, 0, 0, 0, time.UTC)

	created := svc.EvaluateTransition(models.DomainHabit, "fasting",
		models.StreakState{Current: 6}, models.StreakState{Current: 9}, false, when)
	assert.Empty(t, created)
	assert.Empty(t, ledger.List("fasting"))
}

func TestMilestoneService_FirstCompletion(t *testing.T) {
	svc, _, notifier := newTestMilestoneService(t)
	when := time.Date(2026, 8, 25, 5, 0, 0, 0, time.UTC)

	created := svc.EvaluateTransition(models.DomainScripture, "quran",
		models.StreakState{}, models.StreakState{Current: 1}, true, when)
	require.Len(t, created, 1)
	assert.Equal(t, models.MilestoneFirstCompletion, created[0].Type)

	last := notifier.LastScheduled()
	require.NotNil(t, last)
	assert.Equal(t, "milestone/scripture/quran/first-completion/1", last.Tag)
	assert.Equal(t, when, last.Trigger.At)
}

func TestMilestoneService_NotifierFailureStillAwards(t *testing.T) {
	svc, ledger, notifier := newTestMilestoneService(t)
	notifier.FailSchedules = 2

	created := svc.EvaluateTransition(models.DomainHabit, "fasting",
		models.StreakState{}, models.StreakState{Current: 1}, true, time.Now())

	// The ledger entry is the durable fact; a lost notification is only
	// logged.
	require.Len(t, created, 1)
	assert.Len(t, ledger.List("fasting"), 1)
}

func TestMilestoneService_Milestones(t *testing.T) {
	svc, _, _ := newTestMilestoneService(t)
	when := time.Now()

	svc.EvaluateTransition(models.DomainHabit, "a", models.StreakState{}, models.StreakState{Current: 1}, true, when)
	svc.EvaluateTransition(models.DomainHabit, "b", models.StreakState{}, models.StreakState{Current: 1}, true, when)

	assert.Len(t, svc.Milestones("a"), 1)
	assert.Len(t, svc.Milestones(""), 2)
}
