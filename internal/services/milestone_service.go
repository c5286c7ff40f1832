package services

import (
	"fmt"
	"time"

	"mihrab/internal/models"
	"mihrab/internal/notify"
	"mihrab/internal/providers"
	"mihrab/internal/streak"
)

type MilestoneServiceInterface interface {
	EvaluateTransition(domain models.Domain, subject string, prev, next models.StreakState, firstRecord bool, at time.Time) []models.Milestone
	Milestones(subject string) []models.Milestone
}

// MilestoneService watches streak transitions for threshold crossings and
// awards each milestone at most once. The ledger's (subject, type, value)
// uniqueness makes re-awards a silent no-op, never an error.
type MilestoneService struct {
	ledger     *models.MilestoneLedger
	notifier   notify.NotifierInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	thresholds []int
}

func NewMilestoneService(
	ledger *models.MilestoneLedger,
	notifier notify.NotifierInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) MilestoneServiceInterface {
	return &MilestoneService{
		ledger:     ledger,
		notifier:   notifier,
		logger:     logger,
		metrics:    metrics,
		thresholds: streak.DefaultThresholds,
	}
}

// EvaluateTransition awards the first-completion milestone on a subject's
// first record and a streak-threshold milestone when the current streak
// newly equals a threshold. Returns only the milestones actually created.
func (ms *MilestoneService) EvaluateTransition(
	domain models.Domain, subject string,
	prev, next models.StreakState,
	firstRecord bool, at time.Time,
) []models.Milestone {
	var created []models.Milestone

	if firstRecord {
		created = ms.award(created, models.Milestone{
			Domain:     domain,
			SubjectID:  subject,
			Type:       models.MilestoneFirstCompletion,
			Value:      1,
			AchievedAt: at,
		})
	}

	if threshold, ok := streak.NewlyReached(prev.Current, next.Current, ms.thresholds); ok {
		created = ms.award(created, models.Milestone{
			Domain:     domain,
			SubjectID:  subject,
			Type:       models.MilestoneStreakThreshold,
			Value:      threshold,
			AchievedAt: at,
		})
	}

	return created
}

func (ms *MilestoneService) Milestones(subject string) []models.Milestone {
	return ms.ledger.List(subject)
}

func (ms *MilestoneService) award(created []models.Milestone, m models.Milestone) []models.Milestone {
	if !ms.ledger.Upsert(m) {
		// Already awarded; idempotent success.
		return created
	}

	ms.logger.Infof(providers.TypeStreak, "milestone %s value=%d for %s/%s", m.Type, m.Value, m.Domain, m.SubjectID)
	ms.metrics.IncMilestones(string(m.Domain))

	n := models.Notification{
		Tag:      fmt.Sprintf("milestone/%s/%s/%s/%d", m.Domain, m.SubjectID, m.Type, m.Value),
		Category: models.Category(m.Domain),
		Title:    milestoneTitle(m),
		Body:     milestoneBody(m),
		Trigger:  models.AbsoluteTrigger(m.AchievedAt),
	}
	if err := ms.notifier.Schedule(n); err != nil {
		ms.logger.Errorf(providers.TypeSched, "milestone notification %s failed: %s", n.Tag, err)
	}

	return append(created, m)
}

func milestoneTitle(m models.Milestone) string {
	if m.Type == models.MilestoneFirstCompletion {
		return "First step taken"
	}
	return fmt.Sprintf("%d-day streak", m.Value)
}

func milestoneBody(m models.Milestone) string {
	switch m.Type {
	case models.MilestoneFirstCompletion:
		return fmt.Sprintf("You completed %s for the first time. Keep going!", m.SubjectID)
	default:
		return fmt.Sprintf("%s has stayed consistent for %d days straight.", m.SubjectID, m.Value)
	}
}
