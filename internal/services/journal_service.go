package services

import (
	"fmt"
	"time"

	"mihrab/internal/models"
	"mihrab/internal/providers"
	"mihrab/internal/streak"
)

type JournalServiceInterface interface {
	Log(domain models.Domain, subject string, date string, count int, now time.Time) (models.StreakState, []models.Milestone, error)
	Records(domain models.Domain, subject string) []models.DailyRecord
	Streak(domain models.Domain, subject string, today time.Time) models.StreakState
	Subjects(domain models.Domain) []string
	TotalRecords() int
	GetSnapshot() *models.Snapshot
	PutSnapshot(snap *models.Snapshot)
}

// JournalService owns the activity logs for all three domains and answers
// streak queries through the shared engine. Domains differ only in their
// completion predicate: a prayer day is complete once all five prayers are
// logged, scripture and habit days after a single session.
type JournalService struct {
	journal    *models.Journal
	ledger     *models.MilestoneLedger
	milestones MilestoneServiceInterface
	logger     providers.Logger
}

func NewJournalService(
	journal *models.Journal,
	ledger *models.MilestoneLedger,
	milestones MilestoneServiceInterface,
	logger providers.Logger,
) JournalServiceInterface {
	return &JournalService{
		journal:    journal,
		ledger:     ledger,
		milestones: milestones,
		logger:     logger,
	}
}

func domainPredicate(domain models.Domain) streak.Predicate {
	if domain == models.DomainPrayer {
		return streak.CountAtLeast(5)
	}
	return streak.Completed
}

// Log records a completion and re-evaluates the subject's streak, awarding
// any newly crossed milestone. The streak is recomputed before and after so
// the milestone check sees the exact transition.
func (js *JournalService) Log(domain models.Domain, subject string, date string, count int, now time.Time) (models.StreakState, []models.Milestone, error) {
	if subject == "" {
		return models.StreakState{}, nil, fmt.Errorf("subject must not be empty")
	}
	if count <= 0 {
		return models.StreakState{}, nil, fmt.Errorf("count must be positive, got %d", count)
	}
	if _, err := time.ParseInLocation(models.DateLayout, date, time.UTC); err != nil {
		return models.StreakState{}, nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	firstRecord := len(js.journal.Records(domain, subject)) == 0
	prev := js.Streak(domain, subject, now)

	js.journal.Log(domain, subject, models.DailyRecord{Date: date, Count: count})
	js.logger.Debugf(providers.TypeStreak, "logged %s/%s %s count=%d", domain, subject, date, count)

	next := js.Streak(domain, subject, now)
	created := js.milestones.EvaluateTransition(domain, subject, prev, next, firstRecord, now)

	return next, created, nil
}

func (js *JournalService) Records(domain models.Domain, subject string) []models.DailyRecord {
	return js.journal.Records(domain, subject)
}

// Streak recomputes the subject's streak state from the raw records.
func (js *JournalService) Streak(domain models.Domain, subject string, today time.Time) models.StreakState {
	return streak.Compute(js.journal.Records(domain, subject), today, domainPredicate(domain))
}

func (js *JournalService) Subjects(domain models.Domain) []string {
	return js.journal.Subjects(domain)
}

func (js *JournalService) TotalRecords() int {
	return js.journal.Len()
}

func (js *JournalService) GetSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Journal:    js.journal.GetData(),
		Milestones: js.ledger.GetData(),
	}
}

func (js *JournalService) PutSnapshot(snap *models.Snapshot) {
	if snap == nil {
		return
	}
	js.journal.PutData(snap.Journal)
	js.ledger.PutData(snap.Milestones)
}
