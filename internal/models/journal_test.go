package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_LogAccumulatesSameDate(t *testing.T) {
	j := NewJournal()
	j.Log(DomainPrayer, "daily", DailyRecord{Date: "2026-08-25", Count: 3})
	j.Log(DomainPrayer, "daily", DailyRecord{Date: "2026-08-25", Count: 2})

	records := j.Records(DomainPrayer, "daily")
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Count)
}

func TestJournal_RecordsReturnsCopy(t *testing.T) {
	j := NewJournal()
	j.Log(DomainHabit, "fasting", DailyRecord{Date: "2026-08-25", Count: 1})

	records := j.Records(DomainHabit, "fasting")
	records[0].Count = 99

	again := j.Records(DomainHabit, "fasting")
	assert.Equal(t, 1, again[0].Count)
}

func TestJournal_DomainsAreIsolated(t *testing.T) {
	j := NewJournal()
	j.Log(DomainPrayer, "daily", DailyRecord{Date: "2026-08-25", Count: 5})
	j.Log(DomainScripture, "daily", DailyRecord{Date: "2026-08-25", Count: 1})

	assert.Len(t, j.Records(DomainPrayer, "daily"), 1)
	assert.Len(t, j.Records(DomainScripture, "daily"), 1)
	assert.Empty(t, j.Records(DomainHabit, "daily"))
	assert.Equal(t, 2, j.Len())
}

func TestJournal_SubjectsAndLen(t *testing.T) {
	j := NewJournal()
	j.Log(DomainHabit, "fasting", DailyRecord{Date: "2026-08-24", Count: 1})
	j.Log(DomainHabit, "charity", DailyRecord{Date: "2026-08-24", Count: 1})
	j.Log(DomainHabit, "charity", DailyRecord{Date: "2026-08-25", Count: 1})

	assert.ElementsMatch(t, []string{"fasting", "charity"}, j.Subjects(DomainHabit))
	assert.Equal(t, 3, j.Len())
}

func TestJournal_SnapshotRoundtrip(t *testing.T) {
	j := NewJournal()
	j.Log(DomainPrayer, "daily", DailyRecord{Date: "2026-08-25", Count: 5})

	data := j.GetData()
	// The copy must be detached from the live journal.
	data[DomainPrayer]["daily"]["2026-08-25"].Count = 99
	assert.Equal(t, 5, j.Records(DomainPrayer, "daily")[0].Count)

	restored := NewJournal()
	restored.PutData(data)
	assert.Equal(t, 99, restored.Records(DomainPrayer, "daily")[0].Count)

	restored.PutData(nil)
	assert.Equal(t, 0, restored.Len())
}

func TestMilestoneLedger_UpsertIdempotent(t *testing.T) {
	l := NewMilestoneLedger()
	m := Milestone{
		Domain:     DomainPrayer,
		SubjectID:  "daily",
		Type:       MilestoneStreakThreshold,
		Value:      7,
		AchievedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}

	assert.True(t, l.Upsert(m))
	assert.False(t, l.Upsert(m))
	assert.True(t, l.Has(m))
	assert.Len(t, l.List("daily"), 1)
}

func TestMilestoneLedger_KeyDiscriminates(t *testing.T) {
	l := NewMilestoneLedger()
	base := Milestone{SubjectID: "daily", Type: MilestoneStreakThreshold, Value: 7}

	require.True(t, l.Upsert(base))

	other := base
	other.Value = 14
	assert.True(t, l.Upsert(other))

	first := base
	first.Type = MilestoneFirstCompletion
	first.Value = 1
	assert.True(t, l.Upsert(first))

	assert.Len(t, l.List("daily"), 3)
}

func TestMilestoneLedger_ListBySubject(t *testing.T) {
	l := NewMilestoneLedger()
	l.Upsert(Milestone{SubjectID: "a", Type: MilestoneFirstCompletion, Value: 1})
	l.Upsert(Milestone{SubjectID: "b", Type: MilestoneFirstCompletion, Value: 1})

	assert.Len(t, l.List("a"), 1)
	assert.Len(t, l.List(""), 2)
}

func TestMilestoneLedger_PutDataReplaces(t *testing.T) {
	l := NewMilestoneLedger()
	l.Upsert(Milestone{SubjectID: "old", Type: MilestoneFirstCompletion, Value: 1})

	l.PutData([]Milestone{{SubjectID: "new", Type: MilestoneFirstCompletion, Value: 1}})
	assert.Empty(t, l.List("old"))
	assert.Len(t, l.List("new"), 1)
}
