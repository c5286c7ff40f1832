package models

import "sync"

// Journal is the in-memory activity log: domain → subject → date → record.
// It backs the streak queries and is persisted as part of the snapshot.
type Journal struct {
	Mutex sync.RWMutex
	Data  map[Domain]map[string]map[string]*DailyRecord
}

func NewJournal() *Journal {
	return &Journal{
		Data: make(map[Domain]map[string]map[string]*DailyRecord),
	}
}

// Log upserts one day's record for a subject. Logging the same date again
// accumulates the count; only one record per date ever exists.
func (j *Journal) Log(domain Domain, subject string, rec DailyRecord) {
	j.Mutex.Lock()
	defer j.Mutex.Unlock()

	subjects, ok := j.Data[domain]
	if !ok {
		subjects = make(map[string]map[string]*DailyRecord)
		j.Data[domain] = subjects
	}
	days, ok := subjects[subject]
	if !ok {
		days = make(map[string]*DailyRecord)
		subjects[subject] = days
	}
	if existing, ok := days[rec.Date]; ok {
		existing.Count += rec.Count
		return
	}
	cp := rec
	days[rec.Date] = &cp
}

// Records returns a copy of all records for a subject, in no particular
// order. Chronological sorting is the streak engine's job.
func (j *Journal) Records(domain Domain, subject string) []DailyRecord {
	j.Mutex.RLock()
	defer j.Mutex.RUnlock()

	days := j.Data[domain][subject]
	out := make([]DailyRecord, 0, len(days))
	for _, r := range days {
		out = append(out, *r)
	}
	return out
}

// Subjects lists every subject with at least one record in a domain.
func (j *Journal) Subjects(domain Domain) []string {
	j.Mutex.RLock()
	defer j.Mutex.RUnlock()

	subjects := j.Data[domain]
	out := make([]string, 0, len(subjects))
	for s := range subjects {
		out = append(out, s)
	}
	return out
}

// Len returns the total number of records across all domains.
func (j *Journal) Len() int {
	j.Mutex.RLock()
	defer j.Mutex.RUnlock()

	n := 0
	for _, subjects := range j.Data {
		for _, days := range subjects {
			n += len(days)
		}
	}
	return n
}

// GetData returns a deep copy of the full journal, for snapshotting.
func (j *Journal) GetData() map[Domain]map[string]map[string]*DailyRecord {
	j.Mutex.RLock()
	defer j.Mutex.RUnlock()

	out := make(map[Domain]map[string]map[string]*DailyRecord, len(j.Data))
	for d, subjects := range j.Data {
		sc := make(map[string]map[string]*DailyRecord, len(subjects))
		for s, days := range subjects {
			dc := make(map[string]*DailyRecord, len(days))
			for date, r := range days {
				cp := *r
				dc[date] = &cp
			}
			sc[s] = dc
		}
		out[d] = sc
	}
	return out
}

// PutData replaces the journal contents, used on restore.
func (j *Journal) PutData(data map[Domain]map[string]map[string]*DailyRecord) {
	j.Mutex.Lock()
	defer j.Mutex.Unlock()
	if data == nil {
		data = make(map[Domain]map[string]map[string]*DailyRecord)
	}
	j.Data = data
}
