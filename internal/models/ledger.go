package models

import "sync"

// MilestoneLedger is the idempotent milestone store. Upsert is keyed by
// (subject, type, value): a second award for the same key is a no-op
// success, never an error.
type MilestoneLedger struct {
	Mutex sync.RWMutex
	Data  map[string]*Milestone
}

func NewMilestoneLedger() *MilestoneLedger {
	return &MilestoneLedger{Data: make(map[string]*Milestone)}
}

// Upsert stores the milestone unless its key already exists. It reports
// whether a new milestone was created.
func (l *MilestoneLedger) Upsert(m Milestone) bool {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()

	key := m.Key()
	if _, ok := l.Data[key]; ok {
		return false
	}
	cp := m
	l.Data[key] = &cp
	return true
}

// Has reports whether a milestone with the same key has been awarded.
func (l *MilestoneLedger) Has(m Milestone) bool {
	l.Mutex.RLock()
	defer l.Mutex.RUnlock()
	_, ok := l.Data[m.Key()]
	return ok
}

// List returns all milestones for a subject, every domain included when
// subject is empty.
func (l *MilestoneLedger) List(subject string) []Milestone {
	l.Mutex.RLock()
	defer l.Mutex.RUnlock()

	out := make([]Milestone, 0, len(l.Data))
	for _, m := range l.Data {
		if subject != "" && m.SubjectID != subject {
			continue
		}
		out = append(out, *m)
	}
	return out
}

// GetData returns a copy of all milestones, for snapshotting.
func (l *MilestoneLedger) GetData() []Milestone {
	return l.List("")
}

// PutData replaces the ledger contents, used on restore.
func (l *MilestoneLedger) PutData(milestones []Milestone) {
	l.Mutex.Lock()
	defer l.Mutex.Unlock()

	l.Data = make(map[string]*Milestone, len(milestones))
	for i := range milestones {
		cp := milestones[i]
		l.Data[cp.Key()] = &cp
	}
}

// Snapshot is the on-disk persistence format for the journal and ledger.
type Snapshot struct {
	Journal    map[Domain]map[string]map[string]*DailyRecord `json:"journal"`
	Milestones []Milestone                                   `json:"milestones"`
}
