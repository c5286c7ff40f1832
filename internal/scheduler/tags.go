package scheduler

import (
	"strings"
	"sync"
	"time"
)

type tagState int

const (
	tagAbsent tagState = iota
	tagPending
	tagFired
	tagCanceled
)

type tagEntry struct {
	mu      sync.Mutex
	state   tagState
	trigger time.Time
	created time.Time
}

// tagRegistry tracks the engine's view of every tag handed to the
// notification provider. Operations on the same tag serialize on a per-tag
// mutex so a replace never interleaves with another replace or cancel for
// that tag; different tags proceed independently.
type tagRegistry struct {
	mu   sync.Mutex
	tags map[string]*tagEntry
}

func newTagRegistry() *tagRegistry {
	return &tagRegistry{tags: make(map[string]*tagEntry)}
}

// entry returns the per-tag record, creating it in the absent state.
func (r *tagRegistry) entry(tag string, now time.Time) *tagEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.tags[tag]
	if !ok {
		e = &tagEntry{created: now}
		r.tags[tag] = e
	}
	return e
}

func (r *tagRegistry) state(tag string) tagState {
	r.mu.Lock()
	e, ok := r.tags[tag]
	r.mu.Unlock()
	if !ok {
		return tagAbsent
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// pendingWithPrefix lists tags currently pending under a namespace prefix
// such as "prayer/".
func (r *tagRegistry) pendingWithPrefix(prefix string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0)
	for tag, e := range r.tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		e.mu.Lock()
		if e.state == tagPending {
			out = append(out, tag)
		}
		e.mu.Unlock()
	}
	return out
}

func (r *tagRegistry) pendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.tags {
		e.mu.Lock()
		if e.state == tagPending {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

// markFired flips pending tags whose trigger has passed. The provider fires
// them on its own; the registry only mirrors that so pruning can reclaim
// them. Recurring tags carry a zero trigger and are never flipped.
func (r *tagRegistry) markFired(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.tags {
		e.mu.Lock()
		if e.state == tagPending && !e.trigger.IsZero() && !e.trigger.After(now) {
			e.state = tagFired
		}
		e.mu.Unlock()
	}
}

// pruneExpired drops fired and canceled entries older than the horizon so
// the registry does not grow without bound across days of replanning.
// Non-pending entries with no trigger (a replace whose schedule call never
// succeeded, or a canceled recurring tag) age out by creation time instead,
// so persistent provider failure cannot grow the map either.
func (r *tagRegistry) pruneExpired(now time.Time, horizon time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tag, e := range r.tags {
		e.mu.Lock()
		done := e.state == tagFired || e.state == tagCanceled
		stale := !e.trigger.IsZero() && now.Sub(e.trigger) > horizon
		abandoned := e.state != tagPending && e.trigger.IsZero() && now.Sub(e.created) > horizon
		e.mu.Unlock()
		if (done && stale) || abandoned {
			delete(r.tags, tag)
		}
	}
}
