package testutil

import (
	"sync"
	"time"

	"mihrab/internal/models"
	"mihrab/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountByLevel returns how many entries were recorded at the given level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockNotifier implements notify.NotifierInterface, recording every call.
// FailSchedules and FailCancels make the next N calls of that kind fail so
// retry behavior can be exercised.
type MockNotifier struct {
	mu            sync.Mutex
	Scheduled     []models.Notification
	Canceled      []string
	FailSchedules int
	FailCancels   int
}

type notifierError string

func (e notifierError) Error() string { return string(e) }

func (m *MockNotifier) Schedule(n models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSchedules > 0 {
		m.FailSchedules--
		return notifierError("schedule unavailable")
	}
	m.Scheduled = append(m.Scheduled, n)
	return nil
}

func (m *MockNotifier) Cancel(tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCancels > 0 {
		m.FailCancels--
		return notifierError("cancel unavailable")
	}
	m.Canceled = append(m.Canceled, tag)
	return nil
}

// ScheduledTags lists the tags handed to Schedule, in order.
func (m *MockNotifier) ScheduledTags() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Scheduled))
	for _, n := range m.Scheduled {
		out = append(out, n.Tag)
	}
	return out
}

// LastScheduled returns the most recent notification, or nil.
func (m *MockNotifier) LastScheduled() *models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Scheduled) == 0 {
		return nil
	}
	n := m.Scheduled[len(m.Scheduled)-1]
	return &n
}

// MockMetrics implements providers.MetricsProviderInterface with plain
// counters keyed by label.
type MockMetrics struct {
	mu           sync.Mutex
	Calculations map[string]int
	Fallbacks    map[string]int
	Scheduled    map[string]int
	Canceled     map[string]int
	Suppressed   map[string]int
	Failures     map[string]int
	Stale        map[string]int
	Milestones   map[string]int
	Requests     int
	Persists     int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Calculations: make(map[string]int),
		Fallbacks:    make(map[string]int),
		Scheduled:    make(map[string]int),
		Canceled:     make(map[string]int),
		Suppressed:   make(map[string]int),
		Failures:     make(map[string]int),
		Stale:        make(map[string]int),
		Milestones:   make(map[string]int),
	}
}

func (m *MockMetrics) bump(counts map[string]int, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts[label]++
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {}
func (m *MockMetrics) IncCalculations(method string)                                  { m.bump(m.Calculations, method) }
func (m *MockMetrics) IncSingularFallbacks(event string)                              { m.bump(m.Fallbacks, event) }
func (m *MockMetrics) IncScheduled(category string)                                   { m.bump(m.Scheduled, category) }
func (m *MockMetrics) IncCanceled(category string)                                    { m.bump(m.Canceled, category) }
func (m *MockMetrics) IncSuppressed(category string)                                  { m.bump(m.Suppressed, category) }
func (m *MockMetrics) IncSchedulingFailures(category string)                          { m.bump(m.Failures, category) }
func (m *MockMetrics) IncStaleSkipped(category string)                                { m.bump(m.Stale, category) }
func (m *MockMetrics) IncMilestones(domain string)                                    { m.bump(m.Milestones, domain) }
func (m *MockMetrics) ObservePersistenceDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
