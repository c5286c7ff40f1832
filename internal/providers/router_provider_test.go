package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingMetrics is the minimal MetricsProviderInterface for these tests;
// testutil cannot be used here because it imports this package.
type countingMetrics struct {
	requests int
	statuses []int
}

func (m *countingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requests++
	m.statuses = append(m.statuses, status)
}
func (m *countingMetrics) ObserveRequestDuration(string, time.Duration) {}
func (m *countingMetrics) IncCalculations(string)                       {}
func (m *countingMetrics) IncSingularFallbacks(string)                  {}
func (m *countingMetrics) IncScheduled(string)                          {}
func (m *countingMetrics) IncCanceled(string)                           {}
func (m *countingMetrics) IncSuppressed(string)                         {}
func (m *countingMetrics) IncSchedulingFailures(string)                 {}
func (m *countingMetrics) IncStaleSkipped(string)                       {}
func (m *countingMetrics) IncMilestones(string)                         {}
func (m *countingMetrics) ObservePersistenceDuration(time.Duration)     {}

func TestRouterProvider_MethodEnforcement(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/api/times", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rp.Post("/api/log", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)

	byURL := make(map[string]http.Handler, len(routes))
	for _, rt := range routes {
		byURL[rt.Url] = rt.Handler
	}

	w := httptest.NewRecorder()
	byURL["/api/times"].ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/times", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	byURL["/api/times"].ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/times", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	byURL["/api/log"].ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/log", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	metrics := &countingMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/next", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, 1, metrics.requests)
	assert.Equal(t, []int{http.StatusTeapot}, metrics.statuses)
}
