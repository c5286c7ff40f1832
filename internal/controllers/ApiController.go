package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"mihrab/internal/models"
	"mihrab/internal/providers"
	"mihrab/internal/scheduler/interfaces"
	"mihrab/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger    providers.Logger
	prayers   services.PrayerServiceInterface
	journal   services.JournalServiceInterface
	scheduler interfaces.SchedulerInterface
	cache     providers.CacheProviderInterface
}

func NewApiController(
	logger providers.Logger,
	prayers services.PrayerServiceInterface,
	journal services.JournalServiceInterface,
	scheduler interfaces.SchedulerInterface,
	cache providers.CacheProviderInterface,
) *ApiController {
	return &ApiController{
		logger:    logger,
		prayers:   prayers,
		journal:   journal,
		scheduler: scheduler,
		cache:     cache,
	}
}

type timesResponse struct {
	Date     string            `json:"date"`
	Timezone string            `json:"timezone"`
	Times    map[string]string `json:"times"`
}

type nextResponse struct {
	Active           string    `json:"active"`
	Next             string    `json:"next"`
	NextAt           time.Time `json:"next_at"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

type streakResponse struct {
	Domain  string             `json:"domain"`
	Subject string             `json:"subject"`
	Streak  models.StreakState `json:"streak"`
}

type logRequest struct {
	Domain  string `json:"domain"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
	Count   int    `json:"count"`
}

type logResponse struct {
	Streak     models.StreakState `json:"streak"`
	Milestones []models.Milestone `json:"milestones"`
}

type reminderRequest struct {
	Category string `json:"category"`
	Enabled  bool   `json:"enabled"`
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// writeError maps the absent-location state to 409 so clients can tell "set
// a location first" apart from a genuine failure.
func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	if err == models.ErrNoLocation {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// GetTimes serves the instant set for the requested local date, today by
// default. Instants are rendered in the configured timezone.
func (ac *ApiController) GetTimes(w http.ResponseWriter, r *http.Request) {
	loc := ac.prayers.Location()
	date := time.Now().In(loc)
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, q, loc)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	ac.serveFromCacheOrCompute(w, "api:times:"+date.Format(models.DateLayout), func() (any, error) {
		set, err := ac.prayers.TimesForDate(date)
		if err != nil {
			return nil, err
		}
		times := make(map[string]string, 6)
		for _, p := range models.AllEvents() {
			times[p.LowerString()] = set.At(p).In(loc).Format("15:04")
		}
		return timesResponse{Date: set.Date, Timezone: loc.String(), Times: times}, nil
	})
}

// GetNext resolves the active and next prayer around the request instant.
// Never cached: Remaining decays by the second.
func (ac *ApiController) GetNext(w http.ResponseWriter, r *http.Request) {
	res, err := ac.prayers.Resolve(time.Now())
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nextResponse{
		Active:           res.Active.LowerString(),
		Next:             res.Next.LowerString(),
		NextAt:           res.NextAt,
		RemainingSeconds: int64(res.Remaining.Seconds()),
	})
}

func (ac *ApiController) GetQibla(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "api:qibla", func() (any, error) {
		return ac.prayers.Qibla()
	})
}

// GetStreaks answers for one subject when ?subject= is given, otherwise for
// every subject in the domain.
func (ac *ApiController) GetStreaks(w http.ResponseWriter, r *http.Request) {
	domain, err := models.ParseDomain(r.URL.Query().Get("domain"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	subject := r.URL.Query().Get("subject")

	ac.serveFromCacheOrCompute(w, "api:streaks:"+string(domain)+":"+subject, func() (any, error) {
		now := time.Now()
		if subject != "" {
			return []streakResponse{{
				Domain:  string(domain),
				Subject: subject,
				Streak:  ac.journal.Streak(domain, subject, now),
			}}, nil
		}
		subjects := ac.journal.Subjects(domain)
		out := make([]streakResponse, 0, len(subjects))
		for _, s := range subjects {
			out = append(out, streakResponse{
				Domain:  string(domain),
				Subject: s,
				Streak:  ac.journal.Streak(domain, s, now),
			})
		}
		return out, nil
	})
}

// LogCompletion records a completion and returns the updated streak plus any
// milestone the transition crossed. Cached streak entries for the subject
// are invalidated so the next read reflects the write.
func (ac *ApiController) LogCompletion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload logRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	domain, err := models.ParseDomain(payload.Domain)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	now := time.Now()
	if payload.Date == "" {
		payload.Date = now.In(ac.prayers.Location()).Format(models.DateLayout)
	}
	if payload.Count == 0 {
		payload.Count = 1
	}

	streak, milestones, err := ac.journal.Log(domain, payload.Subject, payload.Date, payload.Count, now)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ac.cache.Del("api:streaks:" + string(domain) + ":" + payload.Subject)
	ac.cache.Del("api:streaks:" + string(domain) + ":")

	if milestones == nil {
		milestones = []models.Milestone{}
	}
	writeJSON(w, http.StatusCreated, logResponse{Streak: streak, Milestones: milestones})
}

// SetReminder enables or disables a reminder category at runtime.
func (ac *ApiController) SetReminder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.scheduler.SetCategoryEnabled(models.Category(payload.Category), payload.Enabled); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
