package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
	"mihrab/internal/astro"
	"mihrab/internal/models"
	"mihrab/internal/notify"
	"mihrab/internal/providers"
	"mihrab/internal/scheduler/interfaces"
	"mihrab/internal/services"
	"mihrab/internal/structures"
)

// registry horizon: fired and canceled tags are kept around this long so
// late replans still see them, then reclaimed.
const pruneHorizon = 48 * time.Hour

const digestTag = "digest/weekly"

// Engine keeps the pending notification set in sync with the calculated
// instants. It replans today and tomorrow on a fixed cadence and persists
// the journal snapshot on another; both run under opsMu so a replan never
// races a persist or an enable/disable flip.
type Engine struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	prayers     services.PrayerServiceInterface
	notifier    notify.NotifierInterface
	fileManager *FileManager

	cron    *gron.Cron
	opsMu   sync.Mutex
	tags    *tagRegistry
	enabled map[models.Category]*atomic.Bool
	clock   func() time.Time
}

func NewEngine(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	prayers services.PrayerServiceInterface,
	notifier notify.NotifierInterface,
	fileManager *FileManager,
) interfaces.SchedulerInterface {
	enabled := map[models.Category]*atomic.Bool{
		models.CategoryPrayer:     atomic.NewBool(config.Reminders.Prayer.Enabled),
		models.CategoryHabit:      atomic.NewBool(config.Reminders.Habit.Enabled),
		models.CategoryReflection: atomic.NewBool(config.Reminders.Reflection.Enabled),
		models.CategoryDigest:     atomic.NewBool(config.Reminders.Digest.Enabled),
	}
	return &Engine{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		prayers:     prayers,
		notifier:    notifier,
		fileManager: fileManager,
		tags:        newTagRegistry(),
		enabled:     enabled,
		clock:       time.Now,
	}
}

func (e *Engine) Init() {
	e.cron = gron.New()

	e.cron.AddFunc(gron.Every(e.config.Scheduler.ReplanInterval), func() {
		if err := e.Replan(); err != nil {
			e.logger.Errorf(providers.TypeSched, "Replan failed: %s", err)
		}
	})

	e.cron.AddFunc(gron.Every(e.config.Persistence.SaveInterval), func() {
		if err := e.Persist(); err != nil {
			return
		}
		e.logger.Infof(providers.TypeSched, "Persisted journal to file %s", e.config.Persistence.FilePath)
	})

	e.opsMu.Lock()
	e.scheduleDigest()
	e.opsMu.Unlock()

	if err := e.Replan(); err != nil {
		e.logger.Errorf(providers.TypeSched, "Initial replan failed: %s", err)
	}

	e.cron.Start()
}

func (e *Engine) Stop() {
	if e.cron != nil {
		e.cron.Stop()
	}
}

// Replan recomputes the plans for today and tomorrow and reconciles the
// provider's pending set against them. Safe to call at any time; the engine
// never trusts a plan older than the replan interval.
func (e *Engine) Replan() error {
	e.opsMu.Lock()
	defer e.opsMu.Unlock()
	return e.replan()
}

func (e *Engine) replan() error {
	now := e.clock()
	loc := e.prayers.Location()

	e.tags.markFired(now)
	e.tags.pruneExpired(now, pruneHorizon)

	today := now.In(loc)
	dates := []time.Time{today, today.AddDate(0, 0, 1)}

	e.planPrayers(dates, now, loc)
	e.planDaily(models.CategoryHabit, e.config.Reminders.Habit, dates, now, loc)
	e.planDaily(models.CategoryReflection, e.config.Reminders.Reflection, dates, now, loc)

	e.logger.Debugf(providers.TypeSched, "replan complete, %d tags pending", e.tags.pendingCount())
	return nil
}

func (e *Engine) planPrayers(dates []time.Time, now time.Time, loc *time.Location) {
	cfg := e.reminderConfig(models.CategoryPrayer, e.config.Reminders.Prayer)
	if !cfg.Enabled {
		return
	}

	for _, date := range dates {
		set, err := e.prayers.TimesForDate(date)
		if errors.Is(err, models.ErrNoLocation) {
			e.logger.Infof(providers.TypeSched, "no location configured, prayer reminders paused")
			return
		}
		if errors.Is(err, astro.ErrPolarDate) {
			e.logger.Warnf(providers.TypeSched, "no resolvable instants on %s, skipping", date.Format(models.DateLayout))
			continue
		}
		if err != nil {
			e.logger.Errorf(providers.TypeSched, "instant set for %s: %s", date.Format(models.DateLayout), err)
			continue
		}
		for _, p := range PlanPrayerReminders(set, cfg, now, loc) {
			e.apply(p)
		}
	}
}

func (e *Engine) planDaily(category models.Category, c structures.ReminderCategoryConfig, dates []time.Time, now time.Time, loc *time.Location) {
	cfg := e.reminderConfig(category, c)
	if !cfg.Enabled {
		return
	}
	clock, err := models.ParseClock(c.At)
	if err != nil {
		e.logger.Errorf(providers.TypeSched, "reminders.%s.at: %s", category, err)
		return
	}
	for _, date := range dates {
		if p := PlanDailyReminder(cfg, clock, date, now, loc); p != nil {
			e.apply(*p)
		}
	}
}

func (e *Engine) reminderConfig(category models.Category, c structures.ReminderCategoryConfig) models.ReminderConfig {
	quiet, _ := models.ParseQuietHours(c.QuietHours.Start, c.QuietHours.End)
	return models.ReminderConfig{
		Category:    category,
		Enabled:     e.enabled[category].Load(),
		LeadMinutes: c.LeadMinutes,
		QuietHours:  quiet,
	}
}

// apply reconciles a single planned notification with the provider. Stale
// triggers are dropped without a sound; quiet-hours suppression also cancels
// a pending notification carrying the same tag, so a window widened at
// runtime takes effect on the next replan.
func (e *Engine) apply(p PlannedNotification) {
	category := string(p.Notification.Category)
	switch p.Skip {
	case SkipStale:
		e.metrics.IncStaleSkipped(category)
	case SkipQuiet:
		e.metrics.IncSuppressed(category)
		if e.tags.state(p.Notification.Tag) == tagPending {
			e.cancelTag(p.Notification.Tag, category)
		}
		e.logger.Debugf(providers.TypeSched, "suppressed %s by quiet hours", p.Notification.Tag)
	default:
		if err := e.replace(p.Notification); err != nil {
			e.metrics.IncSchedulingFailures(category)
			e.logger.Errorf(providers.TypeSched, "schedule %s: %s", p.Notification.Tag, err)
		}
	}
}

// replace installs a notification under its tag, canceling any pending one
// first. A pending notification with the same trigger is left alone, which
// makes replanning idempotent. Provider calls are retried once.
func (e *Engine) replace(n models.Notification) error {
	entry := e.tags.entry(n.Tag, e.clock())
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.state == tagPending && !n.Trigger.Recurring && entry.trigger.Equal(n.Trigger.At) {
		return nil
	}

	if entry.state == tagPending {
		if err := withRetry(func() error { return e.notifier.Cancel(n.Tag) }); err != nil {
			return err
		}
		entry.state = tagCanceled
		e.metrics.IncCanceled(string(n.Category))
	}

	if err := withRetry(func() error { return e.notifier.Schedule(n) }); err != nil {
		return err
	}
	entry.state = tagPending
	entry.trigger = n.Trigger.At
	e.metrics.IncScheduled(string(n.Category))
	return nil
}

func (e *Engine) cancelTag(tag, category string) {
	entry := e.tags.entry(tag, e.clock())
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.state != tagPending {
		return
	}
	if err := withRetry(func() error { return e.notifier.Cancel(tag) }); err != nil {
		e.metrics.IncSchedulingFailures(category)
		e.logger.Errorf(providers.TypeSched, "cancel %s: %s", tag, err)
		return
	}
	entry.state = tagCanceled
	e.metrics.IncCanceled(category)
}

// withRetry runs op and retries exactly once on failure. Provider hiccups
// are common enough to warrant one more attempt, persistent failures are
// surfaced to the caller.
func withRetry(op func() error) error {
	if err := op(); err == nil {
		return nil
	}
	return op()
}

// scheduleDigest installs the single recurring weekly notification. Unlike
// date-scoped tags the digest is scheduled once and lives until disabled.
func (e *Engine) scheduleDigest() {
	if !e.enabled[models.CategoryDigest].Load() {
		return
	}
	weekday, err := models.ParseWeekday(e.config.Reminders.Digest.Weekday)
	if err != nil {
		e.logger.Errorf(providers.TypeSched, "reminders.digest: %s", err)
		return
	}
	clock, err := models.ParseClock(e.config.Reminders.Digest.At)
	if err != nil {
		e.logger.Errorf(providers.TypeSched, "reminders.digest.at: %s", err)
		return
	}
	n := models.Notification{
		Tag:      digestTag,
		Category: models.CategoryDigest,
		Title:    "Weekly progress digest",
		Body:     "Your streaks and milestones from the past week.",
		Trigger:  models.WeeklyTrigger(weekday, clock),
	}
	if err := e.replace(n); err != nil {
		e.metrics.IncSchedulingFailures(string(models.CategoryDigest))
		e.logger.Errorf(providers.TypeSched, "schedule digest: %s", err)
	}
}

// SetCategoryEnabled flips a category at runtime. Disabling cancels every
// pending notification in the category's namespace; enabling replans so the
// category's notifications come back without waiting for the next cycle.
func (e *Engine) SetCategoryEnabled(category models.Category, enabled bool) error {
	flag, ok := e.enabled[category]
	if !ok {
		return fmt.Errorf("unknown reminder category %q", category)
	}

	e.opsMu.Lock()
	defer e.opsMu.Unlock()

	flag.Store(enabled)
	e.logger.Infof(providers.TypeSched, "category %s enabled=%t", category, enabled)

	if !enabled {
		for _, tag := range e.tags.pendingWithPrefix(string(category) + "/") {
			e.cancelTag(tag, string(category))
		}
		return nil
	}
	if category == models.CategoryDigest {
		e.scheduleDigest()
		return nil
	}
	return e.replan()
}

func (e *Engine) Restore() error {
	return e.fileManager.LoadFromFile(e.config.Persistence.FilePath)
}

func (e *Engine) Persist() error {
	e.opsMu.Lock()
	defer e.opsMu.Unlock()

	start := e.clock()
	if err := e.fileManager.SaveToFile(e.config.Persistence.FilePath); err != nil {
		e.logger.Errorf(providers.TypeSched, "Error while persisting journal: %s", err)
		return err
	}
	e.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}
