package services

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"mihrab/internal/astro"
	"mihrab/internal/models"
	"mihrab/internal/providers"
	"mihrab/internal/structures"
)

// Resolution is the answer to "where are we in today's prayer cycle".
// NextAt is always strictly after the query instant; once Isha has passed
// it points at tomorrow's recomputed Fajr, never a 24-hour approximation.
type Resolution struct {
	Active    models.Prayer
	Next      models.Prayer
	NextAt    time.Time
	Remaining time.Duration
}

type PrayerServiceInterface interface {
	Coordinate() (models.GeoCoordinate, error)
	TimesForDate(date time.Time) (models.InstantSet, error)
	Resolve(now time.Time) (Resolution, error)
	Watch(ctx context.Context, interval time.Duration) <-chan Resolution
	Qibla() (astro.QiblaResult, error)
	Location() *time.Location
}

// PrayerService wraps the pure calculator with configuration, caching, and
// fallback logging. It holds no mutable state beyond the cache.
type PrayerService struct {
	conf    *structures.Config
	calc    *astro.Calculator
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	cache   providers.CacheProviderInterface
	offsets models.Offsets
	loc     *time.Location
	clock   func() time.Time
}

func NewPrayerService(
	conf *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	cache providers.CacheProviderInterface,
) (PrayerServiceInterface, error) {
	method, err := astro.ParseMethod(conf.Calculation.Method)
	if err != nil {
		return nil, err
	}
	madhab, err := astro.ParseMadhab(conf.Calculation.Madhab)
	if err != nil {
		return nil, err
	}
	calc, err := astro.NewCalculator(method, madhab)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(conf.Calculation.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", conf.Calculation.Timezone, err)
	}

	o := conf.Calculation.Offsets
	return &PrayerService{
		conf:    conf,
		calc:    calc,
		logger:  logger,
		metrics: metrics,
		cache:   cache,
		offsets: models.Offsets{
			Fajr:    o.Fajr,
			Sunrise: o.Sunrise,
			Dhuhr:   o.Dhuhr,
			Asr:     o.Asr,
			Maghrib: o.Maghrib,
			Isha:    o.Isha,
		},
		loc:   loc,
		clock: time.Now,
	}, nil
}

func (s *PrayerService) Location() *time.Location {
	return s.loc
}

// Coordinate returns the configured location or ErrNoLocation when none has
// been provided yet; callers degrade to an "unavailable" state.
func (s *PrayerService) Coordinate() (models.GeoCoordinate, error) {
	if !s.conf.Location.Provided() {
		return models.GeoCoordinate{}, models.ErrNoLocation
	}
	coord := models.GeoCoordinate{
		Latitude:  *s.conf.Location.Latitude,
		Longitude: *s.conf.Location.Longitude,
	}
	if err := coord.Validate(); err != nil {
		return models.GeoCoordinate{}, err
	}
	return coord, nil
}

// TimesForDate computes the offset-applied instant set for the local
// calendar date of the given time. Sets are cached per date; the calculator
// stays the single source of truth and a cache miss just recomputes.
func (s *PrayerService) TimesForDate(date time.Time) (models.InstantSet, error) {
	coord, err := s.Coordinate()
	if err != nil {
		return models.InstantSet{}, err
	}

	local := date.In(s.loc)
	key := fmt.Sprintf("times:%s:%.4f:%.4f:%s:%s",
		local.Format(models.DateLayout), coord.Latitude, coord.Longitude,
		s.calc.Method(), s.calc.Madhab())
	if data, ok := s.cache.Get(key); ok {
		var cached models.InstantSet
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	set, adjusted, err := s.calc.Times(coord, local)
	if err != nil {
		return models.InstantSet{}, err
	}
	s.metrics.IncCalculations(string(s.calc.Method()))
	for _, p := range adjusted {
		s.logger.Warnf(providers.TypeCalc,
			"%s on %s at lat %.4f resolved via night-fraction fallback", p, set.Date, coord.Latitude)
		s.metrics.IncSingularFallbacks(p.String())
	}

	set = set.Shift(s.offsets)

	if data, err := json.Marshal(set); err == nil {
		s.cache.Set(key, data)
	}
	return set, nil
}

// Resolve scans today's five instants around "now". The active prayer is
// the one whose window contains now; before today's Fajr that is
// yesterday's Isha. Past Isha the next instant comes from tomorrow's set.
func (s *PrayerService) Resolve(now time.Time) (Resolution, error) {
	set, err := s.TimesForDate(now)
	if err != nil {
		return Resolution{}, err
	}

	active := models.Isha // carries over from the previous day before Fajr
	next := models.Prayer(-1)
	for _, p := range models.Prayers() {
		at := set.At(p)
		if !at.After(now) {
			active = p
			continue
		}
		next = p
		break
	}

	var nextAt time.Time
	if next < 0 {
		tomorrow, err := s.TimesForDate(now.In(s.loc).AddDate(0, 0, 1))
		if err != nil {
			return Resolution{}, err
		}
		next = models.Fajr
		nextAt = tomorrow.Fajr
	} else {
		nextAt = set.At(next)
	}

	return Resolution{
		Active:    active,
		Next:      next,
		NextAt:    nextAt,
		Remaining: nextAt.Sub(now),
	}, nil
}

// Watch emits a fresh resolution immediately and then on every tick until
// the context is canceled. The caller owns the context; closing it releases
// the timer, so a hidden display leaks nothing.
func (s *PrayerService) Watch(ctx context.Context, interval time.Duration) <-chan Resolution {
	ch := make(chan Resolution, 1)
	go func() {
		defer close(ch)

		emit := func() {
			res, err := s.Resolve(s.clock())
			if err != nil {
				s.logger.Warnf(providers.TypeCalc, "watch resolve failed: %s", err)
				return
			}
			select {
			case ch <- res:
			case <-ctx.Done():
			}
		}

		emit()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				emit()
			}
		}
	}()
	return ch
}

// Qibla returns the bearing and distance from the configured location.
func (s *PrayerService) Qibla() (astro.QiblaResult, error) {
	coord, err := s.Coordinate()
	if err != nil {
		return astro.QiblaResult{}, err
	}
	return astro.Qibla(coord)
}
