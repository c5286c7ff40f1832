package models

import "time"

// DateLayout is the canonical calendar-date key used across the engine.
const DateLayout = "2006-01-02"

// InstantSet holds the six calculated instants for one calendar date at one
// location, in UTC. It is derived data: the calculator is the source of
// truth and sets are recomputed per date/location, never persisted.
type InstantSet struct {
	Date    string    `json:"date"`
	Fajr    time.Time `json:"fajr"`
	Sunrise time.Time `json:"sunrise"`
	Dhuhr   time.Time `json:"dhuhr"`
	Asr     time.Time `json:"asr"`
	Maghrib time.Time `json:"maghrib"`
	Isha    time.Time `json:"isha"`
}

// At returns the instant for the given event.
func (s InstantSet) At(p Prayer) time.Time {
	switch p {
	case Fajr:
		return s.Fajr
	case Sunrise:
		return s.Sunrise
	case Dhuhr:
		return s.Dhuhr
	case Asr:
		return s.Asr
	case Maghrib:
		return s.Maghrib
	case Isha:
		return s.Isha
	}
	return time.Time{}
}

// Ordered reports whether the instants are strictly increasing. Holds for
// every non-singular calculation; user offsets may legitimately break it.
func (s InstantSet) Ordered() bool {
	prev := s.Fajr
	for _, p := range []Prayer{Sunrise, Dhuhr, Asr, Maghrib, Isha} {
		t := s.At(p)
		if !t.After(prev) {
			return false
		}
		prev = t
	}
	return true
}

// Offsets are signed per-event minute adjustments configured by the user.
type Offsets struct {
	Fajr    int
	Sunrise int
	Dhuhr   int
	Asr     int
	Maghrib int
	Isha    int
}

// IsZero reports whether every offset is zero.
func (o Offsets) IsZero() bool {
	return o == Offsets{}
}

// Shift returns a copy of the set with each instant moved by its configured
// offset. Ordering is deliberately not re-validated: offsets are a user
// override and may compress or invert spacing, downstream consumers
// tolerate that.
func (s InstantSet) Shift(o Offsets) InstantSet {
	shift := func(t time.Time, m int) time.Time {
		return t.Add(time.Duration(m) * time.Minute)
	}
	return InstantSet{
		Date:    s.Date,
		Fajr:    shift(s.Fajr, o.Fajr),
		Sunrise: shift(s.Sunrise, o.Sunrise),
		Dhuhr:   shift(s.Dhuhr, o.Dhuhr),
		Asr:     shift(s.Asr, o.Asr),
		Maghrib: shift(s.Maghrib, o.Maghrib),
		Isha:    shift(s.Isha, o.Isha),
	}
}
