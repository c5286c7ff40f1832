package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleSet() InstantSet {
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	return InstantSet{
		Date:    "2026-08-25",
		Fajr:    base.Add(4 * time.Hour),
		Sunrise: base.Add(6 * time.Hour),
		Dhuhr:   base.Add(12 * time.Hour),
		Asr:     base.Add(15 * time.Hour),
		Maghrib: base.Add(19 * time.Hour),
		Isha:    base.Add(21 * time.Hour),
	}
}

func TestInstantSet_At(t *testing.T) {
	set := sampleSet()
	assert.Equal(t, set.Fajr, set.At(Fajr))
	assert.Equal(t, set.Isha, set.At(Isha))
	assert.True(t, set.At(Prayer(42)).IsZero())
}

func TestInstantSet_Ordered(t *testing.T) {
	set := sampleSet()
	assert.True(t, set.Ordered())

	set.Asr = set.Dhuhr
	assert.False(t, set.Ordered())
}

func TestInstantSet_Shift(t *testing.T) {
	set := sampleSet()
	shifted := set.Shift(Offsets{Fajr: -5, Isha: 10})

	assert.Equal(t, set.Fajr.Add(-5*time.Minute), shifted.Fajr)
	assert.Equal(t, set.Isha.Add(10*time.Minute), shifted.Isha)
	assert.Equal(t, set.Dhuhr, shifted.Dhuhr)
	assert.Equal(t, set.Date, shifted.Date)
}

func TestInstantSet_ShiftMayInvertOrder(t *testing.T) {
	set := sampleSet()
	shifted := set.Shift(Offsets{Sunrise: -130})
	assert.False(t, shifted.Ordered())
}

func TestOffsets_IsZero(t *testing.T) {
	assert.True(t, Offsets{}.IsZero())
	assert.False(t, Offsets{Dhuhr: 1}.IsZero())
}

func TestPrayer_Strings(t *testing.T) {
	assert.Equal(t, "Maghrib", Maghrib.String())
	assert.Equal(t, "maghrib", Maghrib.LowerString())
	assert.Equal(t, "Unknown", Prayer(-1).String())
	assert.Len(t, AllEvents(), 6)
	assert.Len(t, Prayers(), 5)
}
