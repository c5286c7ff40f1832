package models

import "strings"

// Prayer identifies one of the daily prayer events, in chronological order.
// Sunrise is not a prayer but marks the end of the Fajr window.
type Prayer int

const (
	Fajr Prayer = iota
	Sunrise
	Dhuhr
	Asr
	Maghrib
	Isha
)

var prayerNames = [...]string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

func (p Prayer) String() string {
	if p < Fajr || p > Isha {
		return "Unknown"
	}
	return prayerNames[p]
}

// LowerString is the wire form used in tags and API payloads.
func (p Prayer) LowerString() string {
	return strings.ToLower(p.String())
}

// AllEvents lists every calculated event including sunrise.
func AllEvents() []Prayer {
	return []Prayer{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}
}

// Prayers lists the five canonical prayers, skipping sunrise.
func Prayers() []Prayer {
	return []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}
}
