// Package astro computes daily prayer instants, sunrise, and the qibla from
// geographic coordinates. Everything here is pure and deterministic: no
// I/O, no clock reads, identical inputs give bit-identical outputs.
package astro

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mihrab/internal/models"
)

// Method selects the astronomical calculation convention.
type Method string

const (
	MethodMWL       Method = "mwl"
	MethodISNA      Method = "isna"
	MethodEgypt     Method = "egypt"
	MethodUmmAlQura Method = "ummalqura"
	MethodKarachi   Method = "karachi"
	MethodTehran    Method = "tehran"
	MethodJafari    Method = "jafari"
)

// methodParams are the sun-depression angles for a method. ishaMinutes > 0
// means isha is a fixed interval after maghrib instead of an angle, and
// maghribAngle > 0 means maghrib is below sunset by that angle.
type methodParams struct {
	fajrAngle    float64
	ishaAngle    float64
	ishaMinutes  float64
	maghribAngle float64
}

var methodTable = map[Method]methodParams{
	MethodMWL:       {fajrAngle: 18, ishaAngle: 17},
	MethodISNA:      {fajrAngle: 15, ishaAngle: 15},
	MethodEgypt:     {fajrAngle: 19.5, ishaAngle: 17.5},
	MethodUmmAlQura: {fajrAngle: 18.5, ishaMinutes: 90},
	MethodKarachi:   {fajrAngle: 18, ishaAngle: 18},
	MethodTehran:    {fajrAngle: 17.7, ishaAngle: 14, maghribAngle: 4.5},
	MethodJafari:    {fajrAngle: 16, ishaAngle: 14, maghribAngle: 4},
}

// ParseMethod resolves a config string into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := methodTable[m]; !ok {
		return "", fmt.Errorf("unknown calculation method %q", s)
	}
	return m, nil
}

// Madhab selects the Asr shadow-length convention.
type Madhab int

const (
	MadhabShafi Madhab = iota
	MadhabHanafi
)

func ParseMadhab(s string) (Madhab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shafi":
		return MadhabShafi, nil
	case "hanafi":
		return MadhabHanafi, nil
	}
	return 0, fmt.Errorf("unknown madhab %q", s)
}

func (m Madhab) shadowFactor() float64 {
	if m == MadhabHanafi {
		return 2
	}
	return 1
}

func (m Madhab) String() string {
	if m == MadhabHanafi {
		return "hanafi"
	}
	return "shafi"
}

// riseSetAngle accounts for refraction and the solar disc radius.
const riseSetAngle = 0.833

// ErrPolarDate is returned when the sun neither rises nor sets on the
// requested date, so no instant set can be anchored at all.
var ErrPolarDate = errors.New("sun does not rise or set on this date at this latitude")

// Calculator is an explicit, constructible component holding only its
// method configuration. Safe for concurrent use.
type Calculator struct {
	method Method
	params methodParams
	madhab Madhab
}

func NewCalculator(method Method, madhab Madhab) (*Calculator, error) {
	params, ok := methodTable[method]
	if !ok {
		return nil, fmt.Errorf("unknown calculation method %q", method)
	}
	return &Calculator{method: method, params: params, madhab: madhab}, nil
}

func (c *Calculator) Method() Method { return c.method }
func (c *Calculator) Madhab() Madhab { return c.madhab }

// Times computes the instant set for one calendar date at one coordinate,
// in UTC.
//
// Extreme-latitude handling: when the sun never reaches the fajr or isha
// depression angle on that date (no true night), the instant falls back to
// the angle-proportional night fraction, angle/60 of the night measured
// from sunrise respectively sunset. Adjusted events are reported in the
// second return value so callers can log the fallback; it is not an error.
// Dates with no sunrise or sunset at all yield ErrPolarDate.
func (c *Calculator) Times(coord models.GeoCoordinate, date time.Time) (models.InstantSet, []models.Prayer, error) {
	if err := coord.Validate(); err != nil {
		return models.InstantSet{}, nil, err
	}

	year, month, day := date.Date()
	jd := julianDay(year, month, day) - coord.Longitude/(15*24)
	lat := coord.Latitude

	// One refinement pass from rough day-fraction estimates, in local mean
	// solar hours.
	sunrise, errRise := sunAngleTime(jd, lat, riseSetAngle, 6.0/24, true)
	sunset, errSet := sunAngleTime(jd, lat, riseSetAngle, 18.0/24, false)
	if errRise != nil || errSet != nil {
		return models.InstantSet{}, nil, ErrPolarDate
	}

	dhuhr := midDay(jd, 12.0/24)

	asr, err := asrTime(jd, lat, c.madhab.shadowFactor(), 13.0/24)
	if err != nil {
		// Only reachable when the sun barely clears the horizon, which the
		// sunrise check above already treats as a polar date.
		return models.InstantSet{}, nil, ErrPolarDate
	}

	var adjusted []models.Prayer
	night := sunrise + 24 - sunset

	fajr, err := sunAngleTime(jd, lat, c.params.fajrAngle, 5.0/24, true)
	if portion := night * c.params.fajrAngle / 60; err != nil || sunrise-fajr > portion {
		fajr = sunrise - portion
		adjusted = append(adjusted, models.Fajr)
	}

	maghrib := sunset
	if c.params.maghribAngle > 0 {
		m, err := sunAngleTime(jd, lat, c.params.maghribAngle, 18.0/24, false)
		if portion := night * c.params.maghribAngle / 60; err != nil || m-sunset > portion {
			m = sunset + portion
			adjusted = append(adjusted, models.Maghrib)
		}
		maghrib = m
	}

	var isha float64
	if c.params.ishaMinutes > 0 {
		isha = maghrib + c.params.ishaMinutes/60
	} else {
		i, err := sunAngleTime(jd, lat, c.params.ishaAngle, 18.0/24, false)
		if portion := night * c.params.ishaAngle / 60; err != nil || i-sunset > portion {
			i = sunset + portion
			adjusted = append(adjusted, models.Isha)
		}
		isha = i
	}

	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	at := func(localHours float64) time.Time {
		utcHours := localHours - coord.Longitude/15
		return base.Add(time.Duration(utcHours * float64(time.Hour))).Round(time.Second)
	}

	set := models.InstantSet{
		Date:    base.Format(models.DateLayout),
		Fajr:    at(fajr),
		Sunrise: at(sunrise),
		Dhuhr:   at(dhuhr),
		Asr:     at(asr),
		Maghrib: at(maghrib),
		Isha:    at(isha),
	}
	return set, adjusted, nil
}
