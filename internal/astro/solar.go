package astro

import (
	"errors"
	"math"
	"time"
)

// ErrSunNeverReaches is returned by the hour-angle solver when the sun does
// not reach the requested depression angle on that date at that latitude.
// The calculator resolves it with the night-fraction fallback where it can.
var ErrSunNeverReaches = errors.New("sun never reaches the requested angle on this date")

func dsin(d float64) float64 { return math.Sin(d * math.Pi / 180) }
func dcos(d float64) float64 { return math.Cos(d * math.Pi / 180) }
func dtan(d float64) float64 { return math.Tan(d * math.Pi / 180) }

func darcsin(x float64) float64 { return math.Asin(x) * 180 / math.Pi }
func darccos(x float64) float64 { return math.Acos(x) * 180 / math.Pi }
func darccot(x float64) float64 { return math.Atan2(1, x) * 180 / math.Pi }

func darctan2(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

func fixAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func fixHour(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// julianDay returns the Julian Day number for the calendar date at 0h UT.
func julianDay(year int, month time.Month, day int) float64 {
	y, m := float64(year), float64(month)
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + float64(day) + b - 1524.5
}

type sunPosition struct {
	declination float64 // degrees
	equation    float64 // equation of time, hours
}

// sunAt evaluates the sun's declination and the equation of time at the
// given Julian instant, using the compact formulas from the Astronomical
// Almanac (accurate to well under a minute of time).
func sunAt(jd float64) sunPosition {
	d := jd - 2451545.0

	g := fixAngle(357.529 + 0.98560028*d)
	q := fixAngle(280.459 + 0.98564736*d)
	l := fixAngle(q + 1.915*dsin(g) + 0.020*dsin(2*g))
	e := 23.439 - 0.00000036*d

	ra := fixHour(darctan2(dcos(e)*dsin(l), dcos(l)) / 15)
	return sunPosition{
		declination: darcsin(dsin(e) * dsin(l)),
		equation:    q/15 - ra,
	}
}

// midDay returns local mean solar noon, in floating hours, with the sun
// position sampled at day fraction t.
func midDay(jd, t float64) float64 {
	eqt := sunAt(jd + t).equation
	return fixHour(12 - eqt)
}

// sunAngleTime solves for the hour at which the sun sits `angle` degrees
// below the horizon. morning selects the pre-noon crossing.
func sunAngleTime(jd, latitude, angle, t float64, morning bool) (float64, error) {
	pos := sunAt(jd + t)
	noon := midDay(jd, t)

	ratio := (-dsin(angle) - dsin(latitude)*dsin(pos.declination)) /
		(dcos(latitude) * dcos(pos.declination))
	if ratio < -1 || ratio > 1 {
		return 0, ErrSunNeverReaches
	}

	h := darccos(ratio) / 15
	if morning {
		return noon - h, nil
	}
	return noon + h, nil
}

// asrTime solves for the afternoon hour at which an object's shadow equals
// shadowFactor times its height plus the noon shadow.
func asrTime(jd, latitude, shadowFactor, t float64) (float64, error) {
	decl := sunAt(jd + t).declination
	angle := -darccot(shadowFactor + dtan(math.Abs(latitude-decl)))
	return sunAngleTime(jd, latitude, angle, t, false)
}
