// Package astro provides the Julian day arithmetic and solar/lunar longitude
// calculations needed to locate solar terms and new moons for lunisolar
// calendar conversion.
package astro

import (
	"math"
	"time"
)

// JulianDay converts t into a Julian Day (JD).
func JulianDay(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	if t.Month() <= 2 {
		y--
		m += 12
	}

	mjd := math.Floor(y*365.25) + math.Floor(y/400.0) - math.Floor(y/100.0) +
		math.Floor((m-2.0)*30.59) +
		float64(t.Day()) -
		678912.0

	frac := float64(t.Hour())/24.0 +
		float64(t.Minute())/1440.0 +
		float64(t.Second())/86400.0

	return mjd + 2400000.5 + frac
}

// FromJulianDay converts a Julian Day (JD) into a UTC time.
func FromJulianDay(jd float64) time.Time {
	mjd := jd - 2400000.5
	n := int(mjd + 678881.0)
	a := n*4 + 3 + (((n+1)*4/146097+1)*3/4)*4
	b := (a%1461/4)*5 + 2

	year := a / 1461
	month := b/153 + 3
	day := b%153/5 + 1

	if month > 12 {
		year++
		month -= 12
	}

	frac := mjd - math.Floor(mjd)
	hour := int(frac * 24.0)
	minute := int(frac*1440.0) % 60
	second := int(frac*86400.0) % 60
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

// JulianCentury converts a Julian Day into centuries from J2000.0.
func JulianCentury(jd float64) float64 {
	// JD 2451545 is 2000-01-01 12:00:00
	return (jd - 2451545.0) / 36525.0
}

// DayNumber converts t into the day count used by the calendar solvers: a
// fractional day reckoned on the JST clock whose integer part identifies the
// JST civil day.
func DayNumber(t time.Time) float64 {
	return JulianDay(t) + 9.0/24.0 - 0.5
}
