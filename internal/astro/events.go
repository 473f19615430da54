package astro

import "math"

const (
	// convergence threshold for the event solvers, one second in days
	tolerance = 1.0 / 86400.0

	maxIterations = 30

	tropicalYear  = 365.2
	synodicMonth  = 29.530589
	jstOffsetDays = 9.0 / 24.0
)

// century converts a split day number (integer and fractional part, JST
// reckoning) into Julian centuries from J2000.0.
func century(tm1, tm2 float64) float64 {
	return (tm2+0.5-jstOffsetDays)/36525.0 + (tm1-2451545.0)/36525.0
}

// eventBefore iterates backwards from tm to the point where the apparent
// solar longitude was last a multiple of deg degrees. It returns the event
// time as a day number along with that longitude.
func eventBefore(tm, deg float64) (float64, float64) {
	tm1 := math.Floor(tm)
	tm2 := tm - tm1

	// The target longitude is fixed by the starting point; the iterations
	// refine the time only. Recomputing it would let an overshoot near
	// perihelion walk the solver back a term per iteration.
	sun := SunLongitude(century(tm1, tm2))
	target := deg * math.Floor(sun/deg)

	for range maxIterations {
		// shortest signed arc from the target, so crossing the 0 degree
		// seam does not read as a near-full revolution
		delta := sun - target
		if delta > 180.0 {
			delta -= 360.0
		} else if delta < -180.0 {
			delta += 360.0
		}

		// days until the sun was last at the target longitude
		dt := delta * tropicalYear / 360.0

		tm1 -= math.Floor(dt)
		tm2 -= dt - math.Floor(dt)
		if tm2 < 0 {
			tm2++
			tm1--
		}

		if math.Abs(dt) <= tolerance {
			break
		}
		sun = SunLongitude(century(tm1, tm2))
	}
	return tm1 + tm2, target
}

// SolarTermBefore returns the time and longitude of the last chuki (solar
// longitude at a multiple of 30 degrees) at or before tm.
func SolarTermBefore(tm float64) (float64, float64) {
	return eventBefore(tm, 30.0)
}

// NibunBefore returns the time and longitude of the last equinox or solstice
// (solar longitude at a multiple of 90 degrees) at or before tm.
func NibunBefore(tm float64) (float64, float64) {
	return eventBefore(tm, 90.0)
}

// NewMoonBefore returns the time, as a day number, of the last new moon at or
// before tm.
func NewMoonBefore(tm float64) float64 {
	tm1 := math.Floor(tm)
	tm2 := tm - tm1

	for lc := 1; lc <= maxIterations; lc++ {
		t := century(tm1, tm2)
		sun := SunLongitude(t)
		moon := MoonLongitude(t)

		delta := moon - sun
		switch {
		case lc == 1 && delta < 0:
			// first pass searches backwards, so wrap into [0, 360)
			delta = normalizeAngle(delta)
		case sun >= 0 && sun <= 20 && moon >= 300:
			// straddling the vernal equinox: the moon is behind the sun
			// across the 0-degree seam
			delta = 360.0 - normalizeAngle(delta)
		case math.Abs(delta) > 40:
			delta = normalizeAngle(delta)
		}

		// days until the moon last caught up with the sun
		dt := delta * synodicMonth / 360.0

		tm1 -= math.Floor(dt)
		tm2 -= dt - math.Floor(dt)
		if tm2 < 0 {
			tm2++
			tm1--
		}

		if lc == 15 && math.Abs(dt) > tolerance {
			// converging on the wrong conjunction; restart from a point
			// safely inside the previous synodic month
			tm1 = math.Floor(tm - 26.0)
			tm2 = 0
		} else if math.Abs(dt) <= tolerance {
			break
		}
	}
	return tm1 + tm2
}
