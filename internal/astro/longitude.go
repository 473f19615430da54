package astro

import "math"

// periodicTerm is one cosine term of a longitude perturbation series:
// amp * cos(freq*t + phase), with t in Julian centuries and angles in degrees.
type periodicTerm struct {
	amp   float64
	freq  float64
	phase float64
}

// Truncated series from Nagasawa, "Computations of sunrise and sunset"
// (地人書館), the formulation commonly used for kyureki conversion. Good to a
// few arcseconds for the sun and well under an arcminute for the moon, which
// is far below the day-level resolution the calendar needs.
var sunTerms = []periodicTerm{
	{0.0004, 31557.0, 161.0},
	{0.0004, 29930.0, 48.0},
	{0.0005, 2281.0, 221.0},
	{0.0005, 155.0, 118.0},
	{0.0006, 33718.0, 316.0},
	{0.0007, 9038.0, 64.0},
	{0.0007, 3035.0, 110.0},
	{0.0007, 65929.0, 45.0},
	{0.0013, 22519.0, 352.0},
	{0.0015, 45038.0, 254.0},
	{0.0018, 445267.0, 208.0},
	{0.0018, 19.0, 159.0},
	{0.0020, 32964.0, 158.0},
}

var moonTerms = []periodicTerm{
	{0.0003, 2322131.0, 191.0},
	{0.0003, 4067.0, 70.0},
	{0.0003, 549197.0, 220.0},
	{0.0003, 1808933.0, 58.0},
	{0.0003, 349472.0, 337.0},
	{0.0003, 381404.0, 354.0},
	{0.0003, 958465.0, 340.0},
	{0.0004, 12006.0, 187.0},
	{0.0004, 39871.0, 223.0},
	{0.0005, 509131.0, 242.0},
	{0.0005, 1745069.0, 24.0},
	{0.0005, 1908795.0, 90.0},
	{0.0006, 2258267.0, 156.0},
	{0.0006, 111869.0, 38.0},
	{0.0007, 27864.0, 127.0},
	{0.0007, 485333.0, 186.0},
	{0.0007, 405201.0, 50.0},
	{0.0007, 790672.0, 114.0},
	{0.0008, 1403732.0, 98.0},
	{0.0009, 858602.0, 129.0},
	{0.0011, 1920802.0, 186.0},
	{0.0012, 1267871.0, 249.0},
	{0.0016, 1856938.0, 152.0},
	{0.0018, 401329.0, 274.0},
	{0.0021, 341337.0, 16.0},
	{0.0021, 71998.0, 85.0},
	{0.0021, 990397.0, 357.0},
	{0.0022, 818536.0, 151.0},
	{0.0023, 922466.0, 163.0},
	{0.0024, 99863.0, 122.0},
	{0.0026, 1379739.0, 17.0},
	{0.0027, 918399.0, 182.0},
	{0.0028, 1934.0, 145.0},
	{0.0037, 541062.0, 259.0},
	{0.0038, 1781068.0, 21.0},
	{0.0040, 133.0, 29.0},
	{0.0040, 1844932.0, 56.0},
	{0.0040, 1331734.0, 283.0},
	{0.0050, 481266.0, 205.0},
	{0.0052, 31932.0, 107.0},
	{0.0068, 926533.0, 323.0},
	{0.0079, 449334.0, 188.0},
	{0.0085, 826671.0, 111.0},
	{0.0100, 1431597.0, 315.0},
	{0.0107, 1303870.0, 246.0},
	{0.0110, 489205.0, 142.0},
	{0.0125, 1443603.0, 52.0},
	{0.0154, 75870.0, 41.0},
	{0.0304, 513197.9, 222.5},
	{0.0347, 445267.1, 27.9},
	{0.0409, 441199.8, 47.4},
	{0.0458, 854535.2, 148.2},
	{0.0533, 1367733.1, 280.7},
	{0.0571, 377336.3, 13.2},
	{0.0588, 63863.5, 124.2},
	{0.1144, 966404.0, 276.5},
	{0.1851, 35999.05, 87.53},
	{0.2136, 954397.74, 179.93},
	{0.6583, 890534.22, 145.7},
	{1.2740, 413335.35, 10.74},
	{6.2888, 477198.868, 44.963},
}

// SunLongitude returns the apparent ecliptic longitude of the sun in degrees
// for t in Julian centuries from J2000.0.
func SunLongitude(t float64) float64 {
	th := 0.0
	for _, p := range sunTerms {
		th += p.amp * cosDeg(normalizeAngle(p.freq*t+p.phase))
	}

	// Main anomaly term carries a small secular decay.
	ang := normalizeAngle(35999.05*t + 267.52)
	th -= 0.0048 * t * cosDeg(ang)
	th += 1.9147 * cosDeg(ang)

	// Mean longitude
	ang = normalizeAngle(36000.7695 * t)
	ang = normalizeAngle(ang + 280.4659)
	return normalizeAngle(th + ang)
}

// MoonLongitude returns the ecliptic longitude of the moon in degrees for t
// in Julian centuries from J2000.0.
func MoonLongitude(t float64) float64 {
	th := 0.0
	for _, p := range moonTerms {
		th += p.amp * cosDeg(normalizeAngle(p.freq*t+p.phase))
	}

	// Mean longitude
	ang := normalizeAngle(481267.8809 * t)
	ang = normalizeAngle(ang + 218.3162)
	return normalizeAngle(th + ang)
}

// normalizeAngle reduces an angle in degrees into [0, 360).
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360.0)
	if angle < 0 {
		angle += 360.0
	}
	return angle
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180.0)
}
