package astro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected float64
	}{
		{
			name:     "J2000.0 epoch",
			input:    time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
		},
		{
			name:     "start of 2000",
			input:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2451544.5,
		},
		{
			name:     "january handled as month 13 of previous year",
			input:    time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2451179.5,
		},
		{
			name:     "gregorian century rule",
			input:    time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: 2415079.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, JulianDay(tt.input), 1e-6)
		})
	}
}

func TestJulianDay_roundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2100, 2, 28, 6, 30, 0, 0, time.UTC),
	}

	for _, in := range times {
		out := FromJulianDay(JulianDay(in))
		require.WithinDuration(t, in, out, 2*time.Second, "round trip of %s", in)
	}
}

func TestJulianCentury(t *testing.T) {
	require.InDelta(t, 0.0, JulianCentury(2451545.0), 1e-9)
	require.InDelta(t, 1.0, JulianCentury(2451545.0+36525.0), 1e-9)
	require.InDelta(t, -1.0, JulianCentury(2451545.0-36525.0), 1e-9)
}

func TestDayNumber_identifiesJSTCivilDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	// all instants within a JST civil day share the same integer part
	midnight := time.Date(2020, 6, 1, 0, 0, 0, 0, jst)
	evening := time.Date(2020, 6, 1, 23, 59, 0, 0, jst)
	nextDay := time.Date(2020, 6, 2, 0, 0, 0, 0, jst)

	require.Equal(t, math.Floor(DayNumber(midnight)), math.Floor(DayNumber(evening)))
	require.Equal(t, math.Floor(DayNumber(midnight))+1, math.Floor(DayNumber(nextDay)))
}
