// Package tempo converts Gregorian dates into dates on the Tempo calendar
// (天保暦), the lunisolar calendar in official use in Japan until 1872 and
// still the basis for traditional observances. Months begin on the day of a
// new moon and are named after the chuki (solar term at a multiple of 30
// degrees of solar longitude) they contain; a month containing no chuki is an
// intercalary month carrying the previous month's number.
package tempo

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wolfeidau/tempo-service/internal/astro"
)

// JST anchors civil days; the Tempo calendar is reckoned on Japanese local time.
var JST = time.FixedZone("JST", 9*60*60)

// Conversions outside this window are rejected. The lower bound is the
// calendar's adoption; the upper bound keeps us inside the validity of the
// truncated longitude series.
const (
	MinYear = 1844
	MaxYear = 2100
)

// ErrOutOfRange is returned for dates outside the supported window.
var ErrOutOfRange = errors.New("date outside supported calendar range")

// Date is a Tempo calendar date. Leap marks an intercalary month, which
// shares its Month number with the month before it.
type Date struct {
	Year  int
	Month int
	Day   int
	Leap  bool
}

// String renders the date in the conventional Japanese form, e.g.
// "2020年閏4月10日".
func (d Date) String() string {
	if d.Leap {
		return fmt.Sprintf("%d年閏%d月%d日", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("%d年%d月%d日", d.Year, d.Month, d.Day)
}

// Rokuyo returns the six-day label for the date.
func (d Date) Rokuyo() Rokuyo {
	return Rokuyo((d.Month + d.Day) % 6)
}

// lunarMonth is one row of the month table built around the target day: the
// month's number, whether it is intercalary, and the civil day number of its
// first day (the new-moon day).
type lunarMonth struct {
	month    int
	leap     bool
	firstDay int
}

// FromTime converts the JST civil day containing t into a Tempo calendar
// date.
func FromTime(t time.Time) (Date, error) {
	local := t.In(JST)
	if y := local.Year(); y < MinYear || y > MaxYear {
		return Date{}, fmt.Errorf("%w: year %d not in [%d, %d]", ErrOutOfRange, y, MinYear, MaxYear)
	}

	// midnight JST of the civil day, as a day number
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, JST)
	tm0 := astro.DayNumber(midnight)
	day0 := int(math.Floor(tm0))

	// The chuki table: the equinox or solstice preceding the target day,
	// then the next three solar terms. These anchor the month numbering.
	var chu [4][2]float64
	chu[0][0], chu[0][1] = astro.NibunBefore(tm0)
	for i := 1; i < 4; i++ {
		chu[i][0], chu[i][1] = astro.SolarTermBefore(chu[i-1][0] + 32.0)
	}

	// The saku table: the new moon preceding the anchor, then four more.
	var saku [5]float64
	saku[0] = astro.NewMoonBefore(chu[0][0])
	for i := 1; i < 5; i++ {
		saku[i] = astro.NewMoonBefore(saku[i-1] + 30.0)
		// Converged on the previous conjunction; push the start point out.
		if math.Abs(math.Floor(saku[i-1])-math.Floor(saku[i])) <= 26.0 {
			saku[i] = astro.NewMoonBefore(saku[i-1] + 35.0)
		}
	}

	// Align the tables so saku[0] starts the month containing chu[0].
	if math.Floor(saku[1]) <= math.Floor(chu[0][0]) {
		for i := 0; i < 4; i++ {
			saku[i] = saku[i+1]
		}
		saku[4] = astro.NewMoonBefore(saku[3] + 35.0)
	} else if math.Floor(saku[0]) > math.Floor(chu[0][0]) {
		for i := 4; i > 0; i-- {
			saku[i] = saku[i-1]
		}
		saku[0] = astro.NewMoonBefore(saku[0] - 27.0)
	}

	// Five new moons spanning only four solar terms means one of the months
	// in the window is intercalary.
	hasLeap := math.Floor(saku[4]) <= math.Floor(chu[3][0])

	// Month table. The anchor month is numbered from the longitude of its
	// chuki: longitude/30 + 2 lands the winter solstice (270 degrees) in
	// month 11 as the calendar requires.
	var months [5]lunarMonth
	months[0].month = normalizeMonth(int(chu[0][1]/30.0) + 2)
	months[0].firstDay = int(math.Floor(saku[0]))

	for i := 1; i < 5; i++ {
		if hasLeap && i != 1 {
			// A month that does not contain its solar term is the leap
			// month; it repeats the previous month's number.
			if math.Floor(chu[i-1][0]) <= math.Floor(saku[i-1]) ||
				math.Floor(chu[i-1][0]) >= math.Floor(saku[i]) {
				months[i-1].month = months[i-2].month
				months[i-1].leap = true
				months[i-1].firstDay = int(math.Floor(saku[i-1]))
				hasLeap = false
			}
		}
		months[i].month = normalizeMonth(months[i-1].month + 1)
		months[i].leap = false
		months[i].firstDay = int(math.Floor(saku[i]))
	}

	// Locate the month containing the target day.
	idx := len(months) - 1
	for i, m := range months {
		if day0 < m.firstDay {
			idx = i - 1
			break
		}
		if day0 == m.firstDay {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Date{}, fmt.Errorf("no month found for %s", local.Format(time.DateOnly))
	}

	d := Date{
		Year:  local.Year(),
		Month: months[idx].month,
		Day:   day0 - months[idx].firstDay + 1,
		Leap:  months[idx].leap,
	}

	// Months 10 through 12 that start before the Gregorian new year belong
	// to the previous Tempo year.
	if d.Month > 9 && d.Month > int(local.Month()) {
		d.Year--
	}
	return d, nil
}

func normalizeMonth(m int) int {
	if m > 12 {
		return m - 12
	}
	return m
}
