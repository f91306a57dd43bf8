package sonartel

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Timestamp is the (year, day-of-year, hours, minutes, seconds) tuple
// used throughout the container format (spec §3.2). It is convertible to
// a scalar epoch second, which is what every time-ordered comparison
// (catalog sort, ping-assembler timestamps) actually operates on.
//
// Grounded on the teacher's params.go parse_reftime, which performs the
// same day-of-year/calendar round trip via soniakeys/meeus's julian
// package for GSF's "yyyy/ddd hh:mm:ss" processing-parameters reference
// time field.
type Timestamp struct {
	Year      uint16
	DayOfYear uint16
	Hours     uint8
	Minutes   uint8
	Seconds   float32 // seconds-of-minute, with microsecond precision
}

// Time converts the Timestamp to a calendar time.Time in UTC.
func (t Timestamp) Time() time.Time {
	leap := julian.LeapYearGregorian(int(t.Year))
	month, day := julian.DayOfYearToCalendar(int(t.DayOfYear), leap)

	wholeSec := int(t.Seconds)
	nsec := int((t.Seconds - float32(wholeSec)) * 1e9)

	return time.Date(
		int(t.Year), time.Month(month), day,
		int(t.Hours), int(t.Minutes), wholeSec, nsec,
		time.UTC,
	)
}

// Epoch converts the Timestamp to a scalar epoch second (used wherever
// records are sorted by time, per spec §3.2).
func (t Timestamp) Epoch() float64 {
	tm := t.Time()
	return float64(tm.Unix()) + float64(tm.Nanosecond())/1e9
}

// TimestampFromTime builds a Timestamp from a calendar time.Time.
func TimestampFromTime(tm time.Time) Timestamp {
	tm = tm.UTC()
	return Timestamp{
		Year:      uint16(tm.Year()),
		DayOfYear: uint16(tm.YearDay()),
		Hours:     uint8(tm.Hour()),
		Minutes:   uint8(tm.Minute()),
		Seconds:   float32(tm.Second()) + float32(tm.Nanosecond())/1e9,
	}
}

// Before reports whether t occurred strictly before o.
func (t Timestamp) Before(o Timestamp) bool { return t.Epoch() < o.Epoch() }

// Equal reports whether t and o represent the same instant to
// microsecond precision.
func (t Timestamp) Equal(o Timestamp) bool {
	const eps = 1e-6
	d := t.Epoch() - o.Epoch()
	if d < 0 {
		d = -d
	}
	return d < eps
}

// validYearRange is the spec §9 corrected catalog filter: drop entries
// whose year is outside [1970, 2030] (the original C source's
// `year == 2014 || year < 2030` check reads as a typo for a range
// check).
func validYearRange(year uint16) bool {
	return year >= 1970 && year <= 2030
}
