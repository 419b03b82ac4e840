// Package dateutil holds the calendar arithmetic the chart is laid out with.
// Every function is pure: inputs are never modified and the result only
// depends on the arguments.
package dateutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/core/constants"
)

// ErrInvalidArgument is returned for interval units the package does not know.
var ErrInvalidArgument = errors.New("invalid argument")

// Unit is a calendar or clock interval accepted by AddInterval.
type Unit string

const (
	Years   Unit = "years"
	Months  Unit = "months"
	Weeks   Unit = "weeks"
	Days    Unit = "days"
	Hours   Unit = "hours"
	Minutes Unit = "minutes"
	Seconds Unit = "seconds"
)

// ParseUnit converts a unit name (case-insensitive) into a Unit.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case Years, Months, Weeks, Days, Hours, Minutes, Seconds:
		return u, nil
	}
	return "", fmt.Errorf("unknown date unit %q: %w", s, ErrInvalidArgument)
}

// DateWithoutTime returns midnight of t's calendar day in t's location.
func DateWithoutTime(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayDifference returns the signed number of whole days from a to b.
// Both values are normalised to midnight and the millisecond delta is rounded,
// so a 23 or 25 hour day across a DST change still counts as one day.
func DayDifference(a, b time.Time) int {
	delta := DateWithoutTime(b).Sub(DateWithoutTime(a)).Milliseconds()
	return int(math.Round(float64(delta) / float64(constants.MillisPerDay)))
}

// AddInterval adds amount units to t. Calendar units (years, months, weeks,
// days) move the wall-clock date; clock units add an absolute duration.
func AddInterval(t time.Time, unit Unit, amount int) (time.Time, error) {
	switch unit {
	case Years:
		return t.AddDate(amount, 0, 0), nil
	case Months:
		return t.AddDate(0, amount, 0), nil
	case Weeks:
		return t.AddDate(0, 0, amount*7), nil
	case Days:
		return t.AddDate(0, 0, amount), nil
	case Hours:
		return t.Add(time.Duration(amount) * time.Hour), nil
	case Minutes:
		return t.Add(time.Duration(amount) * time.Minute), nil
	case Seconds:
		return t.Add(time.Duration(amount) * time.Second), nil
	default:
		return t, fmt.Errorf("AddInterval: unknown date unit %q: %w", string(unit), ErrInvalidArgument)
	}
}

// AddDays is AddInterval with the Days unit, which cannot fail.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// IsToday reports whether t falls on the same calendar day as now, compared in
// t's location.
func IsToday(t, now time.Time) bool {
	now = now.In(t.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

var (
	weekdayCodes = [7]string{"U", "M", "T", "W", "R", "F", "S"}
	weekdayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	weekdayLong  = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	monthShort   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthLong    = [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
)

// WeekdayCode returns the single-letter weekday code (U M T W R F S).
func WeekdayCode(t time.Time) string {
	return weekdayCodes[t.Weekday()]
}

// WeekdayName returns the weekday name, abbreviated when short is set.
func WeekdayName(t time.Time, short bool) string {
	if short {
		return weekdayShort[t.Weekday()]
	}
	return weekdayLong[t.Weekday()]
}

// MonthName returns the month name, abbreviated when short is set.
func MonthName(t time.Time, short bool) string {
	if short {
		return monthShort[t.Month()-1]
	}
	return monthLong[t.Month()-1]
}

// DateString formats t as m/d/yyyy, or mm/dd/yyyy with leadingZero.
func DateString(t time.Time, leadingZero bool) string {
	if leadingZero {
		return fmt.Sprintf("%02d/%02d/%d", int(t.Month()), t.Day(), t.Year())
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// FromMillis converts a millisecond epoch instant into a time in loc.
func FromMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}
