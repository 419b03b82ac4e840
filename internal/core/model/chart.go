package model

import "time"

// ChartRange is the padded date span covered by the chart.
type ChartRange struct {
	MinDate time.Time `json:"minDate"`
	MaxDate time.Time `json:"maxDate"`
	NumDays int       `json:"numDays"`
}

// IsZero reports whether the range is undefined (no dated tasks).
func (r ChartRange) IsZero() bool {
	return r.NumDays == 0
}

// MinEpoch returns MinDate in epoch milliseconds.
func (r ChartRange) MinEpoch() int64 {
	return r.MinDate.UnixMilli()
}

// MaxEpoch returns MaxDate in epoch milliseconds.
func (r ChartRange) MaxEpoch() int64 {
	return r.MaxDate.UnixMilli()
}

// ChartDay carries the precomputed labels for one column of the chart.
type ChartDay struct {
	Date         time.Time `json:"date"`
	Epoch        int64     `json:"epoch"`
	Day          int       `json:"day"`
	WeekdayCode  string    `json:"weekdayCode"`
	WeekdayShort string    `json:"weekdayShort"`
	WeekdayLong  string    `json:"weekdayLong"`
	DateString   string    `json:"dateString"`
	MonthShort   string    `json:"monthShort"`
	MonthLong    string    `json:"monthLong"`
	Year         int       `json:"year"`
}

// IsSunday reports whether the day starts a week.
func (d ChartDay) IsSunday() bool {
	return d.WeekdayCode == "U"
}

// IsWeekend reports whether the day is a Saturday or a Sunday.
func (d ChartDay) IsWeekend() bool {
	return d.WeekdayCode == "U" || d.WeekdayCode == "S"
}

// ZoomLevel is the discrete zoom setting, 0 (fit) through 3.
type ZoomLevel int

// VisibilityState is the expand/collapse state of a group.
type VisibilityState bool

const (
	Collapsed VisibilityState = false
	Expanded  VisibilityState = true
)

func (v VisibilityState) String() string {
	if v {
		return "expanded"
	}
	return "collapsed"
}
