package zoom

import (
	"fmt"

	"github.com/dmboucher/go-gantt-chart/internal/core/constants"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
)

// LabelFunc returns the label of a header cell, or "" for none. remaining is
// the number of days between day and the last day of the chart.
type LabelFunc func(day model.ChartDay, remaining int) string

// BorderFunc reports whether a header cell gets a left border. first marks the
// chart's first day.
type BorderFunc func(day model.ChartDay, first bool) bool

// Policy describes one zoom level.
type Policy struct {
	Level         model.ZoomLevel
	FixedDayWidth float64 // 0 means fit to the pane
	Major         LabelFunc
	Minor         LabelFunc
	MajorBorder   BorderFunc
	MinorBorder   BorderFunc
	MinorCentered bool
}

var policies = [constants.ZoomLevelMax + 1]Policy{
	{
		Level:       0,
		Major:       monthYearLabel,
		Minor:       dayMonthLabel,
		MajorBorder: firstOrMonthStart,
		MinorBorder: firstOrSunday,
	},
	{
		Level:         1,
		FixedDayWidth: constants.FixedDayWidths[1],
		Major:         sundayDate(2, true),
		Minor:         weekdayCodeLabel,
		MajorBorder:   firstOrSunday,
		MinorBorder:   always,
		MinorCentered: true,
	},
	{
		Level:         2,
		FixedDayWidth: constants.FixedDayWidths[2],
		Major:         sundayDate(3, false),
		Minor:         func(d model.ChartDay, _ int) string { return d.WeekdayShort },
		MajorBorder:   firstOrSunday,
		MinorBorder:   always,
		MinorCentered: true,
	},
	{
		Level:         3,
		FixedDayWidth: constants.FixedDayWidths[3],
		Major:         sundayDate(3, false),
		Minor:         func(d model.ChartDay, _ int) string { return d.WeekdayLong },
		MajorBorder:   firstOrSunday,
		MinorBorder:   always,
		MinorCentered: true,
	},
}

// PolicyFor returns the policy of level, clamping out-of-range values.
func PolicyFor(level model.ZoomLevel) Policy {
	return policies[Clamp(int(level))]
}

func monthYearLabel(d model.ChartDay, remaining int) string {
	if d.Day != 1 || remaining < 10 {
		return ""
	}
	return fmt.Sprintf("%s %d", d.MonthLong, d.Year)
}

func dayMonthLabel(d model.ChartDay, remaining int) string {
	if !d.IsSunday() || remaining < 7 {
		return ""
	}
	return fmt.Sprintf("%d %s", d.Day, d.MonthShort)
}

func sundayDate(minRemaining int, shortMonth bool) LabelFunc {
	return func(d model.ChartDay, remaining int) string {
		if !d.IsSunday() || remaining < minRemaining {
			return ""
		}
		month := d.MonthLong
		if shortMonth {
			month = d.MonthShort
		}
		return fmt.Sprintf("%s %d, %d", month, d.Day, d.Year)
	}
}

// Sunday reads "S" like Saturday in the narrow header.
func weekdayCodeLabel(d model.ChartDay, _ int) string {
	if d.IsSunday() {
		return "S"
	}
	return d.WeekdayCode
}

func firstOrMonthStart(d model.ChartDay, first bool) bool {
	return first || d.Day == 1
}

func firstOrSunday(d model.ChartDay, first bool) bool {
	return first || d.IsSunday()
}

func always(model.ChartDay, bool) bool {
	return true
}
