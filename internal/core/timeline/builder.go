package timeline

import (
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/core/dateutil"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// TimelineBuilder turns a task list into a date grid and per-task offsets.
type TimelineBuilder struct {
	location *time.Location
	now      func() time.Time
}

// NewTimelineBuilder creates a builder laying out days in loc (nil means
// time.Local) and resolving "today" with now (nil means time.Now).
func NewTimelineBuilder(loc *time.Location, now func() time.Time) *TimelineBuilder {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &TimelineBuilder{
		location: loc,
		now:      now,
	}
}

// Build lays out tasks. It never fails: an empty or date-less task list
// yields a layout whose range is zero and which has no days.
func (tb *TimelineBuilder) Build(tasks []model.Task) *Layout {
	layout := &Layout{
		DaysUntilToday: NoToday,
		Tasks:          make([]TaskLayout, len(tasks)),
		index:          make(map[string]int, len(tasks)),
	}

	var minStart, maxEnd time.Time
	haveStart, haveEnd := false, false

	// First pass: find the extremes and normalise each task's dates.
	for i, task := range tasks {
		tl := TaskLayout{Task: task}
		layout.index[task.ID] = i

		if !task.Start.IsZero() {
			start := task.Start.In(tb.location)
			if !haveStart || start.Before(minStart) {
				minStart = start
				haveStart = true
			}
			tl.StartDate = dateutil.DateWithoutTime(start)
			tl.StartStr = dateutil.DateString(tl.StartDate, true)
			tl.StartStrTrim = dateutil.DateString(tl.StartDate, false)
		}
		if !task.End.IsZero() {
			end := task.End.In(tb.location)
			if !haveEnd || end.After(maxEnd) {
				maxEnd = end
				haveEnd = true
			}
			tl.EndDate = dateutil.DateWithoutTime(end)
			tl.EndStr = dateutil.DateString(tl.EndDate, true)
			tl.EndStrTrim = dateutil.DateString(tl.EndDate, false)
		}
		if task.HasDates() {
			tl.Dated = true
			tl.DurationDays = dateutil.DayDifference(tl.StartDate, tl.EndDate)
		}
		layout.Tasks[i] = tl
	}

	if !haveStart || !haveEnd {
		util.LogDebug("timeline has no dated tasks", util.F("tasks", len(tasks)))
		return layout
	}

	minDate := dateutil.AddDays(dateutil.DateWithoutTime(minStart), -1)
	maxDate := dateutil.AddDays(dateutil.DateWithoutTime(maxEnd), 1)
	// Start dates are not checked against end dates. When the last end
	// falls well before the first start the range runs the other way.
	if maxDate.Before(minDate) {
		minDate = dateutil.AddDays(dateutil.DateWithoutTime(maxEnd), -1)
		maxDate = dateutil.AddDays(dateutil.DateWithoutTime(minStart), 1)
	}

	// Second pass: horizontal offsets from the chart's first day.
	for i := range layout.Tasks {
		if !layout.Tasks[i].StartDate.IsZero() {
			layout.Tasks[i].DaysToStart = dateutil.DayDifference(minDate, layout.Tasks[i].StartDate)
		}
	}

	numDays := dateutil.DayDifference(minDate, maxDate) + 1
	layout.Range = model.ChartRange{
		MinDate: minDate,
		MaxDate: maxDate,
		NumDays: numDays,
	}

	now := tb.now()
	layout.Days = make([]model.ChartDay, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := dateutil.AddDays(minDate, i)
		if dateutil.IsToday(date, now) {
			layout.DaysUntilToday = i
		}
		layout.Days = append(layout.Days, newChartDay(date))
	}

	util.LogDebug("timeline built",
		util.F("tasks", len(tasks)),
		util.F("days", numDays),
		util.F("min", layout.Range.MinDate.Format("2006-01-02")),
		util.F("max", layout.Range.MaxDate.Format("2006-01-02")))

	return layout
}

func newChartDay(date time.Time) model.ChartDay {
	return model.ChartDay{
		Date:         date,
		Epoch:        date.UnixMilli(),
		Day:          date.Day(),
		WeekdayCode:  dateutil.WeekdayCode(date),
		WeekdayShort: dateutil.WeekdayName(date, true),
		WeekdayLong:  dateutil.WeekdayName(date, false),
		DateString:   dateutil.DateString(date, false),
		MonthShort:   dateutil.MonthName(date, true),
		MonthLong:    dateutil.MonthName(date, false),
		Year:         date.Year(),
	}
}
