package zoom

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/dateutil"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
)

// HeaderCell is one day's cell in a header row.
type HeaderCell struct {
	Label       string `json:"label,omitempty"`
	BorderLeft  bool   `json:"borderLeft,omitempty"`
	BorderRight bool   `json:"borderRight,omitempty"`
	Centered    bool   `json:"centered,omitempty"`
}

// HeaderRows are the two stacked label rows above the chart body.
type HeaderRows struct {
	Major []HeaderCell `json:"major"`
	Minor []HeaderCell `json:"minor"`
}

// BodyCell is the styling of one day column in the chart body.
type BodyCell struct {
	Weekend     bool `json:"weekend,omitempty"`
	BorderLeft  bool `json:"borderLeft,omitempty"`
	BorderRight bool `json:"borderRight,omitempty"`
}

// Header builds the header rows for days at level. The last element of days
// is the chart's maximum date.
func Header(level model.ZoomLevel, days []model.ChartDay) HeaderRows {
	policy := PolicyFor(level)
	rows := HeaderRows{
		Major: make([]HeaderCell, len(days)),
		Minor: make([]HeaderCell, len(days)),
	}
	if len(days) == 0 {
		return rows
	}
	maxDate := days[len(days)-1].Date

	for i, day := range days {
		remaining := dateutil.DayDifference(day.Date, maxDate)
		first := i == 0
		last := i == len(days)-1

		rows.Major[i] = HeaderCell{
			Label:       policy.Major(day, remaining),
			BorderLeft:  policy.MajorBorder(day, first),
			BorderRight: last,
		}
		rows.Minor[i] = HeaderCell{
			Label:       policy.Minor(day, remaining),
			BorderLeft:  policy.MinorBorder(day, first),
			BorderRight: last,
			Centered:    policy.MinorCentered,
		}
	}
	return rows
}

// BodyCells returns the column styling of the chart body. It does not depend
// on the zoom level.
func BodyCells(days []model.ChartDay) []BodyCell {
	cells := make([]BodyCell, len(days))
	for i, day := range days {
		cells[i] = BodyCell{
			Weekend:     day.IsWeekend(),
			BorderLeft:  i == 0,
			BorderRight: i == len(days)-1,
		}
	}
	return cells
}
