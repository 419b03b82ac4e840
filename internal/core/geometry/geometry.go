// Package geometry places task bars in the chart body. Renderers that measure
// their own elements can replace it with their own connector.GeometryFunc.
package geometry

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/connector"
	"github.com/dmboucher/go-gantt-chart/internal/core/constants"
	"github.com/dmboucher/go-gantt-chart/internal/core/timeline"
)

// Metrics are the pixel sizes the body is laid out with.
type Metrics struct {
	DayWidth  float64
	RowHeight float64
	BarHeight float64
}

// DefaultMetrics returns the standard row and bar heights at dayWidth.
func DefaultMetrics(dayWidth float64) Metrics {
	return Metrics{
		DayWidth:  dayWidth,
		RowHeight: constants.DefaultRowHeight,
		BarHeight: constants.DefaultBarHeight,
	}
}

// TodayLine is the vertical marker drawn on the current day.
type TodayLine struct {
	Left   float64 `json:"left"`
	Height float64 `json:"height"`
}

// Result holds the placement of every visible row.
type Result struct {
	Bars          map[string]connector.Bar `json:"bars"`
	Rows          map[string]int           `json:"rows"`
	VisibleRows   int                      `json:"visibleRows"`
	ContentWidth  float64                  `json:"contentWidth"`
	ContentHeight float64                  `json:"contentHeight"`
	Today         *TodayLine               `json:"today,omitempty"`
}

// Bar returns the bar of taskID. It has the shape of connector.GeometryFunc.
func (r *Result) Bar(taskID string) (connector.Bar, bool) {
	if r == nil {
		return connector.Bar{}, false
	}
	bar, ok := r.Bars[taskID]
	return bar, ok
}

// Row returns the visible row index of taskID.
func (r *Result) Row(taskID string) (int, bool) {
	if r == nil {
		return 0, false
	}
	row, ok := r.Rows[taskID]
	return row, ok
}

// Compute packs the visible rows of layout top-down in task order. Hidden
// rows take no space and have no bar; undated rows take a row but no bar. A
// nil visible shows every row.
func Compute(layout *timeline.Layout, visible func(taskID string) bool, m Metrics) *Result {
	res := &Result{
		Bars: make(map[string]connector.Bar),
		Rows: make(map[string]int),
	}
	if layout == nil {
		return res
	}

	barTop := (m.RowHeight - m.BarHeight) / 2
	for _, tl := range layout.Tasks {
		if visible != nil && !visible(tl.Task.ID) {
			continue
		}
		row := res.VisibleRows
		res.Rows[tl.Task.ID] = row
		res.VisibleRows++

		if !tl.Dated || layout.Empty() {
			continue
		}
		res.Bars[tl.Task.ID] = connector.Bar{
			Left:   m.DayWidth * float64(tl.DaysToStart),
			Width:  m.DayWidth * float64(max(tl.DurationDays, 1)),
			Top:    float64(row)*m.RowHeight + barTop,
			Height: m.BarHeight,
		}
	}

	// One trailing spacer row keeps the last row clear of a horizontal scrollbar.
	res.ContentHeight = float64(res.VisibleRows+1) * m.RowHeight
	res.ContentWidth = m.DayWidth * float64(layout.Range.NumDays)

	if layout.HasToday() {
		res.Today = &TodayLine{
			Left:   m.DayWidth * float64(layout.DaysUntilToday),
			Height: res.ContentHeight,
		}
	}
	return res
}
