package viewer

import (
	"math"

	"github.com/dmboucher/go-gantt-chart/internal/application/chart"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/display"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/formatter"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/layout"
)

// TaskRows converts the visible rows of snap for the table formatters.
func TaskRows(snap *chart.Snapshot) []formatter.TaskRow {
	visible := snap.VisibleTasks()
	rows := make([]formatter.TaskRow, len(visible))
	for i, tv := range visible {
		rows[i] = taskRow(tv)
	}
	return rows
}

func taskRow(tv chart.TaskView) formatter.TaskRow {
	return formatter.TaskRow{
		ID:          tv.Layout.Task.ID,
		Name:        tv.Layout.Task.Name,
		Start:       tv.Layout.StartStrTrim,
		End:         tv.Layout.EndStrTrim,
		Completed:   tv.Layout.Task.Completed,
		IsGroupHead: tv.IsGroupHead,
		HasMembers:  tv.HasMembers,
		Expanded:    tv.Expanded,
	}
}

// FrameFromSnapshot converts snap to terminal cells for a screen width
// cells wide, scrolled as scroll says.
func FrameFromSnapshot(snap *chart.Snapshot, scroll *chart.ScrollSync, width int, status string) display.Frame {
	frame := display.Frame{
		Title:       "Gantt chart " + snap.ID,
		ZoomLevel:   int(snap.Zoom),
		NumDays:     len(snap.Days),
		CellsPerDay: CellsPerDay(snap.DayWidth),
		TodayDay:    display.NoToday,
		Connectors:  len(snap.Connectors),
		Columns:     toCells(snap.Columns),
		Status:      status,
	}
	frame.ChartWidth = max(width-frame.GridWidth()-1, 0)
	if snap.Today != nil {
		frame.TodayDay = snap.DaysUntilToday
	}

	frame.Major = make([]string, len(snap.Header.Major))
	for i, cell := range snap.Header.Major {
		frame.Major[i] = cell.Label
	}
	frame.Minor = make([]string, len(snap.Header.Minor))
	for i, cell := range snap.Header.Minor {
		frame.Minor[i] = cell.Label
	}
	frame.Weekend = make([]bool, len(snap.Body))
	for i, cell := range snap.Body {
		frame.Weekend[i] = cell.Weekend
	}

	for _, tv := range snap.VisibleTasks() {
		frame.Rows = append(frame.Rows, display.Row{
			ID:        tv.Layout.Task.ID,
			Label:     taskRow(tv).Label(),
			Start:     tv.Layout.StartStrTrim,
			End:       tv.Layout.EndStrTrim,
			Completed: tv.Layout.Task.Completed,
			HasBar:    tv.Bar != nil,
			StartDay:  tv.Layout.DaysToStart,
			Days:      max(tv.Layout.DurationDays, 1),
		})
	}

	if scroll != nil {
		if rowH := snap.Metrics.RowHeight; rowH > 0 {
			frame.ScrollRow = int(scroll.Chart.ScrollTop / rowH)
		}
		if snap.DayWidth > 0 {
			frame.ScrollCol = int(scroll.Chart.ScrollLeft/snap.DayWidth) * frame.CellsPerDay
		}
	}
	return frame
}

// CellsPerDay converts a day width in pixels to terminal cells, at least one.
func CellsPerDay(dayWidth float64) int {
	return max(int(math.Round(dayWidth/layout.PixelsPerColumn)), 1)
}

func toCells(cols layout.Columns) display.ColumnWidths {
	return display.ColumnWidths{
		ID:   max(int(cols.ID/layout.PixelsPerColumn), 1),
		Name: max(int(cols.Name/layout.PixelsPerColumn), 1),
		Date: max(int(cols.Date/layout.PixelsPerColumn), 1),
	}
}
