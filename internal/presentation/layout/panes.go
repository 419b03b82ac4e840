// Package layout sizes the two panes of the chart and the splitter between
// them.
package layout

import (
	"github.com/dmboucher/go-gantt-chart/internal/config"
)

// Columns are the task-list column widths in pixels.
type Columns struct {
	ID   float64 `json:"id"`
	Name float64 `json:"name"`
	Date float64 `json:"date"`
}

// ColumnsFromConfig converts configured column widths.
func ColumnsFromConfig(c config.Columns) Columns {
	return Columns{
		ID:   float64(c.ID),
		Name: float64(c.Name),
		Date: float64(c.Date),
	}
}

// GridRowWidth is the width of one task-list row: id, name, start and end.
func (c Columns) GridRowWidth() float64 {
	return c.ID + c.Name + 2*c.Date
}

// PaneWidths splits the container between the task list, the splitter and
// the chart.
type PaneWidths struct {
	Left     float64 `json:"left"`
	Splitter float64 `json:"splitter"`
	Right    float64 `json:"right"`
}

// Total returns the width of both panes without the splitter.
func (p PaneWidths) Total() float64 {
	return p.Left + p.Right
}

// DefaultPaneWidths sizes the left pane to fit one grid row and gives the
// rest of the container to the chart.
func DefaultPaneWidths(container float64, cols Columns, splitter float64) PaneWidths {
	left := cols.GridRowWidth()
	return PaneWidths{
		Left:     left,
		Splitter: splitter,
		Right:    container - left - splitter,
	}
}

// ChartAvailableWidth is the width the fit zoom level spreads days across:
// the chart pane minus its vertical scrollbar and one extra pixel so a
// horizontal scrollbar never appears.
func ChartAvailableWidth(right, scrollbar float64) float64 {
	available := right - scrollbar - 1
	if available < 0 {
		return 0
	}
	return available
}
