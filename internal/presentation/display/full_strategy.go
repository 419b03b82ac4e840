package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// FullStrategy draws the task list pane beside the timeline with both header
// rows, the way the chart looks in a browser.
type FullStrategy struct{}

func (s *FullStrategy) Name() string {
	return "Full Chart"
}

// HeaderLines is the number of lines drawn above the first task row.
const HeaderLines = 4

// FooterLines is the number of lines drawn below the last task row.
const FooterLines = 1

func (s *FullStrategy) Render(w io.Writer, frame Frame, rows int) {
	writeLine(w, util.ColorBold, util.FitString(frame.Title, frame.GridWidth()+1+frame.ChartWidth, true), util.ColorReset)

	cols := frame.Columns
	gridHeader := strings.Join([]string{
		util.FitString("#", cols.ID, false),
		util.FitString("Task", cols.Name, true),
		util.FitString("Start", cols.Date, true),
		util.FitString("End", cols.Date, true),
	}, " ") + " "
	blankGrid := strings.Repeat(" ", frame.GridWidth())

	writeLine(w, blankGrid, paneDivider, util.ColorCyan, labelLine(frame, frame.Major), util.ColorReset)
	writeLine(w, gridHeader, paneDivider, util.ColorDim, labelLine(frame, frame.Minor), util.ColorReset)
	writeLine(w, strings.Repeat("─", frame.GridWidth()), "┼", strings.Repeat("─", max(frame.ChartWidth, 0)))

	for _, row := range visibleRows(frame, rows) {
		grid := strings.Join([]string{
			util.FitString(row.ID, cols.ID, false),
			util.FitString(row.Label, cols.Name, true),
			util.FitString(row.Start, cols.Date, true),
			util.FitString(row.End, cols.Date, true),
		}, " ") + " "
		writeLine(w, grid, paneDivider, timelineLine(frame, &row))
	}

	status := fmt.Sprintf("zoom %d/3 · %d tasks · %d connectors", frame.ZoomLevel, len(frame.Rows), frame.Connectors)
	if frame.Status != "" {
		status += " · " + frame.Status
	}
	writeLine(w, util.ColorGray, status, util.ColorReset)
}
