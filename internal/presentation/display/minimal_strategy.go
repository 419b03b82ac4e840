package display

import (
	"io"

	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// MinimalStrategy draws only task names and bars.
type MinimalStrategy struct{}

func (s *MinimalStrategy) Name() string {
	return "Minimal"
}

func (s *MinimalStrategy) Render(w io.Writer, frame Frame, rows int) {
	for _, row := range visibleRows(frame, rows) {
		writeLine(w, util.FitString(row.Label, frame.Columns.Name, true), " ", timelineLine(frame, &row))
	}
}
