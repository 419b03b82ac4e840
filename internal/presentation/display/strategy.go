package display

import (
	"io"
	"strings"

	"github.com/dmboucher/go-gantt-chart/internal/util"
)

const (
	barDone     = '█'
	barPending  = '▒'
	weekendFill = '·'
	todayMark   = '┊'
	paneDivider = "│"
)

// Strategy draws a frame in one layout style.
type Strategy interface {
	Render(w io.Writer, frame Frame, rows int)
	Name() string
}

// Layout styles cycled with the 't' key.
const (
	StyleFull = iota
	StyleMinimal
	styleCount
)

// GetStrategy returns the strategy for style, defaulting to the full layout.
func GetStrategy(style int) Strategy {
	strategies := map[int]Strategy{
		StyleFull:    &FullStrategy{},
		StyleMinimal: &MinimalStrategy{},
	}
	if strategy, ok := strategies[style]; ok {
		return strategy
	}
	return &FullStrategy{}
}

// NextStyle returns the style after style.
func NextStyle(style int) int {
	return (style + 1) % styleCount
}

// timelineLine draws the chart cells of row, or the empty grid when row is
// nil, cut to the frame's horizontal viewport.
func timelineLine(frame Frame, row *Row) string {
	cpd := max(frame.CellsPerDay, 1)
	cells := make([]rune, frame.ChartCells())
	for i := range cells {
		cells[i] = ' '
	}
	for day := 0; day < frame.NumDays; day++ {
		if day < len(frame.Weekend) && frame.Weekend[day] {
			for c := day * cpd; c < (day+1)*cpd; c++ {
				cells[c] = weekendFill
			}
		}
	}
	if frame.TodayDay >= 0 && frame.TodayDay < frame.NumDays {
		cells[frame.TodayDay*cpd] = todayMark
	}

	if row != nil && row.HasBar {
		from := row.StartDay * cpd
		to := min(from+max(row.Days, 1)*cpd, len(cells))
		done := from + (to-from)*clampPercent(row.Completed)/100
		for c := from; c < to; c++ {
			if c < done {
				cells[c] = barDone
			} else {
				cells[c] = barPending
			}
		}
	}
	return viewport(cells, frame.ScrollCol, frame.ChartWidth)
}

// labelLine places day labels at the start of their day, dropping any label
// that would overlap the previous one.
func labelLine(frame Frame, labels []string) string {
	cpd := max(frame.CellsPerDay, 1)
	cells := make([]rune, frame.ChartCells())
	for i := range cells {
		cells[i] = ' '
	}
	next := 0
	for day, label := range labels {
		if label == "" || day >= frame.NumDays {
			continue
		}
		at := day * cpd
		if at < next {
			continue
		}
		for i, r := range []rune(label) {
			if at+i >= len(cells) {
				break
			}
			cells[at+i] = r
		}
		next = at + len([]rune(label)) + 1
	}
	return viewport(cells, frame.ScrollCol, frame.ChartWidth)
}

func viewport(cells []rune, from, width int) string {
	if width <= 0 {
		return ""
	}
	from = min(max(from, 0), len(cells))
	to := min(from+width, len(cells))
	return util.PadString(string(cells[from:to]), width, true)
}

func visibleRows(frame Frame, rows int) []Row {
	from := min(max(frame.ScrollRow, 0), len(frame.Rows))
	to := min(from+max(rows, 0), len(frame.Rows))
	return frame.Rows[from:to]
}

func clampPercent(p int) int {
	return min(max(p, 0), 100)
}

func writeLine(w io.Writer, parts ...string) {
	io.WriteString(w, strings.Join(parts, "")+"\n")
}
