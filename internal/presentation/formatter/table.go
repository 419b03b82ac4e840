package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmboucher/go-gantt-chart/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	headers []string
	// MaxNameWidth truncates long task names; zero means no limit.
	MaxNameWidth int
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		w:       w,
		headers: []string{"#", "Task", "Start", "End", "Done"},
	}
}

func (f *TableFormatter) Format(rows []TaskRow) error {
	widths := f.calculateColumnWidths(rows)

	var b strings.Builder
	f.printBorder(&b, widths, "top")
	f.printRow(&b, f.headers, widths)
	f.printBorder(&b, widths, "middle")
	for _, row := range rows {
		f.printRow(&b, f.values(row), widths)
	}
	f.printBorder(&b, widths, "bottom")

	_, err := io.WriteString(f.w, b.String())
	return err
}

func (f *TableFormatter) values(row TaskRow) []string {
	name := row.Label()
	if f.MaxNameWidth > 0 && util.GetDisplayWidth(name) > f.MaxNameWidth {
		name = util.FitString(name, f.MaxNameWidth, true)
	}
	return []string{
		row.ID,
		name,
		row.Start,
		row.End,
		util.FormatPercent(row.Completed),
	}
}

// calculateColumnWidths sizes each column to its widest cell in terminal
// cells, never below the header.
func (f *TableFormatter) calculateColumnWidths(rows []TaskRow) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range f.values(row) {
			widths[i] = max(widths[i], util.GetDisplayWidth(value))
		}
	}
	return widths
}

// printBorder writes a top, middle or bottom border line.
func (f *TableFormatter) printBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// printRow writes one row; the id and done columns are right-aligned.
func (f *TableFormatter) printRow(b *strings.Builder, values []string, widths []int) {
	b.WriteString("│")
	for i, value := range values {
		leftAlign := i == 1 || i == 2 || i == 3
		fmt.Fprintf(b, " %s │", util.PadString(value, widths[i], leftAlign))
	}
	b.WriteString("\n")
}
