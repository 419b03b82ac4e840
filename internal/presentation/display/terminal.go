// Package display draws chart frames on a terminal.
package display

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// TerminalDisplay owns the screen while the interactive view runs.
type TerminalDisplay struct {
	out               io.Writer
	inAlternateScreen bool
	lastStyle         int
	isFirstRender     bool
}

// NewTerminalDisplay draws to out, or to stdout when out is nil.
func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalDisplay{out: out, isFirstRender: true}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	io.WriteString(td.out, util.EnterAltScreen+util.ClearScreen+util.MoveCursorHome+util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	io.WriteString(td.out, util.ClearScreen+util.MoveCursorHome+util.ShowCursor+util.ExitAltScreen)
	td.inAlternateScreen = false
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	if td.inAlternateScreen {
		io.WriteString(td.out, util.ClearScreen+util.MoveCursorHome)
	}
}

// Render draws frame in style using at most rows task lines. The frame is
// composed off screen and written in one go so the terminal never shows a
// half-drawn chart.
func (td *TerminalDisplay) Render(frame Frame, style, rows int) {
	if td.isFirstRender || style != td.lastStyle {
		td.ClearScreen()
		td.lastStyle = style
		td.isFirstRender = false
	}

	var buf bytes.Buffer
	buf.WriteString(util.MoveCursorHome)
	GetStrategy(style).Render(&buf, frame, rows)
	buf.WriteString("\033[J") // clear to end of screen
	td.out.Write(buf.Bytes())
}

// RenderHelp draws the key bindings.
func (td *TerminalDisplay) RenderHelp() {
	td.ClearScreen()
	lines := []string{
		"Gantt Chart - Help",
		strings.Repeat("═", 60),
		"",
		"  + / -        Zoom in / out",
		"  e / c        Expand / collapse all groups",
		"  1-9          Toggle the nth group",
		"  j / k, ↓ / ↑ Scroll rows",
		"  h / l, ← / → Scroll days",
		"  [ / ]        Move the splitter",
		"  t            Switch layout (Full → Minimal)",
		"  r            Reload the data file",
		"  ?            Show this help",
		"  q / Esc      Quit",
		"",
		strings.Repeat("═", 60),
		"Press '?' to return...",
	}
	io.WriteString(td.out, util.MoveCursorHome+strings.Join(lines, "\n")+"\n\033[J")
}
