// Package screen replays terminal output onto a virtual screen so tests can
// assert on what a user would actually see.
package screen

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiEscape = regexp.MustCompile(`\x1b\[\??[0-9;]*[a-zA-Z]`)

// Screen is a virtual terminal screen.
type Screen struct {
	rows    int
	cols    int
	buffer  [][]rune
	cursorX int
	cursorY int
}

// New creates a blank rows x cols screen.
func New(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols, buffer: make([][]rune, rows)}
	for i := range s.buffer {
		s.buffer[i] = blankLine(cols)
	}
	return s
}

// StripANSI removes all CSI escape sequences from s.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Parse replays output onto a new rows x cols screen.
func Parse(output string, rows, cols int) *Screen {
	s := New(rows, cols)
	s.Write(output)
	return s
}

// Write replays output from the current cursor position.
func (s *Screen) Write(output string) {
	runes := []rune(output)
	i := 0
	for i < len(runes) {
		switch {
		case runes[i] == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.handleSequence(runes, i)
		case runes[i] == '\r':
			s.cursorX = 0
			i++
		case runes[i] == '\n':
			s.lineFeed()
			i++
		case runes[i] == '\b':
			s.cursorX = max(s.cursorX-1, 0)
			i++
		default:
			s.putChar(runes[i])
			i++
		}
	}
}

// handleSequence consumes one CSI sequence starting at runes[start] and
// returns the index after it.
func (s *Screen) handleSequence(runes []rune, start int) int {
	i := start + 2
	private := i < len(runes) && runes[i] == '?'
	if private {
		i++
	}

	params := []int{}
	current := 0
	for i < len(runes) {
		switch r := runes[i]; {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
		case r == ';':
			params = append(params, current)
			current = 0
		default:
			params = append(params, current)
			if !private {
				s.handleCommand(r, params)
			}
			return i + 1
		}
		i++
	}
	return i
}

func (s *Screen) handleCommand(cmd rune, params []int) {
	n := 1
	if len(params) > 0 && params[0] > 0 {
		n = params[0]
	}

	switch cmd {
	case 'H', 'f':
		row, col := 1, 1
		if len(params) > 0 && params[0] > 0 {
			row = params[0]
		}
		if len(params) > 1 && params[1] > 0 {
			col = params[1]
		}
		s.cursorY = min(row-1, s.rows-1)
		s.cursorX = min(col-1, s.cols-1)

	case 'J':
		switch params[0] {
		case 0:
			s.clearLineFrom(s.cursorX)
			for i := s.cursorY + 1; i < s.rows; i++ {
				s.buffer[i] = blankLine(s.cols)
			}
		case 2:
			for i := range s.buffer {
				s.buffer[i] = blankLine(s.cols)
			}
		}

	case 'K':
		switch params[0] {
		case 0:
			s.clearLineFrom(s.cursorX)
		case 2:
			s.clearLineFrom(0)
		}

	case 'A':
		s.cursorY = max(0, s.cursorY-n)
	case 'B':
		s.cursorY = min(s.rows-1, s.cursorY+n)
	case 'C':
		s.cursorX = min(s.cols-1, s.cursorX+n)
	case 'D':
		s.cursorX = max(0, s.cursorX-n)
	}
}

// putChar writes ch at the cursor. Wide runes take two cells; the second is
// left as a zero placeholder.
func (s *Screen) putChar(ch rune) {
	width := runewidth.RuneWidth(ch)
	if width == 0 {
		return
	}
	if s.cursorX+width > s.cols {
		s.lineFeed()
	}
	if s.cursorY < 0 || s.cursorY >= s.rows {
		return
	}
	s.buffer[s.cursorY][s.cursorX] = ch
	if width == 2 {
		s.buffer[s.cursorY][s.cursorX+1] = 0
	}
	s.cursorX += width
}

func (s *Screen) lineFeed() {
	s.cursorX = 0
	s.cursorY++
	if s.cursorY >= s.rows {
		s.scrollUp()
	}
}

func (s *Screen) clearLineFrom(x int) {
	if s.cursorY < 0 || s.cursorY >= s.rows {
		return
	}
	for j := x; j < s.cols; j++ {
		s.buffer[s.cursorY][j] = ' '
	}
}

func (s *Screen) scrollUp() {
	copy(s.buffer, s.buffer[1:])
	s.buffer[s.rows-1] = blankLine(s.cols)
	s.cursorY = s.rows - 1
}

// Line returns one screen line without trailing blanks.
func (s *Screen) Line(n int) string {
	if n < 0 || n >= s.rows {
		return ""
	}
	return renderLine(s.buffer[n])
}

// Render returns the whole screen, one line per row.
func (s *Screen) Render() string {
	lines := make([]string, s.rows)
	for i, row := range s.buffer {
		lines[i] = renderLine(row)
	}
	return strings.Join(lines, "\n")
}

// Contains reports whether text appears on the screen.
func (s *Screen) Contains(text string) bool {
	return strings.Contains(s.Render(), text)
}

func renderLine(row []rune) string {
	var b strings.Builder
	for _, r := range row {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func blankLine(cols int) []rune {
	line := make([]rune, cols)
	for j := range line {
		line[j] = ' '
	}
	return line
}
