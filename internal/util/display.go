package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset = "\033[0m"
	ColorDim   = "\033[2m"
	ColorBold  = "\033[1m"
	ColorCyan  = "\033[36m"
	ColorGreen = "\033[32m"
	ColorGray  = "\033[90m"

	ClearScreen    = "\033[2J"
	ClearLine      = "\033[2K"
	MoveCursorHome = "\033[H"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
	EnterAltScreen = "\033[?1049h"
	ExitAltScreen  = "\033[?1049l"
)

// GetDisplayWidth returns the number of terminal cells text occupies
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads s with spaces to width cells, on the right when leftAlign is
// set. Strings already at or beyond width are returned as is.
func PadString(s string, width int, leftAlign bool) string {
	actual := GetDisplayWidth(s)
	if actual >= width {
		return s
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// FitString truncates s to width cells (ending with "…" when cut) and pads
// the result to exactly width cells.
func FitString(s string, width int, leftAlign bool) string {
	if width <= 0 {
		return ""
	}
	if GetDisplayWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return PadString(s, width, leftAlign)
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	text = runewidth.Truncate(text, width, "")
	actual := GetDisplayWidth(text)
	left := (width - actual) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-actual-left)
}

// MoveCursor returns ANSI sequence to move cursor to specific position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}

// FormatPercent renders a completion percentage clamped to 0..100.
func FormatPercent(p int) string {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return fmt.Sprintf("%d%%", p)
}
