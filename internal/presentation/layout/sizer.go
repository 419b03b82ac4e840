package layout

import (
	"os"

	"github.com/dmboucher/go-gantt-chart/internal/util"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	// PixelsPerColumn converts terminal cells to chart pixels.
	PixelsPerColumn = 8
	// FallbackContainerWidth is used when no terminal can be measured.
	FallbackContainerWidth = 1280

	fallbackColumns = FallbackContainerWidth / PixelsPerColumn
	fallbackRows    = 40
)

// Sizer holds terminal dimensions in cells.
type Sizer struct {
	Width  int
	Height int
}

// NewSizer creates a sizer for a width x height terminal.
func NewSizer(width, height int) *Sizer {
	return &Sizer{Width: width, Height: height}
}

// ProbeSizer measures the terminal attached to stdout, falling back to a
// 160x40 screen.
func ProbeSizer() *Sizer {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		util.LogDebugf("terminal size unavailable, using %dx%d", fallbackColumns, fallbackRows)
		return NewSizer(fallbackColumns, fallbackRows)
	}
	return NewSizer(width, height)
}

// ContainerWidth converts the terminal width to chart pixels.
func (s *Sizer) ContainerWidth() int {
	if s.Width <= 0 {
		return FallbackContainerWidth
	}
	return s.Width * PixelsPerColumn
}

// AvailableRows returns the lines left for chart rows after the header and
// footer, never negative.
func (s *Sizer) AvailableRows(headerLines, footerLines int) int {
	available := s.Height - headerLines - footerLines
	if available < 0 {
		return 0
	}
	return available
}

// PadString pads s to a display width, counting wide runes correctly.
func (s *Sizer) PadString(text string, width int, leftAlign bool) string {
	if runewidth.StringWidth(text) >= width {
		return text
	}
	if leftAlign {
		return runewidth.FillRight(text, width)
	}
	return runewidth.FillLeft(text, width)
}

// ProbeContainerWidth returns the width of the terminal in chart pixels, or
// FallbackContainerWidth when stdout is not a terminal.
func ProbeContainerWidth() int {
	return ProbeSizer().ContainerWidth()
}
