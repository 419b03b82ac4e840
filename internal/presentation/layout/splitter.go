package layout

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/constants"
)

// Splitter models dragging the bar between the panes. A press followed by a
// release without movement resets the panes to their default widths.
type Splitter struct {
	defaults PaneWidths
	current  PaneWidths
	resizing bool
	moved    bool
}

// NewSplitter starts with the panes at defaults.
func NewSplitter(defaults PaneWidths) *Splitter {
	return &Splitter{
		defaults: defaults,
		current:  defaults,
	}
}

// Widths returns the current pane widths.
func (s *Splitter) Widths() PaneWidths {
	return s.current
}

// SetDefaults replaces the reset target, for example after a resize. The
// current widths are reset as well.
func (s *Splitter) SetDefaults(defaults PaneWidths) {
	s.defaults = defaults
	s.current = defaults
}

// Press starts a drag.
func (s *Splitter) Press() {
	s.resizing = true
	s.moved = false
}

// Drag moves the split by dx pixels and reports whether it moved. A move that
// would leave either pane below five percent of the total is refused.
func (s *Splitter) Drag(dx float64) bool {
	if !s.resizing {
		return false
	}
	s.moved = true

	left := s.current.Left + dx
	right := s.current.Right - dx
	minWidth := s.current.Total() * constants.MinPaneFraction
	if left < minWidth || right < minWidth {
		return false
	}
	s.current.Left = left
	s.current.Right = right
	return true
}

// Release ends the drag. A click without movement restores the defaults.
func (s *Splitter) Release() PaneWidths {
	if s.resizing && !s.moved {
		s.current = s.defaults
	}
	s.resizing = false
	s.moved = false
	return s.current
}
