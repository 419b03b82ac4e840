package constants

import "time"

const (
	// Calendar
	MillisPerDay = int64(24 * time.Hour / time.Millisecond)

	// Day widths per zoom level
	MinDayWidth      = 10.0
	ZoomLevelMin     = 0
	ZoomLevelMax     = 3
	DefaultZoomLevel = ZoomLevelMin

	// Connector routing
	ConnectorStub = 15.0 // horizontal lead-in/lead-out before turning
	ConnectorJog  = 12.0 // vertical jog that clears a row boundary

	// Data grid columns
	DefaultIDColumnWidth   = 35
	DefaultNameColumnWidth = 230
	DefaultDateColumnWidth = 90

	// Pane geometry
	DefaultSplitterWidth  = 7
	DefaultScrollbarWidth = 17
	DefaultRowHeight      = 30
	DefaultBarHeight      = 16
	DefaultHeaderHeight   = 50
	MinPaneFraction       = 0.05

	// Relayout triggers
	ResizeDebounce = 500 * time.Millisecond
)

// FixedDayWidths maps zoom levels 1..3 to their pixel widths; level 0 fits the pane.
var FixedDayWidths = [ZoomLevelMax + 1]float64{0, 30, 60, 90}
