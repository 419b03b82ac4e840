// Package zoom maps the chart's discrete zoom level to a day width and to the
// label policy of the two header rows.
package zoom

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/constants"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
)

// Controller holds the zoom level of one chart. It is not safe for concurrent
// use; the owning chart serialises access.
type Controller struct {
	level model.ZoomLevel
}

// NewController creates a controller at level, clamped to the valid range.
func NewController(level int) *Controller {
	return &Controller{level: Clamp(level)}
}

// Clamp restricts level to [ZoomLevelMin, ZoomLevelMax].
func Clamp(level int) model.ZoomLevel {
	if level < constants.ZoomLevelMin {
		return constants.ZoomLevelMin
	}
	if level > constants.ZoomLevelMax {
		return constants.ZoomLevelMax
	}
	return model.ZoomLevel(level)
}

// Level returns the current zoom level.
func (c *Controller) Level() model.ZoomLevel {
	return c.level
}

// ZoomIn moves one level closer and reports whether the level changed.
func (c *Controller) ZoomIn() bool {
	return c.Set(int(c.level) + 1)
}

// ZoomOut moves one level back and reports whether the level changed.
func (c *Controller) ZoomOut() bool {
	return c.Set(int(c.level) - 1)
}

// Set moves to level (clamped) and reports whether the level changed.
func (c *Controller) Set(level int) bool {
	next := Clamp(level)
	if next == c.level {
		return false
	}
	c.level = next
	return true
}

// CanZoomIn reports whether ZoomIn would change anything.
func (c *Controller) CanZoomIn() bool {
	return c.level < constants.ZoomLevelMax
}

// CanZoomOut reports whether ZoomOut would change anything.
func (c *Controller) CanZoomOut() bool {
	return c.level > constants.ZoomLevelMin
}

// Policy returns the label and width policy of the current level.
func (c *Controller) Policy() Policy {
	return PolicyFor(c.level)
}

// DayWidth returns the pixel width of one day at the current level.
func (c *Controller) DayWidth(availableWidth float64, numDays int) float64 {
	return DayWidth(c.level, availableWidth, numDays)
}

// DayWidth returns the pixel width of one day. Level 0 fits numDays into
// availableWidth and never goes below MinDayWidth; the other levels are fixed.
func DayWidth(level model.ZoomLevel, availableWidth float64, numDays int) float64 {
	if fixed := PolicyFor(level).FixedDayWidth; fixed > 0 {
		return fixed
	}
	if numDays <= 0 {
		return constants.MinDayWidth
	}
	width := availableWidth / float64(numDays)
	if width < constants.MinDayWidth {
		return constants.MinDayWidth
	}
	return width
}
