package chart

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/geometry"
	"github.com/dmboucher/go-gantt-chart/internal/core/timeline"
)

// GeometryProvider places the task bars of a layout. Renderers that measure
// their own elements supply one; the default packs rows top-down.
type GeometryProvider interface {
	// Compute returns the bars of the visible rows of layout
	Compute(layout *timeline.Layout, visible func(taskID string) bool, m geometry.Metrics) *geometry.Result
}

// GeometryProviderFunc adapts a function to GeometryProvider.
type GeometryProviderFunc func(layout *timeline.Layout, visible func(taskID string) bool, m geometry.Metrics) *geometry.Result

func (f GeometryProviderFunc) Compute(layout *timeline.Layout, visible func(taskID string) bool, m geometry.Metrics) *geometry.Result {
	return f(layout, visible, m)
}

// DefaultGeometry is the row-packing provider from the geometry package.
var DefaultGeometry GeometryProvider = GeometryProviderFunc(geometry.Compute)

// SnapshotReader gives renderers read access to published layouts.
type SnapshotReader interface {
	// Snapshot returns the last complete layout
	Snapshot() *Snapshot
}
