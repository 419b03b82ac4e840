package chart

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/connector"
	"github.com/dmboucher/go-gantt-chart/internal/core/geometry"
	"github.com/dmboucher/go-gantt-chart/internal/core/zoom"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/layout"
	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// relayoutKind says what changed since the last snapshot.
type relayoutKind int

const (
	relayoutFull  relayoutKind = iota // task list replaced
	relayoutSize                      // zoom level or container width
	relayoutPanes                     // splitter moved
	relayoutRows                      // group visibility
)

func (k relayoutKind) String() string {
	switch k {
	case relayoutFull:
		return "full"
	case relayoutSize:
		return "size"
	case relayoutPanes:
		return "panes"
	default:
		return "rows"
	}
}

// rerouteKeepingScroll redraws rows and connectors and puts the chart back
// at the offset it had before.
func (c *Chart) rerouteKeepingScroll() {
	scrollTop := c.scroll.Chart.ScrollTop
	c.publish(relayoutRows)
	c.scroll.OnChartScroll(scrollTop)
}

// publish builds a complete snapshot from the current state and swaps it in.
// Must be called with c.mu held.
func (c *Chart) publish(kind relayoutKind) {
	prev := c.store.Get()
	tl := c.timeline
	level := c.zoom.Level()

	snap := &Snapshot{
		ID:             c.id,
		Zoom:           level,
		Range:          tl.Range,
		Days:           tl.Days,
		DaysUntilToday: tl.DaysUntilToday,
		Columns:        layout.ColumnsFromConfig(c.cfg.Columns),
		Panes:          c.splitter.Widths(),
		HeaderHeight:   float64(c.cfg.Layout.HeaderHeight),
		CanZoomIn:      c.zoom.CanZoomIn(),
		CanZoomOut:     c.zoom.CanZoomOut(),
		BuiltAt:        c.now(),
	}

	// Row changes leave the date grid alone.
	if kind == relayoutRows && prev != nil && prev.Zoom == level {
		snap.DayWidth = prev.DayWidth
		snap.Header = prev.Header
		snap.Body = prev.Body
	} else {
		// The fit level always spreads days over the default chart pane,
		// whatever the splitter says.
		available := layout.ChartAvailableWidth(c.defaultPanes().Right, float64(c.cfg.Layout.ScrollbarWidth))
		snap.DayWidth = c.zoom.DayWidth(available, tl.Range.NumDays)
		snap.Header = zoom.Header(level, tl.Days)
		snap.Body = zoom.BodyCells(tl.Days)
	}

	snap.Metrics = geometry.Metrics{
		DayWidth:  snap.DayWidth,
		RowHeight: float64(c.cfg.Layout.RowHeight),
		BarHeight: float64(c.cfg.Layout.BarHeight),
	}
	geo := c.geometry.Compute(tl, c.hierarchy.IsVisible, snap.Metrics)

	if tl.Empty() {
		snap.Connectors = []connector.Route{}
	} else {
		snap.Connectors = connector.NewRouter(geo.Bar, c.hierarchy.IsVisible).RouteAll(c.tasks)
	}

	snap.Tasks = make([]TaskView, len(tl.Tasks))
	snap.index = make(map[string]int, len(tl.Tasks))
	for i, taskLayout := range tl.Tasks {
		id := taskLayout.Task.ID
		view := TaskView{
			Layout:      taskLayout,
			Visible:     c.hierarchy.IsVisible(id),
			IsGroupHead: taskLayout.Task.IsGroupHead(),
			HasMembers:  len(c.hierarchy.Members(id)) > 0,
			Expanded:    c.hierarchy.IsExpanded(id),
			Row:         -1,
		}
		if row, ok := geo.Row(id); ok {
			view.Row = row
		}
		if bar, ok := geo.Bar(id); ok {
			b := bar
			view.Bar = &b
		}
		snap.Tasks[i] = view
		snap.index[id] = i
	}

	snap.Visibility = c.hierarchy.States()
	snap.Today = geo.Today
	snap.ContentWidth = geo.ContentWidth
	snap.ContentHeight = geo.ContentHeight

	c.syncPanes(snap)
	c.store.Set(snap)

	util.LogDebug("relayout",
		util.F("chart", c.id),
		util.F("kind", kind.String()),
		util.F("zoom", int(level)),
		util.F("days", snap.Range.NumDays),
		util.F("dayWidth", snap.DayWidth),
		util.F("rows", geo.VisibleRows),
		util.F("connectors", len(snap.Connectors)))
}

// syncPanes feeds the new content size to the scroll panes.
func (c *Chart) syncPanes(snap *Snapshot) {
	scrollbar := float64(c.cfg.Layout.ScrollbarWidth)

	c.scroll.Chart.ContentHeight = snap.ContentHeight
	c.scroll.Chart.ContentWidth = snap.ContentWidth
	c.scroll.Chart.ViewportWidth = snap.Panes.Right
	c.scroll.Chart.ScrollbarWidth = scrollbar

	c.scroll.Grid.ContentHeight = snap.ContentHeight
	c.scroll.Grid.ContentWidth = snap.Columns.GridRowWidth()
	c.scroll.Grid.ViewportWidth = snap.Panes.Left
	c.scroll.Grid.ScrollbarWidth = scrollbar

	c.scroll.Resync()
}
