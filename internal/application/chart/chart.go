// Package chart owns one Gantt chart instance: its tasks, zoom level, group
// states, scroll state and the last published layout.
package chart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/config"
	"github.com/dmboucher/go-gantt-chart/internal/core/hierarchy"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/core/timeline"
	"github.com/dmboucher/go-gantt-chart/internal/core/zoom"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/layout"
	"github.com/dmboucher/go-gantt-chart/internal/util"
)

var (
	// ErrNotInitialized is returned by operations called before Initialize.
	ErrNotInitialized = errors.New("chart not initialized")
	// ErrUnknownGroup is returned when toggling an id that heads no group.
	ErrUnknownGroup = hierarchy.ErrUnknownGroup
)

// Option configures a Chart.
type Option func(*Chart)

// WithClock replaces the clock used to find today.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation lays days out in loc instead of the configured timezone.
func WithLocation(loc *time.Location) Option {
	return func(c *Chart) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithGeometry replaces the default bar placement.
func WithGeometry(g GeometryProvider) Option {
	return func(c *Chart) {
		if g != nil {
			c.geometry = g
		}
	}
}

// Chart is one chart instance. All methods are safe for concurrent use;
// mutations are serialised and every mutation publishes a complete snapshot.
type Chart struct {
	id       string
	cfg      config.Config
	location *time.Location
	now      func() time.Time
	geometry GeometryProvider

	mu             sync.Mutex
	initialized    bool
	tasks          []model.Task
	timeline       *timeline.Layout
	zoom           *zoom.Controller
	hierarchy      *hierarchy.Manager
	containerWidth float64
	splitter       *layout.Splitter
	scroll         *ScrollSync

	store *SnapshotStore
}

// New creates a chart. cfg is validated and its timezone resolved unless
// WithLocation is given.
func New(id string, cfg config.Config, opts ...Option) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Chart{
		id:        id,
		cfg:       cfg,
		now:       time.Now,
		geometry:  DefaultGeometry,
		zoom:      zoom.NewController(cfg.Zoom.Level),
		hierarchy: hierarchy.NewManager(nil),
		scroll:    NewScrollSync(),
		store:     NewSnapshotStore(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.location == nil {
		loc, err := util.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, err
		}
		c.location = loc
	}
	return c, nil
}

// ID returns the chart's identifier.
func (c *Chart) ID() string {
	return c.id
}

// Initialize sizes the chart to containerWidth pixels and lays out tasks.
// A non-positive width falls back to the configured or probed width.
func (c *Chart) Initialize(containerWidth int, tasks []model.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.containerWidth = c.resolveWidth(containerWidth)
	c.splitter = layout.NewSplitter(c.defaultPanes())
	c.initialized = true

	util.LogInfo("chart initialized",
		util.F("chart", c.id),
		util.F("tasks", len(tasks)),
		util.F("width", c.containerWidth))
	return c.load(tasks)
}

// Load replaces the task list and rebuilds the whole layout. Groups that
// still exist keep their expand/collapse state.
func (c *Chart) Load(tasks []model.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	return c.load(tasks)
}

func (c *Chart) load(tasks []model.Task) error {
	c.tasks = model.CloneTasks(tasks)
	c.hierarchy.Reset(c.tasks)
	c.timeline = timeline.NewTimelineBuilder(c.location, c.now).Build(c.tasks)
	c.publish(relayoutFull)
	return nil
}

// ToggleGroup flips groupID and returns true when it is now expanded. Only
// rows and connectors are redrawn; the date grid is untouched.
func (c *Chart) ToggleGroup(groupID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return false, ErrNotInitialized
	}
	expanded, err := c.hierarchy.Toggle(groupID)
	if err != nil {
		return false, err
	}
	c.rerouteKeepingScroll()
	return expanded, nil
}

// SetGroup puts groupID into state. Setting the state it already has
// leaves the rows alone.
func (c *Chart) SetGroup(groupID string, state model.VisibilityState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	if c.hierarchy.IsGroup(groupID) && c.hierarchy.IsExpanded(groupID) == bool(state) {
		return nil
	}
	if err := c.hierarchy.Set(groupID, state); err != nil {
		return err
	}
	c.rerouteKeepingScroll()
	return nil
}

// ExpandAll expands every group.
func (c *Chart) ExpandAll() error {
	return c.setAll(model.Expanded)
}

// CollapseAll collapses every group.
func (c *Chart) CollapseAll() error {
	return c.setAll(model.Collapsed)
}

func (c *Chart) setAll(state model.VisibilityState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	c.hierarchy.SetAll(state)
	c.rerouteKeepingScroll()
	return nil
}

// ZoomIn moves one zoom level closer and reports whether it did. Nothing is
// laid out again when the level was already at its maximum.
func (c *Chart) ZoomIn() bool {
	return c.changeZoom(c.zoom.ZoomIn)
}

// ZoomOut moves one zoom level back and reports whether it did.
func (c *Chart) ZoomOut() bool {
	return c.changeZoom(c.zoom.ZoomOut)
}

// SetZoom jumps to level (clamped) and reports whether it changed.
func (c *Chart) SetZoom(level int) bool {
	return c.changeZoom(func() bool { return c.zoom.Set(level) })
}

func (c *Chart) changeZoom(step func() bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !step() {
		return false
	}
	util.LogDebug("zoom changed", util.F("chart", c.id), util.F("level", int(c.zoom.Level())))
	if c.initialized {
		c.publish(relayoutSize)
	}
	return true
}

// Resize lays the chart out for a new container width. Callers debounce
// bursts of resize events themselves.
func (c *Chart) Resize(containerWidth int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrNotInitialized
	}
	c.containerWidth = c.resolveWidth(containerWidth)
	c.splitter.SetDefaults(c.defaultPanes())
	c.publish(relayoutSize)
	return nil
}

// DragSplitter moves the splitter by dx pixels as one press-drag-release
// gesture; a zero dx is a click and resets the panes.
func (c *Chart) DragSplitter(dx float64) (layout.PaneWidths, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return layout.PaneWidths{}, ErrNotInitialized
	}
	c.splitter.Press()
	if dx != 0 {
		c.splitter.Drag(dx)
	}
	widths := c.splitter.Release()
	c.publish(relayoutPanes)
	return widths, nil
}

// Snapshot returns the last complete layout, nil before Initialize.
func (c *Chart) Snapshot() *Snapshot {
	return c.store.Get()
}

// Scroll returns the chart's scroll state. It is owned by the caller's event
// loop and not synchronised.
func (c *Chart) Scroll() *ScrollSync {
	return c.scroll
}

// Tasks returns a copy of the current task list.
func (c *Chart) Tasks() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.CloneTasks(c.tasks)
}

// Groups returns the group ids in display order.
func (c *Chart) Groups() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hierarchy.Groups()
}

func (c *Chart) resolveWidth(containerWidth int) float64 {
	switch {
	case containerWidth > 0:
		return float64(containerWidth)
	case c.cfg.Layout.ContainerWidth > 0:
		return float64(c.cfg.Layout.ContainerWidth)
	default:
		return float64(layout.ProbeContainerWidth())
	}
}

func (c *Chart) defaultPanes() layout.PaneWidths {
	return layout.DefaultPaneWidths(
		c.containerWidth,
		layout.ColumnsFromConfig(c.cfg.Columns),
		float64(c.cfg.Layout.SplitterWidth),
	)
}
