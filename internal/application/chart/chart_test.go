package chart

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/config"
	"github.com/dmboucher/go-gantt-chart/internal/core/geometry"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/core/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

func at(days int) time.Time { return day0.AddDate(0, 0, days) }

func ptr(s string) *string { return &s }

func newTestChart(t *testing.T, zoomLevel int) *Chart {
	t.Helper()
	cfg := config.Default()
	cfg.Zoom.Level = zoomLevel
	cfg.Timezone = "UTC"

	c, err := New("test", cfg, WithClock(func() time.Time { return day0 }), WithLocation(time.UTC))
	require.NoError(t, err)
	return c
}

// Group g with two members, and a second head h depending on m1.
func groupedTasks() []model.Task {
	return []model.Task{
		{ID: "g", Name: "Group", Start: at(0), End: at(2)},
		{ID: "m1", Name: "Member 1", Parent: ptr("g"), Start: at(1), End: at(3),
			Connections: []model.Connection{{To: "g", Type: model.StartToStart}}},
		{ID: "m2", Name: "Member 2", Parent: ptr("g"), Start: at(2), End: at(4)},
		{ID: "h", Name: "Head", Start: at(5), End: at(8),
			Connections: []model.Connection{{To: "m1", Type: model.FinishToFinish}, {To: "g", Type: model.StartToFinish}}},
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Zoom.Level = 7
	_, err := New("bad", cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Timezone = "Not/AZone"
	_, err = New("bad", cfg)
	assert.Error(t, err)
}

func TestOperationsBeforeInitialize(t *testing.T) {
	c := newTestChart(t, 0)

	assert.Nil(t, c.Snapshot())
	assert.ErrorIs(t, c.Load(nil), ErrNotInitialized)
	assert.ErrorIs(t, c.ExpandAll(), ErrNotInitialized)
	assert.ErrorIs(t, c.CollapseAll(), ErrNotInitialized)
	assert.ErrorIs(t, c.Resize(800), ErrNotInitialized)
	assert.ErrorIs(t, c.SetGroup("g", model.Collapsed), ErrNotInitialized)
	_, err := c.ToggleGroup("g")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.DragSplitter(10)
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.True(t, c.ZoomIn(), "zoom state still moves before the first layout")
	assert.Nil(t, c.Snapshot())
}

func TestInitializeSingleTask(t *testing.T) {
	c := newTestChart(t, 0)
	require.NoError(t, c.Initialize(1280, []model.Task{{ID: "1", Start: at(0), End: at(0)}}))

	snap := c.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "test", snap.ID)
	assert.Equal(t, 3, snap.Range.NumDays)
	assert.Len(t, snap.Days, 3)
	assert.Equal(t, 1, snap.DaysUntilToday)

	tv, ok := snap.Task("1")
	require.True(t, ok)
	assert.Equal(t, 1, tv.Layout.DaysToStart)
	assert.Equal(t, 0, tv.Layout.DurationDays)
	assert.True(t, tv.Visible)
	assert.True(t, tv.IsGroupHead)

	// 1280 - (35+230+2*90) - 7 = 828 wide chart pane, minus 17+1 for the scrollbar.
	assert.Equal(t, 270.0, snap.DayWidth)
	require.NotNil(t, tv.Bar)
	assert.Equal(t, 270.0, tv.Bar.Left)
	assert.Equal(t, 270.0, tv.Bar.Width)

	require.NotNil(t, snap.Today)
	assert.Equal(t, 270.0, snap.Today.Left)
	assert.False(t, snap.CanZoomOut)
	assert.True(t, snap.CanZoomIn)
}

func TestInitializeEmpty(t *testing.T) {
	c := newTestChart(t, 0)
	require.NoError(t, c.Initialize(1000, nil))

	snap := c.Snapshot()
	require.NotNil(t, snap)
	assert.True(t, snap.Empty())
	assert.Empty(t, snap.Days)
	assert.Empty(t, snap.Connectors)
	assert.Nil(t, snap.Today)
}

func TestInitializeCopiesTasks(t *testing.T) {
	c := newTestChart(t, 1)
	tasks := groupedTasks()
	require.NoError(t, c.Initialize(1280, tasks))

	tasks[0].Name = "changed"
	tasks[1].Connections[0].To = "nowhere"

	assert.Equal(t, "Group", c.Tasks()[0].Name)
	assert.Len(t, c.Snapshot().Connectors, 3)
}

func TestFinishToStartScenarios(t *testing.T) {
	tests := []struct {
		name     string
		bStart   int
		bEnd     int
		segments int
		svg      string
	}{
		{"clearance routes through the midpoint", 10, 15, 3, "M330,45 H255 V15 H180 "},
		{"overlap curves around", 1, 3, 5, "M60,45 H45 V33 H195 V15 H180 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChart(t, 1)
			tasks := []model.Task{
				{ID: "A", Start: at(0), End: at(5), Connections: []model.Connection{{To: "B", Type: model.FinishToStart}}},
				{ID: "B", Start: at(tt.bStart), End: at(tt.bEnd)},
			}
			require.NoError(t, c.Initialize(1280, tasks))

			routes := c.Snapshot().Connectors
			require.Len(t, routes, 1)
			assert.Equal(t, tt.segments, routes[0].Path.Len())
			assert.Equal(t, tt.svg, routes[0].Path.SVG())
		})
	}
}

func TestZoomRelayout(t *testing.T) {
	c := newTestChart(t, 0)
	require.NoError(t, c.Initialize(1280, groupedTasks()))
	first := c.Snapshot()

	assert.False(t, c.ZoomOut())
	assert.Same(t, first, c.Snapshot(), "a no-op zoom does not relayout")

	require.True(t, c.ZoomIn())
	zoomed := c.Snapshot()
	assert.NotSame(t, first, zoomed)
	assert.Equal(t, model.ZoomLevel(1), zoomed.Zoom)
	assert.Equal(t, 30.0, zoomed.DayWidth)
	assert.True(t, zoomed.CanZoomOut)
	assert.Equal(t, first.Range, zoomed.Range)

	tv, ok := zoomed.Task("h")
	require.True(t, ok)
	assert.Equal(t, 30.0*float64(tv.Layout.DaysToStart), tv.Bar.Left)

	assert.True(t, c.SetZoom(3))
	assert.False(t, c.ZoomIn())
	assert.Equal(t, 90.0, c.Snapshot().DayWidth)
	assert.Equal(t, "Wednesday", c.Snapshot().Header.Minor[3].Label)
}

func TestCollapseAndExpandGroup(t *testing.T) {
	c := newTestChart(t, 1)
	require.NoError(t, c.Initialize(1280, groupedTasks()))

	before := c.Snapshot()
	require.Len(t, before.Connectors, 3)

	expanded, err := c.ToggleGroup("g")
	require.NoError(t, err)
	assert.False(t, expanded)

	collapsed := c.Snapshot()
	m1, _ := collapsed.Task("m1")
	m2, _ := collapsed.Task("m2")
	assert.False(t, m1.Visible)
	assert.False(t, m2.Visible)
	assert.Nil(t, m1.Bar)
	assert.Equal(t, -1, m1.Row)

	h, _ := collapsed.Task("h")
	assert.Equal(t, 1, h.Row, "h moves up under the collapsed group")
	require.Len(t, collapsed.Connectors, 1, "only the connector between visible rows remains")
	assert.Equal(t, "g", collapsed.Connectors[0].FromID)
	assert.Equal(t, "h", collapsed.Connectors[0].ToID)
	assert.Equal(t, model.Collapsed, collapsed.Visibility["g"])
	assert.Equal(t, before.Header, collapsed.Header, "the date grid is untouched")

	expanded, err = c.ToggleGroup("g")
	require.NoError(t, err)
	assert.True(t, expanded)

	after := c.Snapshot()
	for _, id := range []string{"g", "m1", "m2", "h"} {
		b, _ := before.Task(id)
		a, _ := after.Task(id)
		assert.Equal(t, b.Bar, a.Bar, "bar of %s restored", id)
		assert.Equal(t, b.Row, a.Row)
	}
	assert.Equal(t, before.Connectors, after.Connectors)
}

func TestExpandCollapseAll(t *testing.T) {
	c := newTestChart(t, 2)
	require.NoError(t, c.Initialize(1280, groupedTasks()))

	g, _ := c.Snapshot().Task("g")
	h, _ := c.Snapshot().Task("h")
	assert.True(t, g.HasMembers)
	assert.False(t, h.HasMembers)

	require.NoError(t, c.CollapseAll())
	snap := c.Snapshot()
	assert.Len(t, snap.VisibleTasks(), 2)
	for _, state := range snap.Visibility {
		assert.Equal(t, model.Collapsed, state)
	}

	require.NoError(t, c.ExpandAll())
	assert.Len(t, c.Snapshot().VisibleTasks(), 4)
}

func TestToggleUnknownGroup(t *testing.T) {
	c := newTestChart(t, 0)
	require.NoError(t, c.Initialize(1280, groupedTasks()))
	before := c.Snapshot()

	_, err := c.ToggleGroup("missing")
	assert.True(t, errors.Is(err, ErrUnknownGroup))
	assert.Same(t, before, c.Snapshot())
}

func TestSetGroup(t *testing.T) {
	c := newTestChart(t, 0)
	require.NoError(t, c.Initialize(1280, groupedTasks()))

	require.NoError(t, c.SetGroup("g", model.Collapsed))
	collapsed := c.Snapshot()
	assert.Len(t, collapsed.VisibleTasks(), 2)

	require.NoError(t, c.SetGroup("g", model.Collapsed))
	assert.Same(t, collapsed, c.Snapshot(), "an unchanged state is not laid out again")

	require.NoError(t, c.SetGroup("g", model.Expanded))
	assert.Len(t, c.Snapshot().VisibleTasks(), 4)

	assert.True(t, errors.Is(c.SetGroup("missing", model.Collapsed), ErrUnknownGroup))
}

func TestLoadKeepsGroupStates(t *testing.T) {
	c := newTestChart(t, 1)
	require.NoError(t, c.Initialize(1280, groupedTasks()))
	_, err := c.ToggleGroup("g")
	require.NoError(t, err)

	tasks := append(groupedTasks(), model.Task{ID: "late", Start: at(20), End: at(25)})
	require.NoError(t, c.Load(tasks))

	snap := c.Snapshot()
	m1, _ := snap.Task("m1")
	assert.False(t, m1.Visible)
	late, ok := snap.Task("late")
	require.True(t, ok)
	assert.True(t, late.Visible)
	assert.Equal(t, 28, snap.Range.NumDays)
	assert.Equal(t, []string{"g", "h", "late"}, c.Groups())
}

func TestResize(t *testing.T) {
	c := newTestChart(t, 0)
	require.NoError(t, c.Initialize(1280, []model.Task{{ID: "1", Start: at(0), End: at(0)}}))

	require.NoError(t, c.Resize(2000))
	snap := c.Snapshot()
	assert.Equal(t, 1548.0, snap.Panes.Right)
	assert.Equal(t, (1548.0-18)/3, snap.DayWidth)

	require.NoError(t, c.Resize(300))
	assert.Equal(t, 10.0, c.Snapshot().DayWidth, "fit width never drops below the minimum")
}

func TestDragSplitter(t *testing.T) {
	c := newTestChart(t, 1)
	require.NoError(t, c.Initialize(1280, groupedTasks()))

	widths, err := c.DragSplitter(100)
	require.NoError(t, err)
	assert.Equal(t, 545.0, widths.Left)
	assert.Equal(t, 728.0, widths.Right)
	assert.Equal(t, widths, c.Snapshot().Panes)

	widths, err = c.DragSplitter(0)
	require.NoError(t, err)
	assert.Equal(t, 445.0, widths.Left, "a click resets the splitter")
}

func TestToggleKeepsScrollPosition(t *testing.T) {
	c := newTestChart(t, 1)
	tasks := groupedTasks()
	for i := 0; i < 20; i++ {
		tasks = append(tasks, model.Task{ID: string(rune('A' + i)), Start: at(i), End: at(i + 1)})
	}
	require.NoError(t, c.Initialize(1280, tasks))

	scroll := c.Scroll()
	scroll.Chart.ViewportHeight = 300
	scroll.Grid.ViewportHeight = 300
	scroll.OnChartScroll(120)
	require.Equal(t, 120.0, scroll.Chart.ScrollTop)

	_, err := c.ToggleGroup("g")
	require.NoError(t, err)
	assert.Equal(t, 120.0, scroll.Chart.ScrollTop)
	assert.Equal(t, 120.0, scroll.Grid.ScrollTop)
}

func TestScrollSettlesWhenOnlyChartScrollsSideways(t *testing.T) {
	c := newTestChart(t, 3)
	require.NoError(t, c.Initialize(1280, groupedTasks()))

	scroll := c.Scroll()
	require.True(t, scroll.Chart.HorizontalScrollbar(), "11 days at 90px overflow the chart pane")
	require.False(t, scroll.Grid.HorizontalScrollbar())

	// 5 rows of 30px; the chart's scrollbar takes 17px from its viewport.
	scroll.Chart.ViewportHeight = 90
	scroll.Grid.ViewportHeight = 90
	assert.Equal(t, 77.0, scroll.Chart.MaxScrollTop())
	assert.Equal(t, 60.0, scroll.Grid.MaxScrollTop())

	scroll.OnChartScroll(100)
	assert.Equal(t, 60.0, scroll.Chart.ScrollTop)
	assert.Equal(t, 60.0, scroll.Grid.ScrollTop)

	scroll.OnGridWheel(-25)
	assert.Equal(t, 35.0, scroll.Chart.ScrollTop)
	assert.Equal(t, 35.0, scroll.Grid.ScrollTop)
}

func TestCustomGeometry(t *testing.T) {
	calls := 0
	provider := GeometryProviderFunc(func(l *timeline.Layout, visible func(string) bool, m geometry.Metrics) *geometry.Result {
		calls++
		res := geometry.Compute(l, visible, m)
		for id, bar := range res.Bars {
			bar.Top += 100
			res.Bars[id] = bar
		}
		return res
	})

	cfg := config.Default()
	c, err := New("custom", cfg, WithGeometry(provider), WithLocation(time.UTC), WithClock(func() time.Time { return day0 }))
	require.NoError(t, err)
	require.NoError(t, c.Initialize(1280, groupedTasks()))

	assert.Equal(t, 1, calls)
	g, _ := c.Snapshot().Task("g")
	assert.Equal(t, 107.0, g.Bar.Top)
}

func TestSnapshotReadsAreConsistent(t *testing.T) {
	c := newTestChart(t, 0)
	require.NoError(t, c.Initialize(1280, groupedTasks()))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := c.Snapshot()
				visible := 0
				for _, tv := range snap.Tasks {
					if tv.Visible {
						visible++
						assert.GreaterOrEqual(t, tv.Row, 0)
					}
				}
				for _, r := range snap.Connectors {
					from, _ := snap.Task(r.FromID)
					to, _ := snap.Task(r.ToID)
					assert.True(t, from.Visible && to.Visible)
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		_, err := c.ToggleGroup("g")
		require.NoError(t, err)
		if i%10 == 0 {
			c.ZoomIn()
		}
	}
	close(stop)
	wg.Wait()
}

func TestScrollSyncScenario(t *testing.T) {
	s := NewScrollSync()
	s.Chart.ContentHeight, s.Chart.ViewportHeight = 500, 360 // max 140
	s.Grid.ContentHeight, s.Grid.ViewportHeight = 500, 400   // max 100

	s.OnChartScroll(140)
	assert.Equal(t, 100.0, s.Chart.ScrollTop)
	assert.Equal(t, 100.0, s.Grid.ScrollTop)

	s.OnChartScroll(40)
	assert.Equal(t, 40.0, s.Chart.ScrollTop)
	assert.Equal(t, 40.0, s.Grid.ScrollTop)

	s.OnGridWheel(25)
	assert.Equal(t, 65.0, s.Chart.ScrollTop)
	assert.Equal(t, 65.0, s.Grid.ScrollTop)

	s.OnGridWheel(-500)
	assert.Zero(t, s.Chart.ScrollTop)
	assert.Zero(t, s.Grid.ScrollTop)
}

func TestScrollSyncHorizontal(t *testing.T) {
	s := NewScrollSync()
	s.Chart.ContentWidth, s.Chart.ViewportWidth = 2000, 800
	s.Grid.ContentWidth, s.Grid.ViewportWidth = 445, 445

	assert.True(t, s.Chart.HorizontalScrollbar())
	assert.False(t, s.Grid.HorizontalScrollbar())

	s.OnHorizontalScroll(ChartPane, 300)
	assert.Equal(t, 300.0, s.ChartHeaderLeft)
	assert.Zero(t, s.GridHeaderLeft)

	s.OnHorizontalScroll(ChartPane, 5000)
	assert.Equal(t, 1200.0, s.Chart.ScrollLeft)
	assert.Equal(t, 1200.0, s.ChartHeaderLeft)

	s.OnHorizontalScroll(GridPane, 50)
	assert.Zero(t, s.GridHeaderLeft, "the grid fits and cannot scroll")
}

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	assert.False(t, d.Stop())
	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Stop())

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestSnapshotStore(t *testing.T) {
	store := NewSnapshotStore()
	assert.Nil(t, store.Get())

	first := &Snapshot{ID: "a", BuiltAt: day0}
	second := &Snapshot{ID: "b", BuiltAt: at(1)}
	store.Set(first)
	store.Set(second)

	assert.Same(t, second, store.Get())
	assert.Same(t, first, store.Previous())
	assert.Equal(t, at(1), store.LastUpdate())

	var nilSnap *Snapshot
	assert.True(t, nilSnap.Empty())
	assert.Nil(t, nilSnap.VisibleTasks())
	_, ok := nilSnap.Task("x")
	assert.False(t, ok)
}
