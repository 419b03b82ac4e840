package connector

import (
	"testing"

	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminus(t *testing.T) {
	bar := Bar{Left: 100, Width: 50, Top: 7, Height: 16}

	tests := []struct {
		typ      model.ConnectionType
		isSource bool
		want     float64
	}{
		{model.StartToStart, true, 100},
		{model.StartToStart, false, 100},
		{model.FinishToFinish, true, 150},
		{model.FinishToFinish, false, 150},
		{model.FinishToStart, true, 100},
		{model.FinishToStart, false, 150},
		{model.StartToFinish, true, 150},
		{model.StartToFinish, false, 100},
	}

	for _, tt := range tests {
		got := Terminus(bar, tt.typ, tt.isSource)
		assert.Equal(t, tt.want, got.Left, "%s source=%v", tt.typ, tt.isSource)
		assert.Equal(t, 15.0, got.Top)
	}
}

func TestRoutePath(t *testing.T) {
	tests := []struct {
		name string
		typ  model.ConnectionType
		a, b Point
		svg  string
	}{
		{
			name: "SS routes left of both starts",
			typ:  model.StartToStart,
			a:    Point{Left: 100, Top: 15},
			b:    Point{Left: 40, Top: 45},
			svg:  "M100,15 H25 V45 H40 ",
		},
		{
			name: "SS with source further left",
			typ:  model.StartToStart,
			a:    Point{Left: 40, Top: 15},
			b:    Point{Left: 100, Top: 45},
			svg:  "M40,15 H25 V45 H100 ",
		},
		{
			name: "FF routes right of both finishes",
			typ:  model.FinishToFinish,
			a:    Point{Left: 100, Top: 45},
			b:    Point{Left: 200, Top: 15},
			svg:  "M100,45 H215 V15 H200 ",
		},
		{
			name: "FS through the midpoint",
			typ:  model.FinishToStart,
			a:    Point{Left: 300, Top: 45},
			b:    Point{Left: 100, Top: 15},
			svg:  "M300,45 H200 V15 H100 ",
		},
		{
			name: "FS curves around when too close",
			typ:  model.FinishToStart,
			a:    Point{Left: 120, Top: 15},
			b:    Point{Left: 100, Top: 45},
			svg:  "M120,15 H105 V27 H115 V45 H100 ",
		},
		{
			name: "SF through the midpoint",
			typ:  model.StartToFinish,
			a:    Point{Left: 100, Top: 15},
			b:    Point{Left: 201, Top: 45},
			svg:  "M100,15 H150.5 V45 H201 ",
		},
		{
			name: "SF curves around upwards",
			typ:  model.StartToFinish,
			a:    Point{Left: 100, Top: 45},
			b:    Point{Left: 110, Top: 15},
			svg:  "M100,45 H115 V33 H95 V15 H110 ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := RoutePath(tt.typ, tt.a, tt.b)

			assert.Equal(t, tt.svg, path.SVG())
			assert.Equal(t, tt.typ, path.Type)
			assert.Equal(t, tt.a, path.From)
			assert.Equal(t, tt.b, path.To, "every path ends on the target terminus")
			assert.True(t, path.Arrow)

			points := path.Points()
			require.Len(t, points, path.Len()+1)
			for i := 1; i < len(points); i++ {
				prev, cur := points[i-1], points[i]
				assert.True(t, prev.Left == cur.Left || prev.Top == cur.Top, "segment %d is not orthogonal", i)
			}
		})
	}
}

func TestRoutePathClearanceBoundary(t *testing.T) {
	// Exactly 30px apart is not enough room for two stubs.
	path := RoutePath(model.FinishToStart, Point{Left: 130, Top: 15}, Point{Left: 100, Top: 45})
	assert.Equal(t, 5, path.Len())

	path = RoutePath(model.FinishToStart, Point{Left: 131, Top: 15}, Point{Left: 100, Top: 45})
	assert.Equal(t, 3, path.Len())

	path = RoutePath(model.StartToFinish, Point{Left: 100, Top: 15}, Point{Left: 130, Top: 45})
	assert.Equal(t, 5, path.Len())
}

func TestRoutePathIsDeterministic(t *testing.T) {
	a := Point{Left: 33.3, Top: 15}
	b := Point{Left: 12.1, Top: 75}

	for _, typ := range model.ConnectionTypes() {
		first := RoutePath(typ, a, b)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, RoutePath(typ, a, b))
		}
	}
}

func TestRoutePathUnknownType(t *testing.T) {
	path := RoutePath(model.ConnectionType(9), Point{Left: 1, Top: 2}, Point{Left: 3, Top: 4})
	assert.Zero(t, path.Len())
	assert.False(t, path.Arrow)
}

func ptr(s string) *string { return &s }

// Bars laid out at 30px per day and 30px rows, first chart day is Day-1.
func barAt(daysToStart, duration, row int) Bar {
	if duration < 1 {
		duration = 1
	}
	return Bar{
		Left:   float64(30 * daysToStart),
		Width:  float64(30 * duration),
		Top:    float64(30*row) + 7,
		Height: 16,
	}
}

func geometryOf(bars map[string]Bar) GeometryFunc {
	return func(id string) (Bar, bool) {
		bar, ok := bars[id]
		return bar, ok
	}
}

func TestRouteAllFinishToStartScenarios(t *testing.T) {
	tasks := []model.Task{
		{ID: "A", Connections: []model.Connection{{To: "B", Type: model.FinishToStart}}},
		{ID: "B"},
	}

	t.Run("enough clearance", func(t *testing.T) {
		// A Day0..Day5, B Day10..Day15.
		bars := map[string]Bar{"A": barAt(1, 5, 0), "B": barAt(11, 5, 1)}
		routes := NewRouter(geometryOf(bars), nil).RouteAll(tasks)

		require.Len(t, routes, 1)
		r := routes[0]
		assert.Equal(t, "B", r.FromID)
		assert.Equal(t, "A", r.ToID)
		assert.Equal(t, model.FinishToStart, r.Type)
		assert.Equal(t, 3, r.Path.Len())
		assert.Equal(t, "M330,45 H255 V15 H180 ", r.Path.SVG())
	})

	t.Run("overlapping bars curve around", func(t *testing.T) {
		// A Day0..Day5, B Day1..Day3.
		bars := map[string]Bar{"A": barAt(1, 5, 0), "B": barAt(2, 2, 1)}
		routes := NewRouter(geometryOf(bars), nil).RouteAll(tasks)

		require.Len(t, routes, 1)
		path := routes[0].Path
		assert.Equal(t, 5, path.Len())
		assert.Equal(t, "M60,45 H45 V33 H195 V15 H180 ", path.SVG())
		assert.Equal(t, 12.0, path.From.Top-path.Segments[1].Value)
	})
}

func TestRouteAllSkipsUnroutableConnections(t *testing.T) {
	tasks := []model.Task{
		{ID: "1"},
		{ID: "2", Parent: ptr("1"), Connections: []model.Connection{
			{To: "1", Type: model.StartToStart},
			{To: "missing", Type: model.FinishToStart},
		}},
		{ID: "3", Connections: []model.Connection{
			{To: "2", Type: model.FinishToFinish},
			{To: "4", Type: model.StartToFinish},
			{To: "1", Type: model.ConnectionType(42)},
		}},
		{ID: "4"},
	}
	bars := map[string]Bar{"1": barAt(1, 2, 0), "2": barAt(2, 2, 1), "3": barAt(4, 3, 2)}
	hidden := map[string]bool{}
	visible := func(id string) bool { return !hidden[id] }

	router := NewRouter(geometryOf(bars), visible)

	routes := router.RouteAll(tasks)
	require.Len(t, routes, 2, "dangling ids, missing bars and unknown types are skipped")
	assert.Equal(t, "1", routes[0].FromID)
	assert.Equal(t, "2", routes[0].ToID)
	assert.Equal(t, "2", routes[1].FromID)
	assert.Equal(t, "3", routes[1].ToID)

	hidden["2"] = true
	assert.Empty(t, router.RouteAll(tasks), "both connectors touch the hidden row")

	delete(hidden, "2")
	assert.Equal(t, routes, router.RouteAll(tasks))
}

func TestRouteAllWithoutGeometry(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Connections: []model.Connection{{To: "2", Type: model.StartToStart}}},
		{ID: "2"},
	}
	assert.Empty(t, NewRouter(nil, nil).RouteAll(tasks))
	assert.Empty(t, NewRouter(nil, nil).RouteAll(nil))
}
