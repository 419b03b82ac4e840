package connector

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// GeometryFunc returns the bar of a task, or false when the task has no bar.
type GeometryFunc func(taskID string) (Bar, bool)

// VisibleFunc reports whether the row of a task is shown.
type VisibleFunc func(taskID string) bool

// Route is one drawn connector. FromID is the task named by the connection,
// where the path starts; ToID is the task that carries the connection, where
// the arrowhead ends.
type Route struct {
	FromID string               `json:"from"`
	ToID   string               `json:"to"`
	Type   model.ConnectionType `json:"type"`
	Path   Path                 `json:"path"`
}

// Router routes every connection of a task list against supplied geometry.
type Router struct {
	geometry GeometryFunc
	visible  VisibleFunc
}

// NewRouter creates a router. A nil visible treats every row as shown.
func NewRouter(geometry GeometryFunc, visible VisibleFunc) *Router {
	if visible == nil {
		visible = func(string) bool { return true }
	}
	return &Router{
		geometry: geometry,
		visible:  visible,
	}
}

// RouteAll walks tasks in order and each task's connections in order. A
// connection whose ends are unknown, hidden, or without geometry is skipped;
// the remaining connections are still routed.
func (r *Router) RouteAll(tasks []model.Task) []Route {
	known := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		known[task.ID] = struct{}{}
	}

	out := make([]Route, 0)
	skipped := 0
	for _, task := range tasks {
		for _, conn := range task.Connections {
			route, reason := r.route(known, task.ID, conn)
			if reason != "" {
				skipped++
				util.LogDebug("connector skipped",
					util.F("from", conn.To),
					util.F("to", task.ID),
					util.F("type", conn.Type.String()),
					util.F("reason", reason))
				continue
			}
			out = append(out, route)
		}
	}

	if skipped > 0 {
		util.LogDebug("connectors routed", util.F("drawn", len(out)), util.F("skipped", skipped))
	}
	return out
}

func (r *Router) route(known map[string]struct{}, carrierID string, conn model.Connection) (Route, string) {
	if !conn.Type.Valid() {
		return Route{}, "unknown type"
	}
	if _, ok := known[conn.To]; !ok {
		return Route{}, "unknown task"
	}
	if !r.visible(conn.To) || !r.visible(carrierID) {
		return Route{}, "hidden"
	}
	if r.geometry == nil {
		return Route{}, "no geometry"
	}
	barA, okA := r.geometry(conn.To)
	barB, okB := r.geometry(carrierID)
	if !okA || !okB {
		return Route{}, "no geometry"
	}

	a := Terminus(barA, conn.Type, true)
	b := Terminus(barB, conn.Type, false)
	return Route{
		FromID: conn.To,
		ToID:   carrierID,
		Type:   conn.Type,
		Path:   RoutePath(conn.Type, a, b),
	}, ""
}
