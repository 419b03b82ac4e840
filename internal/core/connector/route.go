package connector

import (
	"github.com/dmboucher/go-gantt-chart/internal/core/constants"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
)

// Terminus returns where a connector of type t meets bar. isSource selects
// the path's starting end; the other end carries the arrowhead.
func Terminus(bar Bar, t model.ConnectionType, isSource bool) Point {
	p := Point{Top: bar.VerticalCenter()}
	switch t {
	case model.StartToStart:
		p.Left = bar.Left
	case model.FinishToFinish:
		p.Left = bar.Right()
	case model.FinishToStart:
		if isSource {
			p.Left = bar.Left
		} else {
			p.Left = bar.Right()
		}
	case model.StartToFinish:
		if isSource {
			p.Left = bar.Right()
		} else {
			p.Left = bar.Left
		}
	}
	return p
}

type routeFunc func(a, b Point) Path

var routes = map[model.ConnectionType]routeFunc{
	model.StartToStart:   routeStartToStart,
	model.FinishToFinish: routeFinishToFinish,
	model.FinishToStart:  routeFinishToStart,
	model.StartToFinish:  routeStartToFinish,
}

// RoutePath builds the orthogonal path from terminus a to terminus b. It is a
// pure function of its arguments. Unknown types yield an empty path.
func RoutePath(t model.ConnectionType, a, b Point) Path {
	fn, ok := routes[t]
	if !ok {
		return Path{Type: t, From: a, To: a}
	}
	return fn(a, b)
}

// Left of both start edges.
func routeStartToStart(a, b Point) Path {
	return newPathBuilder(model.StartToStart, a).
		h(min(a.Left, b.Left) - constants.ConnectorStub).
		v(b.Top).
		h(b.Left).
		done()
}

// Right of both finish edges.
func routeFinishToFinish(a, b Point) Path {
	return newPathBuilder(model.FinishToFinish, a).
		h(max(a.Left, b.Left) + constants.ConnectorStub).
		v(b.Top).
		h(b.Left).
		done()
}

func routeFinishToStart(a, b Point) Path {
	pb := newPathBuilder(model.FinishToStart, a)
	if b.Left+constants.ConnectorStub < a.Left-constants.ConnectorStub {
		return pb.h(a.Left - (a.Left-b.Left)/2).v(b.Top).h(b.Left).done()
	}
	return pb.
		h(a.Left - constants.ConnectorStub).
		v(a.Top + jog(a, b)).
		h(b.Left + constants.ConnectorStub).
		v(b.Top).
		h(b.Left).
		done()
}

func routeStartToFinish(a, b Point) Path {
	pb := newPathBuilder(model.StartToFinish, a)
	if a.Left+constants.ConnectorStub < b.Left-constants.ConnectorStub {
		return pb.h(a.Left + (b.Left-a.Left)/2).v(b.Top).h(b.Left).done()
	}
	return pb.
		h(a.Left + constants.ConnectorStub).
		v(a.Top + jog(a, b)).
		h(b.Left - constants.ConnectorStub).
		v(b.Top).
		h(b.Left).
		done()
}

// jog leaves the source row towards the target row.
func jog(a, b Point) float64 {
	if a.Top < b.Top {
		return constants.ConnectorJog
	}
	return -constants.ConnectorJog
}
