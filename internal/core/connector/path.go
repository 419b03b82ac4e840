// Package connector computes the orthogonal paths drawn between dependent
// task bars.
package connector

import (
	"strconv"
	"strings"

	"github.com/dmboucher/go-gantt-chart/internal/core/model"
)

// Bar is a task bar's box relative to the chart body.
type Bar struct {
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the bar's right edge.
func (b Bar) Right() float64 {
	return b.Left + b.Width
}

// VerticalCenter returns the y coordinate halfway down the bar.
func (b Bar) VerticalCenter() float64 {
	return b.Top + b.Height/2
}

// Point is a position in the chart body.
type Point struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Axis is the direction of one path segment.
type Axis byte

const (
	Horizontal Axis = 'H'
	Vertical   Axis = 'V'
)

func (a Axis) String() string {
	return string(a)
}

// MarshalText writes the axis as its SVG command letter.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte{byte(a)}, nil
}

// Segment moves the pen along one axis to an absolute coordinate.
type Segment struct {
	Axis  Axis    `json:"axis"`
	Value float64 `json:"value"`
}

// Path is an orthogonal route from From to To. Arrow marks an arrowhead at To.
type Path struct {
	Type     model.ConnectionType `json:"type"`
	From     Point                `json:"from"`
	To       Point                `json:"to"`
	Segments []Segment            `json:"segments"`
	Arrow    bool                 `json:"arrow"`
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.Segments)
}

// Points expands the path into its absolute vertices, starting with From.
func (p Path) Points() []Point {
	points := make([]Point, 0, len(p.Segments)+1)
	cur := p.From
	points = append(points, cur)
	for _, seg := range p.Segments {
		if seg.Axis == Horizontal {
			cur.Left = seg.Value
		} else {
			cur.Top = seg.Value
		}
		points = append(points, cur)
	}
	return points
}

// SVG renders the path as an SVG path description, for example
// "M10,20 H5 V40 H30 ".
func (p Path) SVG() string {
	var sb strings.Builder
	sb.WriteByte('M')
	sb.WriteString(formatCoord(p.From.Left))
	sb.WriteByte(',')
	sb.WriteString(formatCoord(p.From.Top))
	sb.WriteByte(' ')
	for _, seg := range p.Segments {
		sb.WriteByte(byte(seg.Axis))
		sb.WriteString(formatCoord(seg.Value))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pathBuilder accumulates segments while tracking the pen position.
type pathBuilder struct {
	path Path
	cur  Point
}

func newPathBuilder(t model.ConnectionType, from Point) *pathBuilder {
	return &pathBuilder{
		path: Path{Type: t, From: from, Segments: make([]Segment, 0, 5)},
		cur:  from,
	}
}

func (b *pathBuilder) h(left float64) *pathBuilder {
	b.cur.Left = left
	b.path.Segments = append(b.path.Segments, Segment{Axis: Horizontal, Value: left})
	return b
}

func (b *pathBuilder) v(top float64) *pathBuilder {
	b.cur.Top = top
	b.path.Segments = append(b.path.Segments, Segment{Axis: Vertical, Value: top})
	return b
}

func (b *pathBuilder) done() Path {
	b.path.To = b.cur
	b.path.Arrow = true
	return b.path
}
