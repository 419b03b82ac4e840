// Package svg draws a chart snapshot as a standalone SVG document: the task
// list pane on the left, the splitter, and the timeline pane on the right.
package svg

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmboucher/go-gantt-chart/internal/application/chart"
	"github.com/dmboucher/go-gantt-chart/internal/core/zoom"
)

// ErrNoSnapshot is returned when there is nothing to draw.
var ErrNoSnapshot = errors.New("no snapshot to render")

// Style holds the colours and font of the drawing.
type Style struct {
	FontFamily  string
	FontSize    int
	Background  string
	Border      string
	Weekend     string
	Bar         string
	ParentBar   string
	Completed   string
	Connector   string
	Today       string
	Text        string
	HeaderFill  string
	SplitterCol string
}

// DefaultStyle matches the browser chart's palette.
func DefaultStyle() Style {
	return Style{
		FontFamily:  "Arial, sans-serif",
		FontSize:    12,
		Background:  "#ffffff",
		Border:      "rgb(176, 176, 176)",
		Weekend:     "rgb(248, 248, 248)",
		Bar:         "rgb(120, 170, 230)",
		ParentBar:   "rgb(80, 110, 160)",
		Completed:   "rgba(0, 0, 0, 0.25)",
		Connector:   "rgb(100, 100, 100)",
		Today:       "rgb(230, 80, 80)",
		Text:        "#333333",
		HeaderFill:  "rgb(240, 240, 240)",
		SplitterCol: "rgb(200, 200, 200)",
	}
}

// Renderer writes snapshots as SVG.
type Renderer struct {
	Style Style
}

// NewRenderer creates a renderer with the default style.
func NewRenderer() *Renderer {
	return &Renderer{Style: DefaultStyle()}
}

// Render writes snap to w.
func (r *Renderer) Render(w io.Writer, snap *chart.Snapshot) error {
	if snap == nil {
		return ErrNoSnapshot
	}
	_, err := io.WriteString(w, r.Document(snap))
	return err
}

// Document returns the SVG markup for snap.
func (r *Renderer) Document(snap *chart.Snapshot) string {
	st := r.Style
	header := snap.HeaderHeight
	left := snap.Panes.Left
	chartX := left + snap.Panes.Splitter
	width := chartX + snap.ContentWidth
	height := header + snap.ContentHeight

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
text { font-family: %s; font-size: %dpx; fill: %s; }
.gantt_header { font-weight: bold; }
.center { text-anchor: middle; }
</style>
<marker id="arrowhead" markerWidth="10" markerHeight="10" refX="10" refY="5" orient="auto">
<path d="M0,0 L10,5 L0,10 L2,5 Z" fill="%s"/>
</marker>
</defs>
`, num(width), num(height), st.Background, escapeXML(st.FontFamily), st.FontSize, st.Text, st.Connector)

	r.writeGrid(&svg, snap)
	fmt.Fprintf(&svg, `<rect class="gantt_splitter" x="%s" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(left), num(snap.Panes.Splitter), num(height), st.SplitterCol)

	fmt.Fprintf(&svg, `<g class="gantt_chart" transform="translate(%s,0)">`+"\n", num(chartX))
	r.writeChartHeader(&svg, snap)
	fmt.Fprintf(&svg, `<g class="gantt_body" transform="translate(0,%s)">`+"\n", num(header))
	r.writeBody(&svg, snap)
	r.writeBars(&svg, snap)
	r.writeToday(&svg, snap)
	r.writeConnectors(&svg, snap)
	svg.WriteString("</g>\n</g>\n</svg>\n")
	return svg.String()
}

func (r *Renderer) writeGrid(svg *strings.Builder, snap *chart.Snapshot) {
	st := r.Style
	cols := snap.Columns
	rowH := snap.Metrics.RowHeight
	header := snap.HeaderHeight
	colX := []float64{0, cols.ID, cols.ID + cols.Name, cols.ID + cols.Name + cols.Date}
	textY := func(top float64) float64 { return top + rowH/2 + float64(st.FontSize)/3 }

	svg.WriteString(`<g class="gantt_grid">` + "\n")
	fmt.Fprintf(svg, `<rect x="0" y="0" width="%s" height="%s" fill="%s" stroke="%s"/>`+"\n",
		num(snap.Panes.Left), num(header), st.HeaderFill, st.Border)
	for i, label := range []string{"#", "Task", "Start", "End"} {
		fmt.Fprintf(svg, `<text class="gantt_header" x="%s" y="%s">%s</text>`+"\n",
			num(colX[i]+4), num(header-rowH/2+float64(st.FontSize)/3), label)
	}

	for _, tv := range snap.VisibleTasks() {
		top := header + float64(tv.Row)*rowH
		name := tv.Layout.Task.Name
		switch {
		case tv.IsGroupHead && tv.HasMembers && tv.Expanded:
			name = "▾ " + name
		case tv.IsGroupHead && tv.HasMembers:
			name = "▸ " + name
		case !tv.IsGroupHead:
			name = "    " + name
		}

		fmt.Fprintf(svg, `<g class="gantt_grid_row" data-id="%s"><title>%s</title>`+"\n",
			escapeXML(tv.Layout.Task.ID), escapeXML(tv.Layout.Title()))
		fmt.Fprintf(svg, `<line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			num(top+rowH), num(snap.Panes.Left), num(top+rowH), st.Border)
		for i, value := range []string{tv.Layout.Task.ID, name, tv.Layout.StartStrTrim, tv.Layout.EndStrTrim} {
			fmt.Fprintf(svg, `<text x="%s" y="%s" xml:space="preserve">%s</text>`+"\n",
				num(colX[i]+4), num(textY(top)), escapeXML(value))
		}
		svg.WriteString("</g>\n")
	}
	svg.WriteString("</g>\n")
}

func (r *Renderer) writeChartHeader(svg *strings.Builder, snap *chart.Snapshot) {
	st := r.Style
	dw := snap.DayWidth
	half := snap.HeaderHeight / 2

	fmt.Fprintf(svg, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
		num(snap.ContentWidth), num(snap.HeaderHeight), st.HeaderFill)

	rows := [][]zoom.HeaderCell{snap.Header.Major, snap.Header.Minor}
	for ri, cells := range rows {
		top := float64(ri) * half
		baseline := top + half/2 + float64(st.FontSize)/3
		for day, cell := range cells {
			x := float64(day) * dw
			if cell.BorderLeft {
				writeVLine(svg, x, top, top+half, st.Border)
			}
			if cell.BorderRight {
				writeVLine(svg, x+dw, top, top+half, st.Border)
			}
			if cell.Label == "" {
				continue
			}
			if cell.Centered {
				fmt.Fprintf(svg, `<text class="center" x="%s" y="%s">%s</text>`+"\n",
					num(x+dw/2), num(baseline), escapeXML(cell.Label))
			} else {
				fmt.Fprintf(svg, `<text x="%s" y="%s">%s</text>`+"\n",
					num(x+4), num(baseline), escapeXML(cell.Label))
			}
		}
	}
	fmt.Fprintf(svg, `<line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		num(half), num(snap.ContentWidth), num(half), st.Border)
}

func (r *Renderer) writeBody(svg *strings.Builder, snap *chart.Snapshot) {
	st := r.Style
	dw := snap.DayWidth
	h := snap.ContentHeight

	for day, cell := range snap.Body {
		x := float64(day) * dw
		if cell.Weekend {
			fmt.Fprintf(svg, `<rect class="weekend" x="%s" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
				num(x), num(dw), num(h), st.Weekend)
		}
		if cell.BorderLeft {
			writeVLine(svg, x, 0, h, st.Border)
		}
		if cell.BorderRight {
			writeVLine(svg, x+dw, 0, h, st.Border)
		}
	}
}

func (r *Renderer) writeBars(svg *strings.Builder, snap *chart.Snapshot) {
	st := r.Style
	for _, tv := range snap.VisibleTasks() {
		if tv.Bar == nil {
			continue
		}
		b := tv.Bar
		class, fill := "gantt_bar", st.Bar
		if tv.IsGroupHead {
			class, fill = "gantt_bar is_parent", st.ParentBar
		}
		completed := min(max(tv.Layout.Task.Completed, 0), 100)

		fmt.Fprintf(svg, `<g class="%s" data-id="%s" data-completed="%d%%"><title>%s</title>`+"\n",
			class, escapeXML(tv.Layout.Task.ID), completed, escapeXML(tv.Layout.Title()))
		fmt.Fprintf(svg, `<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s"/>`+"\n",
			num(b.Left), num(b.Top), num(b.Width), num(b.Height), fill)
		if completed > 0 {
			fmt.Fprintf(svg, `<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s"/>`+"\n",
				num(b.Left), num(b.Top), num(b.Width*float64(completed)/100), num(b.Height), st.Completed)
		}
		svg.WriteString("</g>\n")
	}
}

func (r *Renderer) writeToday(svg *strings.Builder, snap *chart.Snapshot) {
	if snap.Today == nil {
		return
	}
	fmt.Fprintf(svg, `<line class="is_today" x1="%s" y1="0" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
		num(snap.Today.Left), num(snap.Today.Left), num(snap.Today.Height), r.Style.Today)
}

func (r *Renderer) writeConnectors(svg *strings.Builder, snap *chart.Snapshot) {
	svg.WriteString(`<g class="connector_container">` + "\n")
	for _, route := range snap.Connectors {
		if route.Path.Len() == 0 {
			continue
		}
		fmt.Fprintf(svg, `<path data-from="%s" data-to="%s" data-type="%s" d="%s" fill="none" stroke="%s" stroke-width="1" marker-end="url(#arrowhead)"/>`+"\n",
			escapeXML(route.FromID), escapeXML(route.ToID), route.Type, strings.TrimSpace(route.Path.SVG()), r.Style.Connector)
	}
	svg.WriteString("</g>\n")
}

func writeVLine(svg *strings.Builder, x, y1, y2 float64, stroke string) {
	fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		num(x), num(y1), num(x), num(y2), stroke)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
