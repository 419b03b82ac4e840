package chart

// Pane is the scroll state of one side of the chart.
type Pane struct {
	ScrollTop      float64
	ScrollLeft     float64
	ContentHeight  float64
	ContentWidth   float64
	ViewportHeight float64
	ViewportWidth  float64

	// ScrollbarWidth is the height taken from the viewport while a
	// horizontal scrollbar is shown.
	ScrollbarWidth float64
}

// MaxScrollTop is the largest vertical offset the pane accepts.
func (p *Pane) MaxScrollTop() float64 {
	viewport := p.ViewportHeight
	if p.HorizontalScrollbar() {
		viewport -= p.ScrollbarWidth
	}
	return max(p.ContentHeight-viewport, 0)
}

// MaxScrollLeft is the largest horizontal offset the pane accepts.
func (p *Pane) MaxScrollLeft() float64 {
	return max(p.ContentWidth-p.ViewportWidth, 0)
}

// HorizontalScrollbar reports whether the content is wider than the pane.
func (p *Pane) HorizontalScrollbar() bool {
	return p.ContentWidth > p.ViewportWidth
}

// SetScrollTop clamps top into range and returns the applied value.
func (p *Pane) SetScrollTop(top float64) float64 {
	p.ScrollTop = min(max(top, 0), p.MaxScrollTop())
	return p.ScrollTop
}

// SetScrollLeft clamps left into range and returns the applied value.
func (p *Pane) SetScrollLeft(left float64) float64 {
	p.ScrollLeft = min(max(left, 0), p.MaxScrollLeft())
	return p.ScrollLeft
}

// PaneID names one side of the chart.
type PaneID int

const (
	GridPane PaneID = iota
	ChartPane
)

// ScrollSync keeps the task list and the chart aligned. The chart pane
// drives the grid vertically; each pane drives its own header horizontally.
type ScrollSync struct {
	Grid  *Pane
	Chart *Pane

	GridHeaderLeft  float64
	ChartHeaderLeft float64
}

// NewScrollSync creates a sync over two empty panes.
func NewScrollSync() *ScrollSync {
	return &ScrollSync{Grid: &Pane{}, Chart: &Pane{}}
}

// OnChartScroll applies a vertical scroll of the chart pane and brings the
// grid along. When the panes cannot agree, which happens when only one of
// them shows a horizontal scrollbar, both settle on the smaller offset.
func (s *ScrollSync) OnChartScroll(top float64) {
	s.Chart.SetScrollTop(top)
	s.Grid.SetScrollTop(s.Chart.ScrollTop)
	if s.Grid.ScrollTop != s.Chart.ScrollTop {
		settled := min(s.Grid.ScrollTop, s.Chart.ScrollTop)
		s.Grid.SetScrollTop(settled)
		s.Chart.SetScrollTop(settled)
	}
	s.ChartHeaderLeft = s.Chart.ScrollLeft
}

// OnGridWheel routes a wheel over the grid through the chart pane so both
// sides move together.
func (s *ScrollSync) OnGridWheel(deltaY float64) {
	s.OnChartScroll(s.Chart.ScrollTop + deltaY)
}

// OnHorizontalScroll scrolls one pane sideways and keeps its header in step.
func (s *ScrollSync) OnHorizontalScroll(pane PaneID, left float64) {
	switch pane {
	case GridPane:
		s.GridHeaderLeft = s.Grid.SetScrollLeft(left)
	case ChartPane:
		s.ChartHeaderLeft = s.Chart.SetScrollLeft(left)
	}
}

// Resync re-applies the chart's offset after the content changed size.
func (s *ScrollSync) Resync() {
	s.OnChartScroll(s.Chart.ScrollTop)
	s.OnHorizontalScroll(GridPane, s.Grid.ScrollLeft)
	s.OnHorizontalScroll(ChartPane, s.Chart.ScrollLeft)
}
