package viewer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/application/chart"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/data/watcher"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/display"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/interaction"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/layout"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/svg"
	"github.com/dmboucher/go-gantt-chart/internal/util"
)

const (
	// splitterStep is how far one '[' or ']' press moves the splitter.
	splitterStep = 4 * layout.PixelsPerColumn

	actionQueueSize = 8
)

// viewState is what the interactive loop shows besides the chart itself.
type viewState struct {
	style    int
	showHelp bool
	status   string
}

// Orchestrator coordinates the data files, the chart and its renderers
type Orchestrator struct {
	config *ViewerConfig

	// Core components
	dataLoader *DataLoader
	chart      *chart.Chart
	renderer   *svg.Renderer
	reloads    *chart.Debouncer
	resizes    *chart.Debouncer
	renderMu   sync.Mutex

	// UI components
	display  *display.TerminalDisplay
	keyboard *interaction.KeyboardReader
	sizer    *layout.Sizer
	state    viewState

	// Monitoring
	watcher   *watcher.FileWatcher
	actions   chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *ViewerConfig, opts ...chart.Option) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c, err := chart.New(filepath.Base(config.DataFiles[0]), config.Chart, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	return &Orchestrator{
		config:     config,
		dataLoader: NewDataLoader(config.DataFiles, config.Concurrency),
		chart:      c,
		renderer:   svg.NewRenderer(),
		reloads:    chart.NewDebouncer(config.Debounce),
		resizes:    chart.NewDebouncer(config.Debounce),
		actions:    make(chan func(), actionQueueSize),
		done:       make(chan struct{}),
	}, nil
}

// Chart returns the chart being driven.
func (o *Orchestrator) Chart() *chart.Chart {
	return o.chart
}

// Load reads the data files, lays the chart out and applies the configured
// collapsed groups.
func (o *Orchestrator) Load() error {
	tasks, err := o.dataLoader.Load()
	if err != nil {
		return err
	}
	if err := o.chart.Initialize(o.config.Width, tasks); err != nil {
		return err
	}

	if o.config.CollapseAll {
		return o.chart.CollapseAll()
	}
	for _, id := range o.config.Collapse {
		if err := o.chart.SetGroup(id, model.Collapsed); err != nil {
			return fmt.Errorf("collapse %s: %w", id, err)
		}
	}
	return nil
}

// Reload reads the data files again and replaces the task list. Group
// states survive.
func (o *Orchestrator) Reload() error {
	tasks, err := o.dataLoader.Load()
	if err != nil {
		return err
	}
	return o.chart.Load(tasks)
}

// RenderSVG writes the current snapshot to the output file and returns its
// path.
func (o *Orchestrator) RenderSVG() (string, error) {
	o.renderMu.Lock()
	defer o.renderMu.Unlock()

	path := o.config.OutputPath()
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := o.renderer.Render(f, o.chart.Snapshot()); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	util.LogDebugf("Rendered %s", path)
	return path, nil
}

// Watch re-renders the SVG whenever a data file changes, until ctx is done.
// onRender, when set, is called after each render.
func (o *Orchestrator) Watch(ctx context.Context, onRender func(path string, err error)) error {
	if err := o.startWatcher(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer o.Close()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Stopping watch")
			return nil

		case event, ok := <-o.watcher.Events():
			if !ok {
				return nil
			}
			o.handleFileChange(event, func() {
				if err := o.Reload(); err != nil {
					util.LogErrorf("Failed to reload tasks: %v", err)
					if onRender != nil {
						onRender("", err)
					}
					return
				}
				path, err := o.RenderSVG()
				if onRender != nil {
					onRender(path, err)
				}
			})
		}
	}
}

// handleFileChange schedules fn once the burst of writes is over. Writes
// that leave the file unchanged are ignored.
func (o *Orchestrator) handleFileChange(event watcher.Event, fn func()) bool {
	util.LogDebugf("File changed: %s (%s)", event.Path, event.Operation)
	if event.Removed() || !o.dataLoader.Changed(event.Path) {
		return false
	}
	o.reloads.Trigger(fn)
	return true
}

// Run starts the interactive terminal view and blocks until the user quits
// or ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting interactive view")
	defer o.Close()

	o.sizer = layout.ProbeSizer()
	if o.config.Width == 0 {
		o.config.Width = o.sizer.ContainerWidth()
	}
	if err := o.Load(); err != nil {
		return err
	}

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	if err := o.startWatcher(); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	o.display = display.NewTerminalDisplay(nil)
	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	sizeTicker := time.NewTicker(o.config.SizePollInterval)
	defer sizeTicker.Stop()

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down interactive view")
			return nil

		case <-sizeTicker.C:
			o.checkSize()

		case action := <-o.actions:
			action()
			o.updateDisplay()

		case event, ok := <-o.watcher.Events():
			if !ok {
				continue
			}
			o.handleFileChange(event, func() {
				o.post(func() {
					if err := o.Reload(); err != nil {
						o.state.status = "reload failed: " + err.Error()
						return
					}
					o.state.status = "reloaded"
				})
			})

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil
			}
			o.updateDisplay()
		}
	}
}

// post hands fn to the event loop. Timer callbacks use it so that the
// chart's scroll state and the screen are only touched by the loop. It
// waits for room in the queue and gives up once the orchestrator is closed.
func (o *Orchestrator) post(fn func()) {
	select {
	case o.actions <- fn:
	case <-o.done:
	}
}

// checkSize re-lays the chart out, debounced, when the terminal was resized.
func (o *Orchestrator) checkSize() {
	current := layout.ProbeSizer()
	if current.Width == o.sizer.Width && current.Height == o.sizer.Height {
		return
	}
	o.sizer = current
	o.scheduleResize(current.ContainerWidth())
}

// scheduleResize re-lays the chart out at width once resizing settles.
func (o *Orchestrator) scheduleResize(width int) {
	o.resizes.Trigger(func() {
		o.post(func() {
			if err := o.chart.Resize(width); err != nil {
				util.LogErrorf("Failed to resize: %v", err)
			}
		})
	})
}

// handleKeyboard applies one key press and reports whether to quit.
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	if o.state.showHelp {
		if event.Type == interaction.KeyEscape || event.Key == '?' {
			o.state.showHelp = false
			return false
		}
	}

	snap := o.chart.Snapshot()
	scroll := o.chart.Scroll()
	rowH := o.config.Chart.Layout.RowHeight

	switch event.Type {
	case interaction.KeyEscape:
		return true
	case interaction.KeyUp:
		scroll.OnGridWheel(-float64(rowH))
	case interaction.KeyDown:
		scroll.OnGridWheel(float64(rowH))
	case interaction.KeyLeft:
		o.scrollDays(snap, -1)
	case interaction.KeyRight:
		o.scrollDays(snap, 1)
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', interaction.CtrlC:
			return true
		case '+', '=':
			o.zoomStatus(o.chart.ZoomIn())
		case '-', '_':
			o.zoomStatus(o.chart.ZoomOut())
		case 'e', 'E':
			o.reportError(o.chart.ExpandAll())
		case 'c', 'C':
			o.reportError(o.chart.CollapseAll())
		case 'j':
			scroll.OnGridWheel(float64(rowH))
		case 'k':
			scroll.OnGridWheel(-float64(rowH))
		case 'h':
			o.scrollDays(snap, -1)
		case 'l':
			o.scrollDays(snap, 1)
		case '[':
			_, err := o.chart.DragSplitter(-splitterStep)
			o.reportError(err)
		case ']':
			_, err := o.chart.DragSplitter(splitterStep)
			o.reportError(err)
		case 't', 'T':
			o.state.style = display.NextStyle(o.state.style)
		case 'r', 'R':
			if err := o.Reload(); err != nil {
				o.state.status = "reload failed: " + err.Error()
			} else {
				o.state.status = "reloaded"
			}
		case '?':
			o.state.showHelp = true
		default:
			if event.Key >= '1' && event.Key <= '9' {
				o.toggleNth(int(event.Key - '1'))
			}
		}
	}
	return false
}

func (o *Orchestrator) toggleNth(n int) {
	groups := o.chart.Groups()
	if n >= len(groups) {
		o.state.status = fmt.Sprintf("no group %d", n+1)
		return
	}
	expanded, err := o.chart.ToggleGroup(groups[n])
	if err != nil {
		o.reportError(err)
		return
	}
	if expanded {
		o.state.status = "expanded " + groups[n]
	} else {
		o.state.status = "collapsed " + groups[n]
	}
}

func (o *Orchestrator) scrollDays(snap *chart.Snapshot, days int) {
	if snap == nil {
		return
	}
	scroll := o.chart.Scroll()
	scroll.OnHorizontalScroll(chart.ChartPane, scroll.Chart.ScrollLeft+float64(days)*snap.DayWidth)
}

func (o *Orchestrator) zoomStatus(changed bool) {
	if !changed {
		o.state.status = "zoom limit reached"
		return
	}
	o.state.status = ""
}

func (o *Orchestrator) reportError(err error) {
	if err != nil {
		util.LogErrorf("Chart operation failed: %v", err)
		o.state.status = err.Error()
	}
}

// updateDisplay draws the current snapshot
func (o *Orchestrator) updateDisplay() {
	if o.display == nil {
		return
	}
	if o.state.showHelp {
		o.display.RenderHelp()
		return
	}
	snap := o.chart.Snapshot()
	if snap == nil {
		return
	}

	rows := o.sizer.AvailableRows(display.HeaderLines, display.FooterLines)
	o.setViewport(rows)
	frame := FrameFromSnapshot(snap, o.chart.Scroll(), o.sizer.Width, o.state.status)
	o.display.Render(frame, o.state.style, rows)
}

// setViewport tells the scroll panes how many rows fit on screen.
func (o *Orchestrator) setViewport(rows int) {
	scroll := o.chart.Scroll()
	height := float64(rows * o.config.Chart.Layout.RowHeight)
	scroll.Chart.ViewportHeight = height
	scroll.Grid.ViewportHeight = height
	scroll.Resync()
}

func (o *Orchestrator) startWatcher() error {
	w, err := watcher.NewFileWatcher(o.dataLoader.Files())
	if err != nil {
		return err
	}
	o.watcher = w
	return nil
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	o.closeOnce.Do(func() { close(o.done) })
	o.reloads.Stop()
	o.resizes.Stop()
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close file watcher: %w", err)
		}
	}
	return nil
}
