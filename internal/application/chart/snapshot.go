package chart

import (
	"sync"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/core/connector"
	"github.com/dmboucher/go-gantt-chart/internal/core/geometry"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/core/timeline"
	"github.com/dmboucher/go-gantt-chart/internal/core/zoom"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/layout"
)

// TaskView is one row as the renderers see it.
type TaskView struct {
	Layout      timeline.TaskLayout `json:"layout"`
	Visible     bool                `json:"visible"`
	IsGroupHead bool                `json:"isGroupHead"`
	HasMembers  bool                `json:"hasMembers"`
	Expanded    bool                `json:"expanded"`
	Row         int                 `json:"row"` // -1 when hidden
	Bar         *connector.Bar      `json:"bar,omitempty"`
}

// Snapshot is one complete layout of a chart. It is never modified after it
// has been published.
type Snapshot struct {
	ID             string                           `json:"id"`
	Zoom           model.ZoomLevel                  `json:"zoom"`
	Range          model.ChartRange                 `json:"range"`
	Days           []model.ChartDay                 `json:"days"`
	DaysUntilToday int                              `json:"daysUntilToday"`
	DayWidth       float64                          `json:"dayWidth"`
	Columns        layout.Columns                   `json:"columns"`
	Panes          layout.PaneWidths                `json:"panes"`
	Metrics        geometry.Metrics                 `json:"metrics"`
	HeaderHeight   float64                          `json:"headerHeight"`
	Header         zoom.HeaderRows                  `json:"header"`
	Body           []zoom.BodyCell                  `json:"body"`
	Tasks          []TaskView                       `json:"tasks"`
	Visibility     map[string]model.VisibilityState `json:"visibility"`
	Connectors     []connector.Route                `json:"connectors"`
	Today          *geometry.TodayLine              `json:"today,omitempty"`
	ContentWidth   float64                          `json:"contentWidth"`
	ContentHeight  float64                          `json:"contentHeight"`
	CanZoomIn      bool                             `json:"canZoomIn"`
	CanZoomOut     bool                             `json:"canZoomOut"`
	BuiltAt        time.Time                        `json:"builtAt"`

	index map[string]int
}

// Empty reports whether the snapshot has no date grid.
func (s *Snapshot) Empty() bool {
	return s == nil || s.Range.IsZero()
}

// Task returns the view of taskID.
func (s *Snapshot) Task(taskID string) (TaskView, bool) {
	if s == nil {
		return TaskView{}, false
	}
	i, ok := s.index[taskID]
	if !ok {
		return TaskView{}, false
	}
	return s.Tasks[i], true
}

// VisibleTasks returns the shown rows in display order.
func (s *Snapshot) VisibleTasks() []TaskView {
	if s == nil {
		return nil
	}
	out := make([]TaskView, 0, len(s.Tasks))
	for _, tv := range s.Tasks {
		if tv.Visible {
			out = append(out, tv)
		}
	}
	return out
}

// SnapshotStore publishes snapshots so that readers only ever see a complete
// layout.
type SnapshotStore struct {
	mu sync.RWMutex

	current  *Snapshot
	previous *Snapshot

	lastUpdate time.Time
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Get returns the current snapshot, nil before the first publish.
func (ss *SnapshotStore) Get() *Snapshot {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.current
}

// Previous returns the snapshot replaced by the last publish.
func (ss *SnapshotStore) Previous() *Snapshot {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.previous
}

// Set publishes snap.
func (ss *SnapshotStore) Set(snap *Snapshot) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.previous = ss.current
	ss.current = snap
	if snap != nil {
		ss.lastUpdate = snap.BuiltAt
	}
}

// LastUpdate returns the build time of the current snapshot.
func (ss *SnapshotStore) LastUpdate() time.Time {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.lastUpdate
}
