package timeline

import (
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/core/model"
)

// NoToday is the DaysUntilToday value when today is outside the chart range.
const NoToday = -1

// TaskLayout is a task plus the values derived from it during a build.
type TaskLayout struct {
	Task         model.Task `json:"task"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	StartStr     string     `json:"startStr"`     // mm/dd/yyyy
	EndStr       string     `json:"endStr"`       // mm/dd/yyyy
	StartStrTrim string     `json:"startStrTrim"` // m/d/yyyy
	EndStrTrim   string     `json:"endStrTrim"`   // m/d/yyyy
	DurationDays int        `json:"durationDays"`
	DaysToStart  int        `json:"daysToStart"`
	Dated        bool       `json:"dated"`
}

// Title is the hover text the renderers show for a row or a bar.
func (tl TaskLayout) Title() string {
	return tl.Task.Name + "\nStart: " + tl.StartStrTrim + "\nEnd: " + tl.EndStrTrim
}

// Layout is the result of one timeline build.
type Layout struct {
	Range          model.ChartRange `json:"range"`
	Days           []model.ChartDay `json:"days"`
	DaysUntilToday int              `json:"daysUntilToday"`
	Tasks          []TaskLayout     `json:"tasks"`

	index map[string]int
}

// Empty reports whether the build produced no date grid.
func (l *Layout) Empty() bool {
	return l == nil || l.Range.IsZero()
}

// HasToday reports whether the current date falls inside the range.
func (l *Layout) HasToday() bool {
	return !l.Empty() && l.DaysUntilToday != NoToday
}

// Task returns the layout of the task with the given id.
func (l *Layout) Task(id string) (TaskLayout, bool) {
	if l == nil {
		return TaskLayout{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return TaskLayout{}, false
	}
	return l.Tasks[i], true
}
