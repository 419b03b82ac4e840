// Package hierarchy tracks which groups of the chart are expanded and derives
// the visibility of every row from that state.
package hierarchy

import (
	"errors"
	"fmt"

	"github.com/dmboucher/go-gantt-chart/internal/core/model"
)

// ErrUnknownGroup is returned when toggling an id that heads no group.
var ErrUnknownGroup = errors.New("unknown group")

// Manager holds the expand/collapse state of each group. There are exactly two
// levels: group heads and their members. It is not safe for concurrent use.
type Manager struct {
	groups   []string
	states   map[string]model.VisibilityState
	members  map[string][]string
	parentOf map[string]string // task id -> group id, "" for group heads
}

// NewManager indexes tasks. Every group starts expanded.
func NewManager(tasks []model.Task) *Manager {
	m := &Manager{}
	m.Reset(tasks)
	return m
}

// Reset re-indexes tasks. Groups that existed before keep their state; new
// groups start expanded.
func (m *Manager) Reset(tasks []model.Task) {
	previous := m.states

	m.groups = make([]string, 0, len(tasks))
	m.states = make(map[string]model.VisibilityState, len(tasks))
	m.members = make(map[string][]string)
	m.parentOf = make(map[string]string, len(tasks))

	addGroup := func(id string) {
		if _, ok := m.states[id]; ok {
			return
		}
		state := model.Expanded
		if prev, ok := previous[id]; ok {
			state = prev
		}
		m.groups = append(m.groups, id)
		m.states[id] = state
	}

	for _, task := range tasks {
		if task.IsGroupHead() {
			m.parentOf[task.ID] = ""
			addGroup(task.ID)
		}
	}
	// A member whose parent is not a group head still gets a group of its own.
	for _, task := range tasks {
		if !task.HasParent() {
			continue
		}
		parent := task.ParentID()
		m.parentOf[task.ID] = parent
		m.members[parent] = append(m.members[parent], task.ID)
		addGroup(parent)
	}
}

// Toggle flips the state of groupID and returns true when the group is now
// expanded.
func (m *Manager) Toggle(groupID string) (bool, error) {
	state, ok := m.states[groupID]
	if !ok {
		return false, fmt.Errorf("toggle %q: %w", groupID, ErrUnknownGroup)
	}
	state = !state
	m.states[groupID] = state
	return bool(state), nil
}

// ExpandAll expands every group.
func (m *Manager) ExpandAll() {
	m.SetAll(model.Expanded)
}

// CollapseAll collapses every group.
func (m *Manager) CollapseAll() {
	m.SetAll(model.Collapsed)
}

// SetAll puts every group in state.
func (m *Manager) SetAll(state model.VisibilityState) {
	for _, id := range m.groups {
		m.states[id] = state
	}
}

// Set puts one group in state.
func (m *Manager) Set(groupID string, state model.VisibilityState) error {
	if _, ok := m.states[groupID]; !ok {
		return fmt.Errorf("set %q: %w", groupID, ErrUnknownGroup)
	}
	m.states[groupID] = state
	return nil
}

// IsGroup reports whether id names a group.
func (m *Manager) IsGroup(id string) bool {
	_, ok := m.states[id]
	return ok
}

// IsExpanded reports whether groupID is expanded. Unknown ids report false.
func (m *Manager) IsExpanded(groupID string) bool {
	return bool(m.states[groupID])
}

// IsVisible reports whether the row of taskID is shown. Group heads are
// always visible; members follow their group. Unknown ids are not visible.
func (m *Manager) IsVisible(taskID string) bool {
	parent, ok := m.parentOf[taskID]
	if !ok {
		return false
	}
	if parent == "" {
		return true
	}
	return bool(m.states[parent])
}

// Members returns the ids of the tasks in groupID, in input order.
func (m *Manager) Members(groupID string) []string {
	members := m.members[groupID]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Groups returns every group id in the order the groups were first seen.
func (m *Manager) Groups() []string {
	out := make([]string, len(m.groups))
	copy(out, m.groups)
	return out
}

// States returns a copy of the state of every group.
func (m *Manager) States() map[string]model.VisibilityState {
	out := make(map[string]model.VisibilityState, len(m.states))
	for id, state := range m.states {
		out[id] = state
	}
	return out
}
