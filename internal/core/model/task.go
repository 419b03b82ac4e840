package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Task is one row of the chart. Tasks without a parent are group heads,
// tasks with a parent are members of that group.
type Task struct {
	ID          string
	Name        string
	Start       time.Time
	End         time.Time
	Parent      *string
	Completed   int
	Connections []Connection
}

// HasParent reports whether the task is a member of a group.
func (t Task) HasParent() bool {
	return t.Parent != nil && *t.Parent != ""
}

// IsGroupHead reports whether the task heads a group.
func (t Task) IsGroupHead() bool {
	return !t.HasParent()
}

// ParentID returns the parent id, or "" for group heads.
func (t Task) ParentID() string {
	if !t.HasParent() {
		return ""
	}
	return *t.Parent
}

// HasDates reports whether both the start and the end instant are set.
func (t Task) HasDates() bool {
	return !t.Start.IsZero() && !t.End.IsZero()
}

// Clone returns a deep copy so a chart never shares its task slice.
func (t Task) Clone() Task {
	c := t
	if t.Parent != nil {
		p := *t.Parent
		c.Parent = &p
	}
	if t.Connections != nil {
		c.Connections = make([]Connection, len(t.Connections))
		copy(c.Connections, t.Connections)
	}
	return c
}

// CloneTasks deep-copies a task slice.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// FlexibleID accepts ids written either as JSON strings or as numbers.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}

	var str string
	if err := sonic.Unmarshal(data, &str); err == nil {
		*id = FlexibleID(str)
		return nil
	}

	var num float64
	if err := sonic.Unmarshal(data, &num); err == nil {
		*id = FlexibleID(strconv.FormatFloat(num, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("id must be a string or a number, got %s", raw)
}

type connectionRecord struct {
	To   FlexibleID `json:"to"`
	Type string     `json:"type"`
}

// taskRecord is the wire form of a task: epoch millisecond instants and a
// "connect" list.
type taskRecord struct {
	ID        FlexibleID         `json:"id"`
	Name      string             `json:"name"`
	Start     *float64           `json:"start"`
	End       *float64           `json:"end"`
	Parent    *FlexibleID        `json:"parent"`
	Completed float64            `json:"completed"`
	Connect   []connectionRecord `json:"connect"`
}

type taskOutput struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Start     *int64       `json:"start"`
	End       *int64       `json:"end"`
	Parent    *string      `json:"parent"`
	Completed int          `json:"completed"`
	Connect   []Connection `json:"connect"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return err
	}

	task := Task{
		ID:        string(rec.ID),
		Name:      rec.Name,
		Completed: int(rec.Completed),
	}
	if rec.Start != nil {
		task.Start = time.UnixMilli(int64(*rec.Start))
	}
	if rec.End != nil {
		task.End = time.UnixMilli(int64(*rec.End))
	}
	if rec.Parent != nil && *rec.Parent != "" {
		parent := string(*rec.Parent)
		task.Parent = &parent
	}

	task.Connections = make([]Connection, 0, len(rec.Connect))
	for _, c := range rec.Connect {
		ct, err := ParseConnectionType(c.Type)
		if err != nil {
			return fmt.Errorf("task %s: connection to %s: %w", task.ID, c.To, err)
		}
		task.Connections = append(task.Connections, Connection{To: string(c.To), Type: ct})
	}

	*t = task
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	out := taskOutput{
		ID:        t.ID,
		Name:      t.Name,
		Parent:    t.Parent,
		Completed: t.Completed,
		Connect:   t.Connections,
	}
	if out.Connect == nil {
		out.Connect = []Connection{}
	}
	if !t.Start.IsZero() {
		ms := t.Start.UnixMilli()
		out.Start = &ms
	}
	if !t.End.IsZero() {
		ms := t.End.UnixMilli()
		out.End = &ms
	}
	return sonic.Marshal(out)
}
