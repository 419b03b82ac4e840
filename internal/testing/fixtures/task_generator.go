// Package fixtures writes task data files for tests.
package fixtures

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
)

// TaskEntry is one task in the data file format.
type TaskEntry struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Start     *int64         `json:"start,omitempty"`
	End       *int64         `json:"end,omitempty"`
	Parent    *string        `json:"parent,omitempty"`
	Completed int            `json:"completed,omitempty"`
	Connect   []ConnectEntry `json:"connect,omitempty"`
}

// ConnectEntry is one dependency of a task.
type ConnectEntry struct {
	To   string `json:"to"`
	Type string `json:"type"`
}

// Millis returns t as a data file timestamp.
func Millis(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}

// ParentOf returns a parent reference.
func ParentOf(id string) *string {
	return &id
}

// TaskGenerator writes task files below a base directory.
type TaskGenerator struct {
	baseDir string
}

// NewTaskGenerator creates a generator writing into baseDir.
func NewTaskGenerator(baseDir string) *TaskGenerator {
	return &TaskGenerator{
		baseDir: baseDir,
	}
}

// GroupedPlan returns a plan with two groups and one of each connection
// type, starting at start.
func GroupedPlan(start time.Time) []TaskEntry {
	day := func(n int) *int64 { return Millis(start.AddDate(0, 0, n)) }
	return []TaskEntry{
		{ID: "g", Name: "Design", Start: day(0), End: day(2), Completed: 100},
		{ID: "m1", Name: "Sketches", Parent: ParentOf("g"), Start: day(1), End: day(3), Completed: 50,
			Connect: []ConnectEntry{{To: "g", Type: "SS"}}},
		{ID: "m2", Name: "Review", Parent: ParentOf("g"), Start: day(2), End: day(4)},
		{ID: "h", Name: "Build", Start: day(5), End: day(8),
			Connect: []ConnectEntry{{To: "m1", Type: "FF"}, {To: "g", Type: "SF"}}},
		{ID: "s", Name: "Ship", Parent: ParentOf("h"), Start: day(9), End: day(9),
			Connect: []ConnectEntry{{To: "m2", Type: "FS"}}},
	}
}

// LargePlan returns groups groups of members tasks each, every member
// finishing before the next one starts.
func LargePlan(start time.Time, groups, members int) []TaskEntry {
	var entries []TaskEntry
	for g := 0; g < groups; g++ {
		head := fmt.Sprintf("g%d", g)
		first := start.AddDate(0, 0, g*members)
		entries = append(entries, TaskEntry{
			ID:    head,
			Name:  fmt.Sprintf("Group %d", g),
			Start: Millis(first),
			End:   Millis(first.AddDate(0, 0, members)),
		})
		for m := 0; m < members; m++ {
			entry := TaskEntry{
				ID:        fmt.Sprintf("%s.%d", head, m),
				Name:      fmt.Sprintf("Task %d.%d", g, m),
				Parent:    ParentOf(head),
				Start:     Millis(first.AddDate(0, 0, m)),
				End:       Millis(first.AddDate(0, 0, m+1)),
				Completed: (m * 10) % 101,
			}
			if m > 0 {
				entry.Connect = []ConnectEntry{{To: fmt.Sprintf("%s.%d", head, m-1), Type: "FS"}}
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// GeneratePlan writes the grouped plan as a JSON array and returns its path.
func (g *TaskGenerator) GeneratePlan(name string, start time.Time) (string, error) {
	return g.WriteJSON(name, GroupedPlan(start))
}

// GenerateLargePlan writes a large plan as JSON lines and returns its path.
func (g *TaskGenerator) GenerateLargePlan(name string, start time.Time, groups, members int) (string, error) {
	return g.WriteJSONL(name, LargePlan(start, groups, members))
}

// CreateEmptyPlan writes an empty file and returns its path.
func (g *TaskGenerator) CreateEmptyPlan(name string) (string, error) {
	path, err := g.prepare(name)
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, nil, 0644)
}

// WriteJSON writes entries as one JSON array.
func (g *TaskGenerator) WriteJSON(name string, entries []TaskEntry) (string, error) {
	path, err := g.prepare(name)
	if err != nil {
		return "", err
	}
	data, err := sonic.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0644)
}

// WriteJSONL writes entries one per line.
func (g *TaskGenerator) WriteJSONL(name string, entries []TaskEntry) (string, error) {
	path, err := g.prepare(name)
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range entries {
		line, err := sonic.Marshal(entry)
		if err != nil {
			return "", err
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	return path, w.Flush()
}

// GetBaseDir returns the base directory for test data
func (g *TaskGenerator) GetBaseDir() string {
	return g.baseDir
}

func (g *TaskGenerator) prepare(name string) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, nil
}
