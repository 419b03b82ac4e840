package viewer

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/data/parser"
	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// DataLoader reads the task files and remembers their fingerprints so that
// writes which leave a file unchanged do not trigger a reload.
type DataLoader struct {
	files  []string
	parser *parser.Parser

	mu           sync.Mutex
	fingerprints map[string]string
}

// NewDataLoader creates a loader over files.
func NewDataLoader(files []string, concurrency int) *DataLoader {
	return &DataLoader{
		files:        append([]string(nil), files...),
		parser:       parser.NewParser(concurrency),
		fingerprints: make(map[string]string, len(files)),
	}
}

// Files returns the data files in load order.
func (dl *DataLoader) Files() []string {
	return append([]string(nil), dl.files...)
}

// Load reads every file and returns the combined task list.
func (dl *DataLoader) Load() ([]model.Task, error) {
	tasks, err := dl.parser.ParseAll(dl.files)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	dl.mu.Lock()
	for _, f := range dl.files {
		if fp, err := util.CalculateFileFingerprint(f); err == nil {
			dl.fingerprints[absPath(f)] = fp
		}
	}
	dl.mu.Unlock()

	util.LogInfof("Loaded %d tasks from %d files", len(tasks), len(dl.files))
	return tasks, nil
}

// Changed reports whether path differs from what was last loaded. A file
// that cannot be read counts as unchanged; the next write will be seen.
func (dl *DataLoader) Changed(path string) bool {
	fp, err := util.CalculateFileFingerprint(path)
	if err != nil {
		util.LogDebugf("Cannot fingerprint %s: %v", path, err)
		return false
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.fingerprints[absPath(path)] != fp
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
