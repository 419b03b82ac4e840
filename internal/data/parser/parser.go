// Package parser reads task lists from JSON data files.
package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/util"
)

// Parser reads task files. Results are cached per path and reused while the
// file's fingerprint is unchanged.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string]cachedFile
}

type cachedFile struct {
	fingerprint string
	tasks       []model.Task
}

// ParseResult is the outcome of parsing one file.
type ParseResult struct {
	File  string
	Tasks []model.Task
	Error error
}

// NewParser creates a parser that reads at most concurrency files at once.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string]cachedFile),
	}
}

// ParseFile reads the task list at path.
func (p *Parser) ParseFile(path string) ([]model.Task, error) {
	fingerprint, err := util.CalculateFileFingerprint(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && cached.fingerprint == fingerprint {
		p.mu.Unlock()
		util.LogDebugf("Using cached tasks for %s", path)
		return model.CloneTasks(cached.tasks), nil
	}
	p.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	tasks, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	p.mu.Lock()
	p.cache[path] = cachedFile{fingerprint: fingerprint, tasks: tasks}
	p.mu.Unlock()

	util.LogDebugf("Parsed %d tasks from %s", len(tasks), path)
	return model.CloneTasks(tasks), nil
}

// ParseFiles parses files concurrently. Results arrive in completion order
// and the channel is closed once every file is done.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			tasks, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s - %v", f, err)
			}
			results <- ParseResult{File: f, Tasks: tasks, Error: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Parsed %d files in %v", len(files), time.Since(start))
	}()

	return results
}

// ParseAll reads every file and concatenates the tasks in the order the
// files were given. The first failure is returned.
func (p *Parser) ParseAll(files []string) ([]model.Task, error) {
	byFile := make(map[string][]model.Task, len(files))
	for res := range p.ParseFiles(files) {
		if res.Error != nil {
			return nil, res.Error
		}
		byFile[res.File] = res.Tasks
	}

	var tasks []model.Task
	for _, f := range files {
		tasks = append(tasks, byFile[f]...)
	}
	return tasks, nil
}

// Invalidate drops the cached result for path.
func (p *Parser) Invalidate(path string) {
	p.mu.Lock()
	delete(p.cache, path)
	p.mu.Unlock()
}

// Parse decodes a task list. A document starting with '[' is a JSON array
// and must decode as a whole; anything else is read as one task per line,
// skipping lines that fail to decode.
func Parse(data []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []model.Task{}, nil
	}

	if trimmed[0] == '[' {
		var tasks []model.Task
		if err := sonic.Unmarshal(trimmed, &tasks); err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = []model.Task{}
		}
		return tasks, nil
	}
	return parseLines(trimmed)
}

func parseLines(data []byte) ([]model.Task, error) {
	tasks := []model.Task{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var task model.Task
		if err := sonic.Unmarshal(line, &task); err != nil {
			util.LogDebugf("Skip invalid task line %d - %v", lineCount, err)
			continue
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
