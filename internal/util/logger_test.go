package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string, format LogFormat) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := &Logger{
		level:  ParseLogLevel(level),
		fields: map[string]interface{}{},
	}
	logger.AddOutput(NewConsoleOutput(buf, format))
	return logger, buf
}

func TestLoggerLevels(t *testing.T) {
	logger, buf := newBufferLogger("warn", FormatText)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("relayout skipped", F("chart", "demo"))
	logger.Errorf("bad unit %q", "fortnights")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] relayout skipped chart=demo")
	assert.Contains(t, out, `[ERROR] bad unit "fortnights"`)
}

func TestLoggerWithSortsFields(t *testing.T) {
	logger, buf := newBufferLogger("debug", FormatText)

	child := logger.With(F("zoom", 2), F("chart", "demo"))
	child.Debug("relayout", F("days", 31))

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "relayout chart=demo days=31 zoom=2"), line)
}

func TestLoggerJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger("info", FormatJSON)
	logger.Info("loaded", F("tasks", 12))

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "loaded", entry.Message)
	assert.EqualValues(t, 12, entry.Fields["tasks"])
}

func TestNewLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewLogger(LoggerOptions{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Debugf("rendered %d bars", 3)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] rendered 3 bars")
}

func TestGlobalHelpersAreNoOpsWithoutLogger(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		LogInfo("nothing")
		LogDebugf("nothing %d", 1)
		LogWarn("nothing")
		LogErrorf("nothing")
	})
}

func TestGlobalHelpersWriteToInstalledLogger(t *testing.T) {
	logger, buf := newBufferLogger("debug", FormatText)
	SetLogger(logger)
	defer SetLogger(nil)

	LogInfof("zoom %d", 3)
	assert.Contains(t, buf.String(), "[INFO] zoom 3")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelInfo, ParseLogLevel("bogus"))
}

func TestCalculateFileFingerprint(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(`[{"id":"1"}]`), 0644))
	require.NoError(t, os.WriteFile(b, []byte(`[{"id":"2"}]`), 0644))

	fa, err := CalculateFileFingerprint(a)
	require.NoError(t, err)
	fb, err := CalculateFileFingerprint(b)
	require.NoError(t, err)

	assert.Len(t, fa, 8)
	assert.NotEqual(t, fa, fb)

	_, err = CalculateFileFingerprint(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
