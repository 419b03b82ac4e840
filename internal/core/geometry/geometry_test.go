package geometry

import (
	"testing"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/core/connector"
	"github.com/dmboucher/go-gantt-chart/internal/core/model"
	"github.com/dmboucher/go-gantt-chart/internal/core/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

func at(days int) time.Time { return day0.AddDate(0, 0, days) }

func ptr(s string) *string { return &s }

func buildLayout(t *testing.T, now time.Time, tasks []model.Task) *timeline.Layout {
	t.Helper()
	layout := timeline.NewTimelineBuilder(time.UTC, func() time.Time { return now }).Build(tasks)
	require.NotNil(t, layout)
	return layout
}

func TestComputeBars(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Start: at(0), End: at(5)},
		{ID: "2", Start: at(2), End: at(2)},
		{ID: "3", Name: "No dates"},
	}
	res := Compute(buildLayout(t, day0, tasks), nil, DefaultMetrics(30))

	assert.Equal(t, connector.Bar{Left: 30, Width: 150, Top: 7, Height: 16}, res.Bars["1"])
	assert.Equal(t, connector.Bar{Left: 90, Width: 30, Top: 37, Height: 16}, res.Bars["2"], "zero duration still gets one day")

	_, ok := res.Bar("3")
	assert.False(t, ok, "undated tasks have no bar")
	row, ok := res.Row("3")
	require.True(t, ok)
	assert.Equal(t, 2, row)

	assert.Equal(t, 3, res.VisibleRows)
	assert.Equal(t, 120.0, res.ContentHeight, "three rows plus the spacer row")
	assert.Equal(t, 30.0*8, res.ContentWidth)

	require.NotNil(t, res.Today)
	assert.Equal(t, 30.0, res.Today.Left)
	assert.Equal(t, res.ContentHeight, res.Today.Height)
}

func TestComputeHiddenRows(t *testing.T) {
	tasks := []model.Task{
		{ID: "g", Start: at(0), End: at(1)},
		{ID: "m1", Parent: ptr("g"), Start: at(1), End: at(2)},
		{ID: "m2", Parent: ptr("g"), Start: at(2), End: at(3)},
		{ID: "h", Start: at(3), End: at(4)},
	}
	layout := buildLayout(t, day0, tasks)
	metrics := DefaultMetrics(20)

	expanded := Compute(layout, func(string) bool { return true }, metrics)
	collapsed := Compute(layout, func(id string) bool { return id != "m1" && id != "m2" }, metrics)

	_, ok := collapsed.Bar("m1")
	assert.False(t, ok)
	assert.Equal(t, 2, collapsed.VisibleRows)
	assert.Equal(t, 1, collapsed.Rows["h"], "later rows move up")
	assert.Equal(t, 3, expanded.Rows["h"])

	reexpanded := Compute(layout, nil, metrics)
	assert.Equal(t, expanded.Bars, reexpanded.Bars)
}

func TestComputeTodayOutOfRange(t *testing.T) {
	tasks := []model.Task{{ID: "1", Start: at(0), End: at(1)}}
	res := Compute(buildLayout(t, at(100), tasks), nil, DefaultMetrics(10))
	assert.Nil(t, res.Today)
}

func TestComputeEmpty(t *testing.T) {
	res := Compute(nil, nil, DefaultMetrics(10))
	assert.Zero(t, res.VisibleRows)
	assert.Empty(t, res.Bars)

	var nilResult *Result
	_, ok := nilResult.Bar("x")
	assert.False(t, ok)

	res = Compute(buildLayout(t, day0, []model.Task{{ID: "1"}}), nil, DefaultMetrics(10))
	assert.Equal(t, 1, res.VisibleRows)
	assert.Empty(t, res.Bars)
	assert.Zero(t, res.ContentWidth)
}
