package model

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUnmarshal(t *testing.T) {
	data := `[
		{"id":"1","name":"Design","start":1717200000000,"end":1717545600000,"completed":40,
		 "connect":[{"to":"2","type":"FS"},{"to":3,"type":"ss"}]},
		{"id":2,"name":"Build","start":1717372800000,"end":1717718400000,"parent":"1","completed":0},
		{"id":"3","name":"Ship","start":1717718400000,"end":1717718400000,"parent":null,"connect":[]}
	]`

	var tasks []Task
	require.NoError(t, sonic.Unmarshal([]byte(data), &tasks))
	require.Len(t, tasks, 3)

	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, 40, tasks[0].Completed)
	assert.True(t, tasks[0].IsGroupHead())
	assert.Equal(t, time.UnixMilli(1717200000000), tasks[0].Start)
	require.Len(t, tasks[0].Connections, 2)
	assert.Equal(t, Connection{To: "2", Type: FinishToStart}, tasks[0].Connections[0])
	assert.Equal(t, Connection{To: "3", Type: StartToStart}, tasks[0].Connections[1])

	assert.Equal(t, "2", tasks[1].ID)
	assert.True(t, tasks[1].HasParent())
	assert.Equal(t, "1", tasks[1].ParentID())
	assert.Empty(t, tasks[1].Connections)

	assert.True(t, tasks[2].IsGroupHead())
	assert.Equal(t, "", tasks[2].ParentID())
}

func TestTaskUnmarshalUnknownConnectionType(t *testing.T) {
	var task Task
	err := sonic.Unmarshal([]byte(`{"id":"9","connect":[{"to":"1","type":"XX"}]}`), &task)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConnectionType)
	assert.Contains(t, err.Error(), "task 9")
}

func TestTaskUnmarshalMissingDates(t *testing.T) {
	var task Task
	require.NoError(t, sonic.Unmarshal([]byte(`{"id":"a","name":"No dates"}`), &task))
	assert.False(t, task.HasDates())
	assert.True(t, task.IsGroupHead())
}

func TestTaskMarshalRoundTripsWireFormat(t *testing.T) {
	parent := "1"
	task := Task{
		ID:          "2",
		Name:        "Build",
		Start:       time.UnixMilli(1717372800000),
		End:         time.UnixMilli(1717718400000),
		Parent:      &parent,
		Completed:   25,
		Connections: []Connection{{To: "1", Type: StartToFinish}},
	}

	data, err := sonic.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"start":1717372800000`)
	assert.Contains(t, string(data), `"type":"SF"`)
	assert.Contains(t, string(data), `"parent":"1"`)
}

func TestTaskClone(t *testing.T) {
	parent := "1"
	orig := Task{ID: "2", Parent: &parent, Connections: []Connection{{To: "1", Type: StartToStart}}}

	c := orig.Clone()
	*c.Parent = "x"
	c.Connections[0].To = "y"

	assert.Equal(t, "1", *orig.Parent)
	assert.Equal(t, "1", orig.Connections[0].To)
}

func TestParseConnectionType(t *testing.T) {
	tests := []struct {
		in      string
		want    ConnectionType
		wantErr bool
	}{
		{in: "SS", want: StartToStart},
		{in: "ff", want: FinishToFinish},
		{in: " FS ", want: FinishToStart},
		{in: "SF", want: StartToFinish},
		{in: "", wantErr: true},
		{in: "SX", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseConnectionType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownConnectionType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, codeOf(tt.want), got.String())
		})
	}
}

func codeOf(ct ConnectionType) string {
	return map[ConnectionType]string{
		StartToStart: "SS", FinishToFinish: "FF", FinishToStart: "FS", StartToFinish: "SF",
	}[ct]
}

func TestChartDayHelpers(t *testing.T) {
	assert.True(t, ChartDay{WeekdayCode: "U"}.IsSunday())
	assert.True(t, ChartDay{WeekdayCode: "S"}.IsWeekend())
	assert.False(t, ChartDay{WeekdayCode: "R"}.IsWeekend())
	assert.True(t, ChartRange{}.IsZero())
	assert.Equal(t, "collapsed", Collapsed.String())
	assert.Equal(t, "expanded", Expanded.String())
}
