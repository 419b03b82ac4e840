package formatter

import (
	"fmt"
	"io"
	"os"
)

// TaskRow is one line of the task list pane.
type TaskRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Completed   int    `json:"completed"`
	IsGroupHead bool   `json:"isGroupHead"`
	HasMembers  bool   `json:"hasMembers"`
	Expanded    bool   `json:"expanded"`
}

// Marker is the caret shown before a group head with members, or the
// indentation that lines other rows up with it.
func (r TaskRow) Marker() string {
	switch {
	case !r.IsGroupHead:
		return "    "
	case !r.HasMembers:
		return "  "
	case r.Expanded:
		return "▾ "
	default:
		return "▸ "
	}
}

// Label is the name as shown in the task column.
func (r TaskRow) Label() string {
	return r.Marker() + r.Name
}

// Formatter writes task rows in one output format.
type Formatter interface {
	Format(rows []TaskRow) error
}

// New returns the formatter for format ("table", "csv" or "json") writing to
// w, or to stdout when w is nil.
func New(format string, w io.Writer) (Formatter, error) {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "", "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
