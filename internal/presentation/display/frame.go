package display

// NoToday marks a frame whose date range does not contain today.
const NoToday = -1

// Row is one visible task as drawn in the terminal.
type Row struct {
	ID        string
	Label     string
	Start     string
	End       string
	Completed int
	HasBar    bool
	StartDay  int
	Days      int
}

// ColumnWidths are the task list columns in cells.
type ColumnWidths struct {
	ID   int
	Name int
	Date int
}

// Frame is everything one screen draw needs, already converted to cells.
type Frame struct {
	Title       string
	ZoomLevel   int
	NumDays     int
	CellsPerDay int
	Major       []string
	Minor       []string
	Weekend     []bool
	TodayDay    int
	Rows        []Row
	Connectors  int
	Columns     ColumnWidths
	ChartWidth  int
	ScrollRow   int
	ScrollCol   int
	Status      string
}

// ChartCells is the full width of the timeline in cells.
func (f Frame) ChartCells() int {
	return f.NumDays * max(f.CellsPerDay, 1)
}

// GridWidth is the width of the task list pane in cells.
func (f Frame) GridWidth() int {
	return f.Columns.ID + 1 + f.Columns.Name + 1 + 2*(f.Columns.Date+1)
}
