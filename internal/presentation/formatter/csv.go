package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(rows []TaskRow) error {
	w := csv.NewWriter(f.w)

	headers := []string{"ID", "Name", "Start", "End", "Completed", "Group", "Expanded"}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.ID,
			row.Name,
			row.Start,
			row.End,
			strconv.Itoa(row.Completed),
			strconv.FormatBool(row.IsGroupHead),
			strconv.FormatBool(row.Expanded),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
