package output

import (
	"fmt"
	"strings"

	"gitjrnl/journal"
)

type Writer interface {
	Write(path string, days []journal.DayGroup, total journal.Totals) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	case "sqlite", "db":
		return &SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
