package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gitjrnl/internal/timeutil"
	"gitjrnl/journal"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, days []journal.DayGroup, total journal.Totals) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Day", "SHA", "Name", "Description", "DurationMinutes", "Status", "Author", "URL", "DayTotal"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, day := range days {
		dayTotal := timeutil.FormatMinutes(day.Total.Minutes)
		for _, entry := range day.Entries {
			row := []string{
				day.Label,
				entry.SHA,
				entry.Name,
				entry.Description,
				strconv.Itoa(entry.Duration),
				entry.Status,
				entry.Author,
				entry.URL,
				dayTotal,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	totalRow := []string{"Total", "", "", "", strconv.Itoa(total.Minutes), "", "", "", timeutil.FormatMinutes(total.Minutes)}
	if err := writer.Write(totalRow); err != nil {
		return fmt.Errorf("write csv total row: %w", err)
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
