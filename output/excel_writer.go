package output

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"gitjrnl/internal/timeutil"
	"gitjrnl/journal"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, days []journal.DayGroup, total journal.Totals) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headers := []string{"Day", "SHA", "Name", "Description", "DurationMinutes", "Status", "Author", "URL", "DayTotal"}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	row := 2
	for _, day := range days {
		dayTotal := timeutil.FormatMinutes(day.Total.Minutes)
		for _, entry := range day.Entries {
			values := []string{
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

			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := file.SetCellValue(sheet, cell, value); err != nil {
					return fmt.Errorf("set excel value %s: %w", cell, err)
				}
			}
			row++
		}
	}

	totalValues := []string{"Total", "", "", "", strconv.Itoa(total.Minutes), "", "", "", timeutil.FormatMinutes(total.Minutes)}
	for col, value := range totalValues {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set excel total %s: %w", cell, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
