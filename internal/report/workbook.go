package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/aggregate"
)

// WriteWorkbook exports the aggregate tables as an xlsx workbook: one sheet
// per view, with fitted counts alongside the monthly table when a model was
// fit.
func WriteWorkbook(d *Data, daily []aggregate.DailyCount, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const dailySheet = "Daily"
	f.SetSheetName("Sheet1", dailySheet)
	writeHeader(f, dailySheet, []string{"Date", "Incidents"})
	for i, dc := range daily {
		row := i + 2
		f.SetCellValue(dailySheet, cell(1, row), dc.Date.Format("2006-01-02"))
		f.SetCellValue(dailySheet, cell(2, row), dc.Count)
	}

	const boroughSheet = "Borough Totals"
	f.NewSheet(boroughSheet)
	writeHeader(f, boroughSheet, []string{"Borough", "Incidents"})
	for i, t := range d.Totals {
		row := i + 2
		f.SetCellValue(boroughSheet, cell(1, row), string(t.Borough))
		f.SetCellValue(boroughSheet, cell(2, row), t.Count)
	}

	const monthlySheet = "Monthly by Borough"
	f.NewSheet(monthlySheet)
	if d.Model != nil {
		writeHeader(f, monthlySheet, []string{"Month", "Borough", "Incidents", "Fitted"})
		for i, pr := range d.Predicted {
			row := i + 2
			f.SetCellValue(monthlySheet, cell(1, row), pr.Month.Format("2006-01"))
			f.SetCellValue(monthlySheet, cell(2, row), string(pr.Borough))
			f.SetCellValue(monthlySheet, cell(3, row), pr.Count)
			f.SetCellValue(monthlySheet, cell(4, row), pr.Fitted)
		}
	} else {
		writeHeader(f, monthlySheet, []string{"Month", "Borough", "Incidents"})
		for i, mc := range d.Monthly {
			row := i + 2
			f.SetCellValue(monthlySheet, cell(1, row), mc.Month.Format("2006-01"))
			f.SetCellValue(monthlySheet, cell(2, row), string(mc.Borough))
			f.SetCellValue(monthlySheet, cell(3, row), mc.Count)
		}
	}

	const seasonSheet = "Seasonality"
	f.NewSheet(seasonSheet)
	writeHeader(f, seasonSheet, []string{"Calendar Month", "Incidents per Year"})
	for i, a := range d.Seasonality {
		row := i + 2
		f.SetCellValue(seasonSheet, cell(1, row), a.Month.String())
		f.SetCellValue(seasonSheet, cell(2, row), a.PerYear)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cell(i+1, 1), h)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
