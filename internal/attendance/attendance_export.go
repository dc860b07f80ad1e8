package attendance

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Attendance"

var exportHeader = []any{"Date", "Status", "Visit", "Check-in", "Check-out"}

// renderWorkbook writes the report as a single-sheet xlsx file. Times are
// shown in loc.
func renderWorkbook(rep Report, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, "A1", &exportHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, d := range rep.Days {
		row := []any{d.Date, string(d.Status), d.VisitID, clockText(d.CheckIn, loc), clockText(d.CheckOut, loc)}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetName, "A", "E", 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clockText(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}

func ExportFilename(rep Report) string {
	return fmt.Sprintf("attendance_%s_%s_%s.xlsx", rep.EmployeeID, rep.Start, rep.End)
}
