package excel

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"calibra/domain/calibration"
)

// WorkbookReader loads every sheet of an input workbook as a raw cell
// grid, in workbook order. It implements ports.SheetSource.
type WorkbookReader struct {
	filePath string
}

// NewWorkbookReader creates a reader for the given workbook path.
func NewWorkbookReader(filePath string) *WorkbookReader {
	return &WorkbookReader{filePath: filePath}
}

// Sheets reads the whole workbook. Raw cell values are requested so
// that number formats cannot rewrite what the instrument exported;
// numeric coercion happens later, in the analysis core.
func (r *WorkbookReader) Sheets(ctx context.Context) ([]calibration.RawSheet, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, fmt.Errorf("input workbook: %w", err)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", r.filePath, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]calibration.RawSheet, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		logrus.Debugf("workbook %s: sheet %q has %d rows", r.filePath, name, len(rows))
		sheets = append(sheets, calibration.RawSheet{Name: name, Cells: rows})
	}
	return sheets, nil
}
