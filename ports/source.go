package ports

import (
	"context"

	"calibra/domain/calibration"
)

// SheetSource supplies the raw cell grids of an input workbook, in
// workbook order. Implementations own the file format; the pipeline
// only ever sees RawSheet grids.
type SheetSource interface {
	Sheets(ctx context.Context) ([]calibration.RawSheet, error)
}
