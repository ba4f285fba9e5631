package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeJunk(path string) error {
	return os.WriteFile(path, []byte("not a workbook"), 0o644)
}

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	path := filepath.Join(t.TempDir(), "plate.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookReader_ReadsSheetsInWorkbookOrder(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "B1", "0 uM"))
		require.NoError(t, f.SetCellValue("Sheet1", "A4", "0"))
		_, err := f.NewSheet("run 2")
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("run 2", "B1", "5 uM"))
	})

	sheets, err := NewWorkbookReader(path).Sheets(context.Background())
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	require.Equal(t, "Sheet1", sheets[0].Name)
	require.Equal(t, "run 2", sheets[1].Name)
	require.Equal(t, "0 uM", sheets[0].Cell(0, 1))
	require.Equal(t, "0", sheets[0].Cell(3, 0))
	require.Equal(t, "5 uM", sheets[1].Cell(0, 1))
	require.Equal(t, "", sheets[0].Cell(99, 99))
}

func TestWorkbookReader_MissingFile(t *testing.T) {
	_, err := NewWorkbookReader(filepath.Join(t.TempDir(), "absent.xlsx")).Sheets(context.Background())
	require.Error(t, err)
}

func TestWorkbookReader_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xlsx")
	require.NoError(t, writeJunk(path))
	_, err := NewWorkbookReader(path).Sheets(context.Background())
	require.Error(t, err)
}

func TestWorkbookReader_CancelledContext(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWorkbookReader(path).Sheets(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
