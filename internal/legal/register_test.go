package legal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows []Row) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"地区", "链接", "法律名称"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &[]string{row.Region, row.URL, row.Name}))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestRegisterLoadsWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laws.xlsx")
	writeWorkbook(t, path, []Row{
		{Region: "全国", URL: "https://laws.example/contract", Name: "合同法"},
		{Region: "上海", URL: "https://laws.example/sh-lease", Name: "上海租赁条例"},
	})

	register := NewRegister(path, zerolog.Nop())
	rows := register.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "合同法", rows[0].Name)
	assert.Equal(t, "上海", rows[1].Region)
}

func TestRegisterMissingWorkbookIsEmpty(t *testing.T) {
	register := NewRegister(filepath.Join(t.TempDir(), "nope.xlsx"), zerolog.Nop())
	assert.Empty(t, register.Rows())
}

func TestRegisterUnreadableWorkbookIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laws.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	register := NewRegister(path, zerolog.Nop())
	assert.Empty(t, register.Rows())
}

func TestRegisterReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laws.xlsx")
	writeWorkbook(t, path, []Row{{Region: "全国", URL: "u", Name: "合同法"}})

	register := NewRegister(path, zerolog.Nop())
	require.Len(t, register.Rows(), 1)

	writeWorkbook(t, path, []Row{
		{Region: "全国", URL: "u", Name: "合同法"},
		{Region: "北京", URL: "v", Name: "北京租赁条例"},
	})
	// Make sure the rewrite lands on a newer mtime even on coarse clocks.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	assert.Len(t, register.Rows(), 2)
}
