package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/certlookup/internal/normalize"
)

var testHeader = []string{"轴号", "名称", "材质", "炉号", "图号", "船检控制号", "船检时间"}

func createTestXLSX(t *testing.T, dir, name string, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for sheetName, rows := range sheets {
		sheet, err := f.AddSheet(sheetName)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.Save(path))
	return path
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestLoader(t *testing.T, candidates ...string) *Loader {
	t.Helper()
	n, err := normalize.New(nil)
	require.NoError(t, err)
	return NewLoader(candidates, DefaultRegistry(Options{Sheets: []string{"CCS"}}), n)
}
