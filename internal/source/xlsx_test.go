package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXLSXReader_PrefersNamedSheet(t *testing.T) {
	path := createTestXLSX(t, t.TempDir(), "qzmx.xlsx", map[string][][]string{
		"Other": {{"轴号"}, {"wrong"}},
		"CCS":   {{"轴号", "名称"}, {"2005L6-366", "曲轴"}},
	})

	tbl, err := XLSXReader{Sheets: []string{"CCS"}}.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"轴号", "名称"}, tbl.Header)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"2005L6-366", "曲轴"}, tbl.Rows[0])
	assert.Equal(t, path, tbl.Name)
}

func TestXLSXReader_FallsBackToFirstSheet(t *testing.T) {
	path := createTestXLSX(t, t.TempDir(), "data.xlsx", map[string][][]string{
		"Sheet1": {{"轴号"}, {"A1"}, {"A2"}},
	})

	tbl, err := XLSXReader{Sheets: []string{"CCS"}}.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"轴号"}, tbl.Header)
	assert.Len(t, tbl.Rows, 2)
}

func TestXLSXReader_MissingFile(t *testing.T) {
	_, err := XLSXReader{}.Read(context.Background(), "/nonexistent/qzmx.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: open file")
}

func TestXLSXReader_EmptySheet(t *testing.T) {
	path := createTestXLSX(t, t.TempDir(), "empty.xlsx", map[string][][]string{"Sheet1": {}})

	_, err := XLSXReader{}.Read(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
