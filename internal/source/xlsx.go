package source

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/certlookup/internal/model"
)

// XLSXReader reads the first row of a worksheet as the header and the
// remaining rows as data.
type XLSXReader struct {
	// Sheets lists preferred sheet names in order. When none is present the
	// first sheet is used.
	Sheets []string
}

// Read opens the workbook at path and returns the selected sheet as a table.
func (x XLSXReader) Read(_ context.Context, path string) (model.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := x.pickSheet(f)
	if err != nil {
		return model.Table{}, err
	}

	t := model.Table{Name: path}
	for i, row := range sheet.Rows {
		if row == nil {
			continue
		}
		cells := rowToStrings(row)
		if i == 0 {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	if len(t.Header) == 0 {
		return model.Table{}, eris.Errorf("xlsx: sheet %q is empty", sheet.Name)
	}
	return t, nil
}

func (x XLSXReader) pickSheet(f *xlsx.File) (*xlsx.Sheet, error) {
	for _, name := range x.Sheets {
		if sheet, ok := f.Sheet[name]; ok {
			return sheet, nil
		}
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
