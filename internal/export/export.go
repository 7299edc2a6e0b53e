// Package export writes record sets back out as spreadsheets for download.
package export

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/normalize"
)

// SheetName is the worksheet records are written to.
const SheetName = "CCS"

// columns is the export column order: the source fields with the derived
// model code after the name.
var columns = func() []model.Field {
	out := make([]model.Field, 0, len(model.SourceFields)+1)
	for _, f := range model.SourceFields {
		out = append(out, f)
		if f == model.FieldName {
			out = append(out, model.FieldModelCode)
		}
	}
	return out
}()

// Header returns the export header row.
func Header() []string {
	h := make([]string, len(columns))
	for i, f := range columns {
		h[i] = normalize.SourceHeader(f)
	}
	return h
}

// Row returns r's cells in Header order. Parsed dates are written as
// YYYY-MM-DD, unparsed ones as their raw text.
func Row(r model.Record) []string {
	out := make([]string, len(columns))
	for i, f := range columns {
		if f.IsDate() {
			d := r.Date(f)
			if d.Valid {
				out[i] = d.Time.Format("2006-01-02")
			} else {
				out[i] = d.Raw
			}
			continue
		}
		out[i] = r.Get(f)
	}
	return out
}

// WriteXLSX writes set as a single-sheet workbook, in set order.
func WriteXLSX(w io.Writer, set *model.RecordSet) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}
	addRow(sheet, Header())
	for _, r := range set.Records() {
		addRow(sheet, Row(r))
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

// WriteCSV writes set as CSV in the given encoding. UTF-8 output starts with
// a BOM so spreadsheet tools detect it; other encodings go through x/text.
func WriteCSV(w io.Writer, set *model.RecordSet, encoding string) error {
	out := w
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		if _, err := io.WriteString(w, "\uFEFF"); err != nil {
			return eris.Wrap(err, "export: write bom")
		}
	default:
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return eris.Wrapf(err, "export: unsupported encoding %q", encoding)
		}
		out = transform.NewWriter(w, enc.NewEncoder())
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(Header()); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range set.Records() {
		if err := cw.Write(Row(r)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	if tw, ok := out.(*transform.Writer); ok {
		return eris.Wrap(tw.Close(), "export: flush encoder")
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}
