package source

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/certlookup/internal/model"
)

// SQLiteReader reads every row of one table from a SQLite database file.
type SQLiteReader struct {
	Table string // default "records"
}

// Read returns the table's columns as the header and its rows as strings.
// NULL becomes "".
func (s SQLiteReader) Read(ctx context.Context, path string) (model.Table, error) {
	table := s.Table
	if table == "" {
		table = "records"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "sqlite: open")
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+strings.ReplaceAll(table, `"`, `""`)+`"`)
	if err != nil {
		return model.Table{}, eris.Wrapf(err, "sqlite: query table %s", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return model.Table{}, eris.Wrap(err, "sqlite: columns")
	}

	t := model.Table{Name: path, Header: cols}
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return model.Table{}, eris.Wrap(err, "sqlite: scan row")
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return model.Table{}, eris.Wrap(err, "sqlite: iterate rows")
	}
	return t, nil
}
