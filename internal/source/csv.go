package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/certlookup/internal/model"
)

// CSVReader reads delimited text files. Each encoding is tried in order
// until one decodes the file.
type CSVReader struct {
	Encodings []string // default utf-8, gbk
	Delimiter rune     // default ','
}

// Read parses the file at path. The first record is the header.
func (c CSVReader) Read(ctx context.Context, path string) (model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "csv: read file")
	}

	encodings := c.Encodings
	if len(encodings) == 0 {
		encodings = []string{"utf-8", "gbk"}
	}

	var lastErr error
	for _, enc := range encodings {
		if ctx.Err() != nil {
			return model.Table{}, eris.Wrap(ctx.Err(), "csv: context cancelled")
		}
		t, err := c.decode(data, enc)
		if err != nil {
			zap.L().Debug("csv encoding rejected",
				zap.String("path", path),
				zap.String("encoding", enc),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		t.Name = path
		return t, nil
	}
	return model.Table{}, eris.Wrapf(lastErr, "csv: no encoding in %v could decode %s", encodings, path)
}

func (c CSVReader) decode(data []byte, encoding string) (model.Table, error) {
	var r io.Reader
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		if !utf8.Valid(data) {
			return model.Table{}, eris.New("csv: input is not valid utf-8")
		}
		r = bytes.NewReader(data)
	default:
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return model.Table{}, eris.Wrapf(err, "csv: unsupported encoding %q", encoding)
		}
		r = enc.NewDecoder().Reader(bytes.NewReader(data))
	}

	reader := csv.NewReader(r)
	if c.Delimiter != 0 {
		reader.Comma = c.Delimiter
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return model.Table{}, eris.Wrapf(err, "csv: parse as %s", encoding)
	}
	if len(records) == 0 {
		return model.Table{}, eris.New("csv: file is empty")
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	return model.Table{Header: header, Rows: records[1:]}, nil
}
