package source

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sells-group/certlookup/internal/model"
)

// Reader loads a raw table from a file.
type Reader interface {
	Read(ctx context.Context, path string) (model.Table, error)
}

// Registry selects a Reader by file extension.
type Registry struct {
	byExt map[string]Reader
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{byExt: map[string]Reader{}} }

// Register associates r with each extension (with or without the dot).
func (r *Registry) Register(rd Reader, exts ...string) {
	for _, ext := range exts {
		r.byExt[normalizeExt(ext)] = rd
	}
}

// For returns the reader registered for path's extension.
func (r *Registry) For(path string) (Reader, bool) {
	rd, ok := r.byExt[normalizeExt(filepath.Ext(path))]
	return rd, ok
}

// Extensions lists the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func normalizeExt(ext string) string {
	return "." + strings.TrimPrefix(strings.ToLower(ext), ".")
}

// Options configures the built-in readers.
type Options struct {
	Sheets      []string // preferred workbook sheets
	Encodings   []string // csv encodings, tried in order
	Delimiter   rune     // csv delimiter
	SQLiteTable string   // table read from .db files
}

// DefaultRegistry registers the xlsx, csv and sqlite readers.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(XLSXReader{Sheets: opts.Sheets}, ".xlsx")
	r.Register(CSVReader{Encodings: opts.Encodings, Delimiter: opts.Delimiter}, ".csv", ".txt")
	r.Register(CSVReader{Encodings: opts.Encodings, Delimiter: '\t'}, ".tsv")
	r.Register(SQLiteReader{Table: opts.SQLiteTable}, ".db", ".sqlite", ".sqlite3")
	return r
}
