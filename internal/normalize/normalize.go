package normalize

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/derive"
	"github.com/sells-group/certlookup/internal/model"
)

// Normalizer maps raw tables onto the canonical record schema.
type Normalizer struct {
	aliases map[string]model.Field
}

// New creates a Normalizer using the built-in column aliases plus extra,
// which maps additional source column names to field keys (e.g.
// "Shaft S/N" -> "identifier"). Extra entries override built-in ones.
func New(extra map[string]string) (*Normalizer, error) {
	n := &Normalizer{aliases: make(map[string]model.Field)}
	for field, names := range defaultAliases {
		for _, name := range names {
			n.aliases[aliasKey(name)] = field
		}
	}
	known := make(map[model.Field]bool, len(model.SourceFields))
	for _, f := range model.SourceFields {
		known[f] = true
	}
	for name, key := range extra {
		f := model.Field(strings.TrimSpace(strings.ToLower(key)))
		if !known[f] {
			return nil, eris.Errorf("normalize: column %q maps to unknown field %q", name, key)
		}
		n.aliases[aliasKey(name)] = f
	}
	return n, nil
}

// FieldFor returns the record field a source column maps to.
func (n *Normalizer) FieldFor(header string) (model.Field, bool) {
	f, ok := n.aliases[aliasKey(header)]
	return f, ok
}

// Normalize builds a RecordSet from t. Rows keep their source order; fully
// blank rows are skipped. Date cells that do not parse are kept as raw
// text. A table without an identifier column is rejected.
func (n *Normalizer) Normalize(t model.Table, version string) (*model.RecordSet, error) {
	columns := make(map[model.Field]int)
	for i, h := range t.Header {
		f, ok := n.FieldFor(h)
		if !ok {
			continue
		}
		if _, dup := columns[f]; dup {
			continue
		}
		columns[f] = i
	}
	if _, ok := columns[model.FieldIdentifier]; !ok {
		return nil, eris.Errorf("normalize: table %q has no identifier column (header %q)", t.Name, t.Header)
	}

	records := make([]model.Record, 0, len(t.Rows))
	degraded := 0
	for _, row := range t.Rows {
		if isBlank(row) {
			continue
		}
		var rec model.Record
		for f, idx := range columns {
			v := cell(row, idx)
			if f.IsDate() {
				d := ParseDate(v)
				if !d.Valid && d.Raw != "" {
					degraded++
				}
				rec.SetDate(f, d)
				continue
			}
			rec.Set(f, v)
		}
		rec.ModelCode = derive.ModelCode(rec.Name)
		records = append(records, rec)
	}

	zap.L().Debug("normalized table",
		zap.String("table", t.Name),
		zap.Int("rows", len(t.Rows)),
		zap.Int("records", len(records)),
		zap.Int("unparsed_dates", degraded),
	)

	return model.NewRecordSet(records, t.Name, version), nil
}

// SourceHeader returns the column name used when writing f back to a table.
func SourceHeader(f model.Field) string {
	if f == model.FieldModelCode {
		return "型号"
	}
	if names := defaultAliases[f]; len(names) > 0 {
		return names[0]
	}
	return string(f)
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
