package present

import (
	"strings"

	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/render"
)

// Literals are the fixed values printed on every certificate.
type Literals struct {
	Manufacturer     string `json:"manufacturer" mapstructure:"manufacturer"`
	InspectionMethod string `json:"inspection_method" mapstructure:"inspection_method"`
	CertifyingBody   string `json:"certifying_body" mapstructure:"certifying_body"`
}

// DefaultLiterals are the values used by the crankshaft workbooks.
var DefaultLiterals = Literals{
	Manufacturer:     "CRRC ZJ",
	InspectionMethod: "UT  MT",
	CertifyingBody:   "CCS",
}

// Row is one label/value pair of the view.
type Row struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Adapter formats records for one locale.
type Adapter struct {
	locale   Locale
	literals Literals
	title    string
}

// NewAdapter creates an Adapter. Empty literal fields take their defaults;
// an empty title uses DefaultTitle.
func NewAdapter(locale Locale, literals Literals, title string) *Adapter {
	if literals.Manufacturer == "" {
		literals.Manufacturer = DefaultLiterals.Manufacturer
	}
	if literals.InspectionMethod == "" {
		literals.InspectionMethod = DefaultLiterals.InspectionMethod
	}
	if literals.CertifyingBody == "" {
		literals.CertifyingBody = DefaultLiterals.CertifyingBody
	}
	if title == "" {
		title = DefaultTitle
	}
	return &Adapter{locale: locale, literals: literals, title: title}
}

// Locale returns the adapter's locale.
func (a *Adapter) Locale() Locale { return a.locale }

// ViewRows returns the certificate fields of r in certificate order.
func (a *Adapter) ViewRows(r model.Record) []Row {
	return a.rows(certificateColumns, r)
}

// DetailRows returns the supplementary fields of r.
func (a *Adapter) DetailRows(r model.Record) []Row {
	return a.rows(detailColumns, r)
}

// RenderInput returns the layout input for r. Its rows are exactly
// ViewRows(r), with the certifying-body row flagged for the logo.
func (a *Adapter) RenderInput(r model.Record) render.Certificate {
	rows := make([]render.Row, len(certificateColumns))
	for i, col := range certificateColumns {
		rows[i] = render.Row{
			Label:  col.labels[a.locale],
			Value:  a.value(col, r),
			Marker: col.kind == kindMarker,
		}
	}
	return render.Certificate{Title: a.title, Rows: rows}
}

// FormatDate formats d as DD-MM-YYYY when it parsed, as its raw text when it
// did not, and as the locale placeholder when the cell was empty.
func (a *Adapter) FormatDate(d model.DateValue) string {
	return FormatDate(d, placeholders[a.locale])
}

// FormatDate is the locale-independent form of Adapter.FormatDate.
func FormatDate(d model.DateValue, missing string) string {
	switch {
	case d.Valid:
		return d.Time.Format("02-01-2006")
	case strings.TrimSpace(d.Raw) != "":
		return d.Raw
	default:
		return missing
	}
}

func (a *Adapter) rows(cols []column, r model.Record) []Row {
	out := make([]Row, len(cols))
	for i, col := range cols {
		out[i] = Row{Label: col.labels[a.locale], Value: a.value(col, r)}
	}
	return out
}

func (a *Adapter) value(col column, r model.Record) string {
	missing := placeholders[a.locale]
	if m, ok := col.missing[a.locale]; ok {
		missing = m
	}

	var v string
	switch col.kind {
	case kindManufacturer:
		v = a.literals.Manufacturer
	case kindMethod:
		v = a.literals.InspectionMethod
	case kindMarker:
		v = a.literals.CertifyingBody
	case kindDate:
		return FormatDate(r.Date(col.field), missing)
	default:
		v = r.Get(col.field)
	}
	if strings.TrimSpace(v) == "" || v == model.NotAvailable {
		return missing
	}
	return v
}
