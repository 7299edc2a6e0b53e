// Package present maps records onto the on-screen view and the certificate
// layout. Both outputs are built from the same ordered field table so they
// cannot drift apart.
package present

import "github.com/sells-group/certlookup/internal/model"

// Locale selects label and placeholder text.
type Locale string

// Supported locales.
const (
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"
)

// ParseLocale returns the locale named by s, defaulting to LocaleZH.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleEN {
		return LocaleEN
	}
	return LocaleZH
}

type columnKind int

const (
	kindText columnKind = iota
	kindDate
	kindManufacturer
	kindMethod
	kindMarker
)

type column struct {
	field  model.Field
	kind   columnKind
	labels map[Locale]string
	// missing overrides the locale placeholder for this column.
	missing map[Locale]string
}

// certificateColumns is the one ordered field table for both the view and
// the rendered certificate.
var certificateColumns = []column{
	{field: model.FieldName, labels: labels("名  称", "Name")},
	{field: model.FieldModelCode, labels: labels("型  号", "Model")},
	{field: model.FieldDrawingNumber, labels: labels("图  号", "Drawing No.")},
	{field: model.FieldIdentifier, labels: labels("轴  号", "Shaft No.")},
	{field: model.FieldMaterial, labels: labels("材  质", "Material")},
	{field: model.FieldHeatNumber, labels: labels("炉  号", "Heat No.")},
	{kind: kindManufacturer, labels: labels("制造单位", "Manufacturer")},
	{kind: kindMethod, labels: labels("检测方式", "Test Method")},
	{field: model.FieldControlNumber, labels: labels("船检控制号", "Control No.")},
	{kind: kindMarker, labels: labels("检验机构", "Inspected By")},
	{field: model.FieldInspectionDate, kind: kindDate, labels: labels("船检时间", "Inspection Date")},
}

// detailColumns are the extra card fields shown alongside the view.
var detailColumns = []column{
	{field: model.FieldCertificateNumber, labels: labels("证件编号", "Certificate No.")},
	{field: model.FieldInspector, labels: labels("验船师", "Surveyor")},
	{
		field:   model.FieldPickupDate,
		kind:    kindDate,
		labels:  labels("证书取件时间", "Certificate Pickup"),
		missing: labels("未取件", "not collected"),
	},
	{field: model.FieldCertificateReturnDate, kind: kindDate, labels: labels("证书返还时间", "Certificate Returned")},
}

var placeholders = map[Locale]string{
	LocaleZH: "无",
	LocaleEN: model.NotAvailable,
}

// DefaultTitle is the certificate caption.
const DefaultTitle = "ND CRANKSHAFT DATA REPORT"

func labels(zh, en string) map[Locale]string {
	return map[Locale]string{LocaleZH: zh, LocaleEN: en}
}
