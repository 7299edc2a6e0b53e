// Package normalize turns raw source tables into canonical record sets.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/certlookup/internal/model"
)

const utf8BOM = "\uFEFF"

// NormalizeHeader canonicalizes a column name: BOM stripped, NFKC folded
// (full-width forms and the ideographic space become ASCII), every whitespace
// or format rune removed, lowercased.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, utf8BOM)
	h = norm.NFKC.String(h)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return unicode.ToLower(r)
	}, h)
}

// aliasKey folds a normalized header further for alias lookup so that
// "Serial No." and "serial_no" land on the same key.
func aliasKey(h string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-', '/', ':', '(', ')', '#':
			return -1
		}
		return r
	}, NormalizeHeader(h))
}

// defaultAliases lists, per record field, the folded column names that map
// onto it. The Chinese names are the ones used by the inspection workbooks.
var defaultAliases = map[model.Field][]string{
	model.FieldIdentifier:            {"轴号", "轴编号", "序列号", "identifier", "serialnumber", "serialno", "shaftno", "shaftnumber"},
	model.FieldName:                  {"名称", "品名", "name"},
	model.FieldMaterial:              {"材质", "材料", "material"},
	model.FieldHeatNumber:            {"炉号", "heatnumber", "heatno"},
	model.FieldCertificateNumber:     {"证件编号", "证书编号", "certificatenumber", "certificateno", "certno"},
	model.FieldDrawingNumber:         {"图号", "drawingnumber", "drawingno"},
	model.FieldInspector:             {"验船师", "检验员", "inspector", "surveyor"},
	model.FieldControlNumber:         {"船检控制号", "控制号", "controlnumber", "controlno"},
	model.FieldInspectionDate:        {"船检时间", "检验日期", "inspectiondate"},
	model.FieldPickupDate:            {"证书取件时间", "取件时间", "pickupdate"},
	model.FieldCertificateReturnDate: {"证书返还时间", "证书返回时间", "returndate", "certificatereturndate"},
}
