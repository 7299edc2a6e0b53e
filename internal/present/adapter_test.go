package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/certlookup/internal/model"
)

func fullRecord() model.Record {
	return model.Record{
		Identifier:        "2005L6-366",
		Name:              "宁波中策6NL30曲轴",
		ModelCode:         "6NL30",
		Material:          "42CrMo",
		HeatNumber:        "H123",
		CertificateNumber: "CERT-7",
		DrawingNumber:     "DWG-1",
		Inspector:         "王工",
		ControlNumber:     "C-9",
		InspectionDate:    model.DateValue{Raw: "2023-05-12", Time: time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC), Valid: true},
		PickupDate:        model.DateValue{Raw: "下周"},
	}
}

func TestViewRows_Order(t *testing.T) {
	rows := NewAdapter(LocaleZH, Literals{}, "").ViewRows(fullRecord())
	want := []Row{
		{"名  称", "宁波中策6NL30曲轴"},
		{"型  号", "6NL30"},
		{"图  号", "DWG-1"},
		{"轴  号", "2005L6-366"},
		{"材  质", "42CrMo"},
		{"炉  号", "H123"},
		{"制造单位", "CRRC ZJ"},
		{"检测方式", "UT  MT"},
		{"船检控制号", "C-9"},
		{"检验机构", "CCS"},
		{"船检时间", "12-05-2023"},
	}
	assert.Equal(t, want, rows)
}

func TestRenderInput_MatchesViewRows(t *testing.T) {
	for _, locale := range []Locale{LocaleZH, LocaleEN} {
		for _, rec := range []model.Record{fullRecord(), {Identifier: "X"}, {}} {
			a := NewAdapter(locale, Literals{}, "")
			view := a.ViewRows(rec)
			in := a.RenderInput(rec)

			require.Len(t, in.Rows, len(view))
			assert.Equal(t, DefaultTitle, in.Title)
			markers := 0
			for i, row := range in.Rows {
				assert.Equal(t, view[i].Label, row.Label)
				assert.Equal(t, view[i].Value, row.Value)
				if row.Marker {
					markers++
					assert.Equal(t, "CCS", row.Value)
				}
			}
			assert.Equal(t, 1, markers)
		}
	}
}

func TestViewRows_MissingValuesUsePlaceholder(t *testing.T) {
	rec := model.Record{Identifier: "A1", ModelCode: model.NotAvailable, Material: "  "}

	for locale, want := range map[Locale]string{LocaleZH: "无", LocaleEN: "not available"} {
		rows := NewAdapter(locale, Literals{}, "").ViewRows(rec)
		for _, row := range rows {
			assert.NotEmpty(t, row.Value)
		}
		assert.Equal(t, want, rows[0].Value, "name")
		assert.Equal(t, want, rows[1].Value, "model code")
		assert.Equal(t, "A1", rows[3].Value)
		assert.Equal(t, want, rows[4].Value, "blank material")
		assert.Equal(t, want, rows[10].Value, "date")
	}
}

func TestViewRows_EnglishLabels(t *testing.T) {
	rows := NewAdapter(LocaleEN, Literals{}, "").ViewRows(fullRecord())
	assert.Equal(t, "Name", rows[0].Label)
	assert.Equal(t, "Shaft No.", rows[3].Label)
	assert.Equal(t, "Inspection Date", rows[10].Label)
}

func TestAdapter_CustomLiteralsAndTitle(t *testing.T) {
	a := NewAdapter(LocaleZH, Literals{Manufacturer: "ACME"}, "CUSTOM")
	in := a.RenderInput(fullRecord())
	assert.Equal(t, "CUSTOM", in.Title)
	assert.Equal(t, "ACME", in.Rows[6].Value)
	assert.Equal(t, "UT  MT", in.Rows[7].Value)
}

func TestDetailRows(t *testing.T) {
	rows := NewAdapter(LocaleZH, Literals{}, "").DetailRows(fullRecord())
	assert.Equal(t, []Row{
		{"证件编号", "CERT-7"},
		{"验船师", "王工"},
		{"证书取件时间", "下周"},
		{"证书返还时间", "无"},
	}, rows)

	rows = NewAdapter(LocaleEN, Literals{}, "").DetailRows(model.Record{})
	assert.Equal(t, "not collected", rows[2].Value)
}

func TestFormatDate(t *testing.T) {
	valid := model.DateValue{Raw: "2023/5/12", Time: time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC), Valid: true}
	assert.Equal(t, "12-05-2023", FormatDate(valid, "-"))
	assert.Equal(t, "待定", FormatDate(model.DateValue{Raw: "待定"}, "-"))
	assert.Equal(t, "-", FormatDate(model.DateValue{}, "-"))
	assert.Equal(t, "not available", NewAdapter(LocaleEN, Literals{}, "").FormatDate(model.DateValue{}))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, LocaleZH, ParseLocale("zh"))
	assert.Equal(t, LocaleZH, ParseLocale(""))
	assert.Equal(t, LocaleZH, ParseLocale("fr"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "2005L6-366.png", FileName(model.Record{Identifier: "2005L6-366"}))
	assert.Equal(t, "A_B_C.png", FileName(model.Record{Identifier: "A/B C"}))
	assert.Equal(t, "_etc_passwd.png", FileName(model.Record{Identifier: "../etc/passwd"}))
	assert.Equal(t, "certificate.png", FileName(model.Record{Identifier: "  "}))
}
