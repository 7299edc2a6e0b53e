package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/certlookup/internal/model"
)

// dateLayouts are tried in order. Day-first numeric forms come before the
// month-first US forms so DD-MM-YYYY values round-trip.
var dateLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006.1.2",
	"2006年1月2日",
	"2006年1月2号",
	"2-1-2006",
	"2.1.2006",
	"20060102",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
}

// Excel serial day numbers accepted as dates: 1950-01-01 through 2099-12-31.
const (
	minExcelSerial = 18264
	maxExcelSerial = 73415
)

// ParseDate parses a date cell on a best-effort basis. Values that match no
// known layout are returned with Valid=false and the trimmed raw text, so the
// record still loads and the value still displays.
func ParseDate(raw string) model.DateValue {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.DateValue{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateValue{Raw: s, Time: t, Valid: true}
		}
	}
	if t, ok := parseExcelSerial(s); ok {
		return model.DateValue{Raw: s, Time: t, Valid: true}
	}
	return model.DateValue{Raw: s}
}

// parseExcelSerial handles workbook cells whose date format was lost, which
// surface as the raw day count ("45061" or "45061.5").
func parseExcelSerial(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < minExcelSerial || f > maxExcelSerial {
		return time.Time{}, false
	}
	t := xlsx.TimeFromExcelTime(f, false)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
