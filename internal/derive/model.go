// Package derive computes secondary record fields from primary ones.
package derive

import "github.com/sells-group/certlookup/internal/model"

// ModelCode extracts the model code embedded in a free-text part name: the
// first maximal run of ASCII letters and digits. Names without such a run
// yield model.NotAvailable.
//
//	ModelCode("宁波中策6NL30曲轴") == "6NL30"
func ModelCode(name string) string {
	start := -1
	for i := 0; i < len(name); i++ {
		if isASCIIAlnum(name[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return name[start:i]
		}
	}
	if start >= 0 {
		return name[start:]
	}
	return model.NotAvailable
}

// Multi-byte UTF-8 sequences never contain bytes below 0x80, so a byte scan
// cannot split a rune.
func isASCIIAlnum(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
