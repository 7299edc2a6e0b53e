package present

import (
	"strings"
	"unicode"

	"github.com/sells-group/certlookup/internal/model"
)

// FileName returns the certificate download name for r, derived from its
// identifier. Characters that are unsafe in file names become '_'.
func FileName(r model.Record) string {
	id := strings.Map(func(c rune) rune {
		switch {
		case c == '/' || c == '\\' || c == ':' || c == '*' || c == '?' || c == '"' ||
			c == '<' || c == '>' || c == '|':
			return '_'
		case unicode.IsSpace(c) || unicode.IsControl(c):
			return '_'
		}
		return c
	}, strings.TrimSpace(r.Identifier))
	id = strings.Trim(id, ".")
	if id == "" {
		id = "certificate"
	}
	return id + ".png"
}
