package source

import (
	"errors"
	"fmt"
	"strings"
)

// Attempt records why one candidate source could not be used.
type Attempt struct {
	Path string
	Err  error
}

// UnavailableError reports that no candidate source could be loaded. It is
// the only load outcome callers are expected to surface to the operator.
type UnavailableError struct {
	Attempts []Attempt
}

func (e *UnavailableError) Error() string {
	if len(e.Attempts) == 0 {
		return "source unavailable: no candidate sources configured"
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %v", a.Path, a.Err)
	}
	return "source unavailable: " + strings.Join(parts, "; ")
}

// IsUnavailable returns true if err (or any error in its chain) is an
// UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
