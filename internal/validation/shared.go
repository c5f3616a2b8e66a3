package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Error collects per-field validation failures.
type Error struct {
	Fields map[string]string
}

// Error lists the failures ordered by field name.
func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	slices.Sort(msgs)
	return strings.Join(msgs, "; ")
}
