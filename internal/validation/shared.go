package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error carries per-field validation failures. Handlers render it as the
// details string of a 400 response.
type Error struct {
	Fields map[string]string
}

// Error joins the field messages in field-name order so the same bad request
// always produces the same message.
func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}
