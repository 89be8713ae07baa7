package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// timeLayout stores timestamps with a fixed-width fraction so that they sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseTime(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if
// values are > 0. SQLite only accepts OFFSET after LIMIT, so an offset
// without a limit uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
