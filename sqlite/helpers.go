package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// formatTimestamp renders t as the UTC RFC3339 text stored in the journal.
// Stored timestamps compare correctly as strings.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp reads a stored timestamp, naming the column on failure.
func parseTimestamp(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", column, value, err)
	}
	return t.UTC(), nil
}

// conditions collects the optional equality filters of a query.
type conditions struct {
	clauses []string
	args    []any
}

// eq adds "column = value" when value is set.
func (c *conditions) eq(column string, value *string) {
	if value == nil {
		return
	}
	c.clauses = append(c.clauses, column+" = ?")
	c.args = append(c.args, *value)
}

// where returns the WHERE clause, or "" when no filter is set.
func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// paginate appends LIMIT and OFFSET clauses. SQLite only accepts OFFSET
// after a LIMIT, so an offset alone uses LIMIT -1 (no limit).
func (c *conditions) paginate(query *strings.Builder, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		c.args = append(c.args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		c.args = append(c.args, offset)
	}
}
