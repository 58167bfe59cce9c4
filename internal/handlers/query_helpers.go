package handlers

import (
	"fmt"
	"strings"
	"time"
)

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDateTime accepts the date formats the clients send: full RFC3339
// timestamps or plain calendar dates.
func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// sortClause builds an ORDER BY from whitelisted sort keys. Unknown keys fall
// back to the default column; order is desc unless explicitly asc.
func sortClause(sortBy, order string, allowed map[string]string, def string) string {
	col, ok := allowed[sortBy]
	if !ok {
		col = def
	}

	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}

	return col + " " + dir
}
