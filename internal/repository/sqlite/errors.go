package sqlite

import "strings"

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure on the named column. The driver surfaces constraint errors as
// "constraint failed: UNIQUE constraint failed: table.column".
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

// escapeLikePattern escapes LIKE wildcard characters (% and _) so they are
// treated as literal characters in LIKE patterns.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
