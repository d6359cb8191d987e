package helpers

import "strings"

// ParseSortBy splits "field:asc|desc" and resolves field against the allowed map
// of API field name to column. Unknown fields fall back to fallback, unknown orders to DESC.
func ParseSortBy(sortBy string, allowed map[string]string, fallback string) (column, order string) {
	column, order = fallback, "DESC"

	field, dir, _ := strings.Cut(strings.TrimSpace(sortBy), ":")
	if col, ok := allowed[field]; ok {
		column = col
	}
	if strings.EqualFold(dir, "asc") {
		order = "ASC"
	}
	return column, order
}
