package library

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// FilterBooks keeps the books matching f, preserving order.
func FilterBooks(books []Book, f BookFilter) []Book {
	title := strings.TrimSpace(f.Title)
	year := strings.TrimSpace(f.Year)
	if title == "" && year == "" {
		return books
	}

	fold := cases.Fold()
	needle := fold.String(title)

	out := make([]Book, 0, len(books))
	for _, b := range books {
		if title != "" && !strings.Contains(fold.String(b.Title), needle) {
			continue
		}
		if year != "" && (b.ReleaseDate.IsZero() || strconv.Itoa(b.ReleaseDate.UTC().Year()) != year) {
			continue
		}
		out = append(out, b)
	}
	return out
}
