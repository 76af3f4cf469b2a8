package validator

import (
	"strings"
	"time"
)

// ValidDate fails unless value parses with at least one of layouts.
// An empty value fails too; combine with When to make the field optional.
func ValidDate(field, value string, layouts ...string) Rule {
	return Rule{
		Check: func() bool {
			value := strings.TrimSpace(value)
			if value == "" {
				return false
			}
			for _, layout := range layouts {
				if _, err := time.Parse(layout, value); err == nil {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid date",
			TranslationKey:    "validation.date",
			TranslationValues: map[string]any{"field": field},
		},
	}
}
