package validator

import (
	"slices"
	"strings"
)

// OneOf fails unless value is one of options.
func OneOf[T comparable](field string, value T, options []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(options, value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must be one of the allowed values",
			TranslationKey:    "validation.one_of",
			TranslationValues: map[string]any{"field": field, "options": options},
		},
	}
}

func OneOfString(field, value string, options []string) Rule {
	r := OneOf(field, value, options)
	r.Error.Message = "must be one of: " + strings.Join(options, ", ")
	return r
}
