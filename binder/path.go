package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path binds router path params into `path` tagged fields using extractor,
// usually chi.URLParam.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil extractor", ErrInvalidPath)
		}
		err := structFields(v, "path", func(name string, field reflect.Value, typ reflect.Type) error {
			value := extractor(r, name)
			if value == "" {
				return nil
			}
			return setValue(field, typ, []string{value})
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}
		return nil
	}
}
