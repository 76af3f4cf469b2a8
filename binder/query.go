package binder

import (
	"fmt"
	"net/http"
)

// Query binds URL query parameters into `query` tagged fields.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := bindValues(v, "query", r.URL.Query()); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		return nil
	}
}
