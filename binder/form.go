package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
)

const maxMultipartMemory = 8 << 20

// Form binds urlencoded or multipart bodies into `form` tagged fields.
// GET and HEAD requests, bodiless requests and JSON bodies are not applicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Body == nil || r.Body == http.NoBody {
			return ErrBinderNotApplicable
		}

		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return ErrBinderNotApplicable
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
		case "application/json":
			return ErrBinderNotApplicable
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}

		if err := bindValues(v, "form", r.PostForm); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		return nil
	}
}
