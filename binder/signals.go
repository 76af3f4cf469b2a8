package binder

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

const signalsQueryParam = "datastar"

// Signals decodes the DataStar signal store into v using its json tags.
// Requests without the Datastar-Request header or a datastar query param are
// not applicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Header.Get("Datastar-Request") != "true" && !r.URL.Query().Has(signalsQueryParam) {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSignals, err)
		}
		return nil
	}
}
