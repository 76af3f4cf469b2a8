// Package validator builds form validation out of small rules.
//
// A Rule pairs a check with the error reported when the check fails. Apply
// runs every rule and collects the failures into ValidationErrors, which
// callers use to attach messages to individual form fields:
//
//	err := validator.Apply(
//		validator.RequiredString("title", in.Title),
//		validator.MinNum("author", in.AuthorID, 1).WithMessage("Select an author"),
//		validator.ValidDate("release_date", in.ReleaseDate, time.DateOnly),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// errs.First("title") == "field is required"
//	}
//
// Rules never short-circuit, so a form gets all of its errors at once.
package validator
