// Package sanitizer normalizes user input before it is validated.
//
// Functions are plain string transforms so they compose with Apply or Compose:
//
//	email := sanitizer.Apply(form.Email, sanitizer.Trim, sanitizer.ToLower)
//	title := sanitizer.Compose(sanitizer.SingleLine, sanitizer.RemoveControlChars)
package sanitizer
