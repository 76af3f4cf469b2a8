// Package binder fills request structs from path params, query strings,
// form bodies and DataStar signals.
//
// Each binder reads only its own struct tag (path, query, form) so several can
// run over the same struct in sequence. Signals decodes JSON and follows json
// tags. A binder that has nothing to read for a request returns
// ErrBinderNotApplicable, which handler.Wrap treats as a skip.
//
//	type BookRequest struct {
//		ID     int    `path:"bookId"`
//		Method string `form:"_method"`
//		Title  string `form:"title"`
//	}
//
// Untagged exported fields bind by their lower-cased name. Supported kinds are
// strings, signed and unsigned integers, floats, bools, pointers to those and
// slices of those. Empty values leave the field at its zero value.
package binder
