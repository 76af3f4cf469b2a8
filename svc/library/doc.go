// Package library is the client for the catalog REST API.
//
// Each method maps to one backend operation and issues exactly one HTTP
// request, except the two list methods, which fetch a page and then each
// item's detail concurrently. Calls carry the caller's bearer token; the
// client keeps no state between calls and never retries.
//
// Failures surface as *RemoteError, which matches ErrRemoteRequestFailed:
//
//	book, err := api.GetBook(ctx, token, 42)
//	var rerr *library.RemoteError
//	if errors.As(err, &rerr) && rerr.Status == http.StatusNotFound {
//		// ...
//	}
package library
