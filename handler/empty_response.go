package handler

import "net/http"

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty answers 204 No Content.
func Empty() Response { return emptyResponse{status: http.StatusNoContent} }

func EmptyWithStatus(status int) Response { return emptyResponse{status: status} }

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error hands err to the ErrorHandler without writing anything itself.
func Error(err error) Response { return errorResponse{err: err} }

// Unhandled is the response for a request the handler has no branch for,
// such as an unknown form intent.
func Unhandled() Response { return errorResponse{err: ErrUnhandledAction} }
