package shelfadmin

import "net/http"

// UserError pairs an internal cause with a status and a message for the
// error page. Error and logs show the cause; the page shows Message.
type UserError struct {
	Status  int
	Message string
	Err     error
}

func NewUserError(status int, message string, err error) *UserError {
	return &UserError{Status: status, Message: message, Err: err}
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *UserError) Unwrap() error       { return e.Err }
func (e *UserError) StatusCode() int     { return e.Status }
func (e *UserError) UserMessage() string { return e.Message }

func BadRequest(message string, err error) *UserError {
	return NewUserError(http.StatusBadRequest, message, err)
}

func Forbidden(message string, err error) *UserError {
	return NewUserError(http.StatusForbidden, message, err)
}

// Internal reports a failure the user cannot fix, usually a backend call.
func Internal(message string, err error) *UserError {
	return NewUserError(http.StatusInternalServerError, message, err)
}
