package library

import (
	"errors"
	"fmt"
)

var (
	ErrRemoteRequestFailed  = errors.New("library.remote_request_failed")
	ErrAuthenticationFailed = errors.New("library.authentication_failed")
	ErrAuthorHasBooks       = errors.New("library.author_has_books")
	ErrInvalidBaseURL       = errors.New("library.invalid_base_url")
	ErrInvalidDate          = errors.New("library.invalid_date")
)

// RemoteError is a failed backend call. Status is 0 when no response arrived.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("library: %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("library: %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("library: %s: status %d", e.Op, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool { return target == ErrRemoteRequestFailed }
