package session

import "errors"

var (
	ErrIncompleteSession = errors.New("session.incomplete")
	ErrEncodeFailed      = errors.New("session.encode_failed")
)
