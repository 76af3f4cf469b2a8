package binder

import "errors"

var (
	ErrBinderNotApplicable  = errors.New("binder.not_applicable")
	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrInvalidForm          = errors.New("binder.invalid_form")
	ErrInvalidQuery         = errors.New("binder.invalid_query")
	ErrInvalidPath          = errors.New("binder.invalid_path")
	ErrInvalidSignals       = errors.New("binder.invalid_signals")
	ErrInvalidTarget        = errors.New("binder.invalid_target")
)
