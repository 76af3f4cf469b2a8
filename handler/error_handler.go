package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/shelfadmin/binder"
	"github.com/dmitrymomot/shelfadmin/pkg/environment"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/requestid"
	"github.com/dmitrymomot/shelfadmin/pkg/validator"
)

type ErrorPageParams struct {
	Message    string
	StatusCode int
	RequestID  string
	RetryURL   string
	// Detail is the raw error text, set only in development.
	Detail string
}

type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component
	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is how an error is presented to the client.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

// UserFacing is implemented by errors that carry their own status and a
// message safe to show the user.
type UserFacing interface {
	error
	StatusCode() int
	UserMessage() string
}

const genericMessage = "Something went wrong. Please try again."

// ClassifyError maps err to a status code and user message.
func ClassifyError(err error) ErrorInfo {
	info := ErrorInfo{StatusCode: http.StatusInternalServerError, Message: genericMessage}

	var (
		uf      UserFacing
		httpErr HTTPError
		ve      validator.ValidationErrors
	)
	switch {
	case errors.As(err, &uf):
		info.StatusCode, info.Message = uf.StatusCode(), uf.UserMessage()
	case errors.As(err, &ve):
		info.StatusCode, info.Message = http.StatusBadRequest, summarize(ve)
	case errors.As(err, &httpErr):
		info.StatusCode, info.Message = httpErr.Code, http.StatusText(httpErr.Code)
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode, info.Message = http.StatusUnsupportedMediaType, http.StatusText(http.StatusUnsupportedMediaType)
	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath), errors.Is(err, binder.ErrInvalidSignals):
		info.StatusCode, info.Message = http.StatusBadRequest, "The request could not be read."
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	} else {
		info.Type, info.LogLevel = "error", slog.LevelError
	}
	return info
}

func summarize(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "Validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// NewErrorHandler logs err and renders it as an error page, or as a toast for
// DataStar requests.
func NewErrorHandler[C Context](log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[C] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx C, err error) {
		r, w := ctx.Request(), ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := ClassifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request failed",
			logger.RequestID(reqID),
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				// No toast configured: the client gets an empty 200 stream.
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: reqID})
			if rerr := datastar.NewSSE(w, r).PatchElementTempl(toast,
				datastar.WithSelector(cfg.ToastTarget), datastar.WithMode(cfg.ToastMode)); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(rerr), logger.Component("error_handler"))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		params := ErrorPageParams{
			Message:    info.Message,
			StatusCode: info.StatusCode,
			RequestID:  reqID,
			RetryURL:   r.URL.RequestURI(),
		}
		if environment.IsDevelopment(r.Context()) {
			params.Detail = err.Error()
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(info.StatusCode)
		if rerr := cfg.ErrorPage(params).Render(r.Context(), w); rerr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(rerr), logger.Component("error_handler"))
		}
	}
}
