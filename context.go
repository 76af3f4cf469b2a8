package shelfadmin

import (
	"net/http"

	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/pkg/session"
)

// Context is the handler context used by every module.
type Context interface {
	handler.Context
	Session() session.Data
}

type appContext struct {
	handler.Context
	sess session.Data
}

func (c *appContext) Session() session.Data { return c.sess }

// NewContext reads the session stored by session.Middleware.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &appContext{
		Context: handler.NewContext(w, r),
		sess:    session.FromContext(r.Context()),
	}
}

// Authenticated is a guard that sends anonymous GET and HEAD requests to the
// login page and rejects every other method with 401. It returns nil for a
// signed-in user.
func Authenticated(ctx Context) handler.Response {
	if ctx.Session().IsAuthenticated() {
		return nil
	}
	switch ctx.Request().Method {
	case http.MethodGet, http.MethodHead:
		return handler.Redirect("/login")
	}
	return handler.Error(handler.ErrUnauthorized)
}

// Handle adapts h to http.HandlerFunc with the application context.
func Handle[R any](h handler.HandlerFunc[Context, R], eh handler.ErrorHandler[Context], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithContextFactory[Context, R](NewContext),
		handler.WithErrorHandler[Context, R](eh),
		handler.WithBinders[Context, R](binders...),
	)
}

// HandleAuthenticated is Handle with the Authenticated guard, so anonymous
// requests never reach the binders.
func HandleAuthenticated[R any](h handler.HandlerFunc[Context, R], eh handler.ErrorHandler[Context], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithContextFactory[Context, R](NewContext),
		handler.WithErrorHandler[Context, R](eh),
		handler.WithGuards[Context, R](Authenticated),
		handler.WithBinders[Context, R](binders...),
	)
}
