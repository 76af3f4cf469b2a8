package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/shelfadmin/pkg/clientip"
	"github.com/dmitrymomot/shelfadmin/pkg/environment"
	"github.com/dmitrymomot/shelfadmin/pkg/httpserver"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/requestid"
	"github.com/dmitrymomot/shelfadmin/pkg/session"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions lists the page modules. Auth is mounted at the root and owns
// "/", "/login" and "/logout"; a nil module is skipped.
type RouterOptions struct {
	Env      environment.Environment
	Log      *slog.Logger
	Sessions *session.Manager

	// Proxies allowed to set X-Forwarded-For. Empty means the TCP peer is
	// always the client.
	TrustedProxies clientip.Trusted

	Auth    Mountable
	Authors Mountable
	Books   Mountable
	Profile Mountable
}

// Router applies the shared middleware chain and mounts every module.
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(
		requestid.Middleware,
		clientip.Middleware(opts.TrustedProxies),
		logger.AccessLog(opts.Log),
		middleware.Recoverer,
		environment.Middleware(opts.Env),
		opts.Sessions.Middleware,
	)

	r.Get("/health", httpserver.HealthCheckHandler(opts.Log))

	if opts.Authors != nil {
		r.Mount("/authors", opts.Authors.Handle())
	}
	if opts.Books != nil {
		r.Mount("/books", opts.Books.Handle())
	}
	if opts.Profile != nil {
		r.Mount("/profile", opts.Profile.Handle())
	}
	if opts.Auth != nil {
		r.Mount("/", opts.Auth.Handle())
	}

	return r
}
