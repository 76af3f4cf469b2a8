// Package auth serves the login and logout routes.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/binder"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/pkg/clientip"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/ratelimiter"
	"github.com/dmitrymomot/shelfadmin/pkg/sanitizer"
	"github.com/dmitrymomot/shelfadmin/pkg/session"
	"github.com/dmitrymomot/shelfadmin/pkg/validator"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

const (
	homePath  = "/authors"
	loginPath = "/login"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*library.Credentials, error)
}

type Views struct {
	LoginPage func(LoginParams) templ.Component
	LoginForm func(LoginParams) templ.Component
}

// LoginParams is shared by the login page and the form fragment.
type LoginParams struct {
	Email     string
	FormError string
	Errors    map[string]string
}

type Service struct {
	api          Authenticator
	sessions     *session.Manager
	throttle     *ratelimiter.Bucket
	views        Views
	errorHandler handler.ErrorHandler[shelfadmin.Context]
	log          *slog.Logger
}

// NewService returns the auth routes. A nil throttle disables login throttling.
func NewService(
	api Authenticator,
	sessions *session.Manager,
	throttle *ratelimiter.Bucket,
	views Views,
	errorHandler handler.ErrorHandler[shelfadmin.Context],
	log *slog.Logger,
) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		api:          api,
		sessions:     sessions,
		throttle:     throttle,
		views:        views,
		errorHandler: errorHandler,
		log:          log.With(logger.Component("auth")),
	}
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", shelfadmin.Handle(s.index, s.errorHandler))
	r.Get("/login", shelfadmin.Handle(s.loginPage, s.errorHandler))
	r.Post("/login", shelfadmin.Handle(s.login, s.errorHandler, binder.Form()))
	r.Get("/logout", shelfadmin.Handle(s.logoutRedirect, s.errorHandler))
	r.Post("/logout", shelfadmin.Handle(s.logout, s.errorHandler))
	return r
}

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (s *Service) index(ctx shelfadmin.Context, _ struct{}) handler.Response {
	if ctx.Session().IsAuthenticated() {
		return handler.Redirect(homePath)
	}
	return handler.Redirect(loginPath)
}

func (s *Service) loginPage(ctx shelfadmin.Context, _ struct{}) handler.Response {
	if ctx.Session().IsAuthenticated() {
		return handler.Redirect(homePath)
	}
	return handler.Templ(s.views.LoginPage(LoginParams{}))
}

func (s *Service) login(ctx shelfadmin.Context, req LoginRequest) handler.Response {
	if ctx.Session().IsAuthenticated() {
		return handler.Redirect(homePath)
	}

	email := sanitizer.Apply(req.Email, sanitizer.TrimToLower)
	params := LoginParams{Email: email}

	if err := validator.Apply(
		validator.ContainsString("email", email, "@").WithMessage("Invalid email format"),
		validator.MinLenString("password", req.Password, 6).WithMessage("Password must be at least 6 characters"),
	); err != nil {
		params.Errors = validator.ExtractValidationErrors(err).Map()
		return s.form(http.StatusBadRequest, params)
	}

	key := "login:" + clientKey(ctx.Request())
	if s.throttle != nil {
		res, err := s.throttle.Allow(ctx, key)
		if err != nil {
			return handler.Error(err)
		}
		if !res.Allowed() {
			retry := max(int(math.Ceil(res.RetryAfter().Seconds())), 1)
			ctx.ResponseWriter().Header().Set("Retry-After", strconv.Itoa(retry))
			s.log.WarnContext(ctx, "login throttled",
				logger.Event("login_throttled"),
				slog.String("client_ip", clientKey(ctx.Request())),
			)
			return handler.Error(handler.ErrTooManyRequests)
		}
	}

	creds, err := s.api.Authenticate(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, library.ErrAuthenticationFailed) {
			s.log.InfoContext(ctx, "login rejected", logger.Event("login_failed"), logger.Error(err))
			params.FormError = "Invalid email or password"
			return s.form(http.StatusBadRequest, params)
		}
		return handler.Error(shelfadmin.Internal("Sign in is unavailable right now. Please try again later.", err))
	}

	name := creds.FirstName
	if name == "" {
		name = email
	}
	if err := s.sessions.Create(ctx.ResponseWriter(), creds.Token, creds.UserID, name); err != nil {
		return handler.Error(shelfadmin.Internal("Could not start a session.", err))
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, key); err != nil {
			s.log.WarnContext(ctx, "failed to reset login throttle", logger.Error(err))
		}
	}

	s.log.InfoContext(ctx, "user signed in", logger.Event("login"), logger.UserID(creds.UserID))
	return handler.Redirect(homePath)
}

func (s *Service) form(status int, params LoginParams) handler.Response {
	return handler.TemplPartialStatus(status,
		s.views.LoginForm(params),
		s.views.LoginPage(params),
		handler.WithTarget("#login-form"),
	)
}

func (s *Service) logout(ctx shelfadmin.Context, _ struct{}) handler.Response {
	s.sessions.Destroy(ctx.ResponseWriter())
	if sess := ctx.Session(); sess.IsAuthenticated() {
		s.log.InfoContext(ctx, "user signed out", logger.Event("logout"), logger.UserID(sess.UserID))
	}
	return handler.Redirect(loginPath)
}

func (s *Service) logoutRedirect(shelfadmin.Context, struct{}) handler.Response {
	return handler.Redirect(loginPath)
}

func clientKey(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.FromRequest(r)
}
