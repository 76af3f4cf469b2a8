// Package profile lets the signed-in user edit their own name and gender.
package profile

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/binder"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/sanitizer"
	"github.com/dmitrymomot/shelfadmin/pkg/validator"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

// Genders are the accepted values; empty means unspecified.
var Genders = []string{"", "male", "female", "other"}

type API interface {
	GetUser(ctx context.Context, token string, id int) (*library.User, error)
	UpdateUser(ctx context.Context, token string, id int, in library.UserInput) (*library.User, error)
}

// Flasher carries one-shot notices across a redirect. *cookie.Manager
// implements it.
type Flasher interface {
	SetFlash(w http.ResponseWriter, key string, value any) error
	GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error
}

const (
	flashKey   = "profile"
	savedFlash = "Profile saved successfully!"
)

type Views struct {
	ProfilePage func(ProfilePageParams) templ.Component
}

type ProfileForm struct {
	Email     string
	FirstName string
	LastName  string
	Gender    string
}

type ProfilePageParams struct {
	UserName  string
	Form      ProfileForm
	Errors    map[string]string
	FormError string
	Flash     string
}

type Service struct {
	api          API
	flash        Flasher
	views        Views
	errorHandler handler.ErrorHandler[shelfadmin.Context]
	log          *slog.Logger
}

func NewService(api API, flash Flasher, views Views, errorHandler handler.ErrorHandler[shelfadmin.Context], log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		api:          api,
		flash:        flash,
		views:        views,
		errorHandler: errorHandler,
		log:          log.With(logger.Component("profile")),
	}
}

// Handle is mounted at /profile.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", shelfadmin.HandleAuthenticated(s.show, s.errorHandler))
	r.Post("/", shelfadmin.HandleAuthenticated(s.update, s.errorHandler, binder.Form()))
	return r
}

type UpdateRequest struct {
	Method    string `form:"_method"`
	Email     string `form:"email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Gender    string `form:"gender"`
}

func (s *Service) show(ctx shelfadmin.Context, _ struct{}) handler.Response {
	sess := ctx.Session()
	user, err := s.api.GetUser(ctx, sess.UserToken, sess.UserID)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to fetch user", err))
	}
	return handler.Templ(s.views.ProfilePage(ProfilePageParams{
		UserName: sess.UserName,
		Form:     formFromUser(user),
		Flash:    s.takeFlash(ctx),
	}))
}

func (s *Service) update(ctx shelfadmin.Context, req UpdateRequest) handler.Response {
	if !strings.EqualFold(strings.TrimSpace(req.Method), http.MethodPut) {
		return handler.Unhandled()
	}

	sess := ctx.Session()
	form := ProfileForm{
		Email:     sanitizer.TrimToLower(req.Email),
		FirstName: sanitizer.SingleLine(req.FirstName),
		LastName:  sanitizer.SingleLine(req.LastName),
		Gender:    sanitizer.TrimToLower(req.Gender),
	}

	if err := validator.Apply(
		validator.RequiredString("first_name", form.FirstName),
		validator.RequiredString("last_name", form.LastName),
		validator.OneOfString("gender", form.Gender, Genders).WithMessage("must be one of: male, female, other"),
	); err != nil {
		return handler.TemplStatus(http.StatusBadRequest, s.views.ProfilePage(ProfilePageParams{
			UserName:  sess.UserName,
			Form:      form,
			Errors:    validator.ExtractValidationErrors(err).Map(),
			FormError: "Please correct the highlighted fields.",
		}))
	}

	// The submitted email is display-only; the stored one is sent back.
	user, err := s.api.GetUser(ctx, sess.UserToken, sess.UserID)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to fetch user", err))
	}

	in := library.UserInput{
		Email:     user.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Gender:    form.Gender,
	}
	if _, err := s.api.UpdateUser(ctx, sess.UserToken, sess.UserID, in); err != nil {
		return handler.Error(shelfadmin.Internal("Failed to update user", err))
	}

	s.log.InfoContext(ctx, "profile updated", logger.Event("profile_updated"), logger.UserID(sess.UserID))
	if s.flash != nil {
		if err := s.flash.SetFlash(ctx.ResponseWriter(), flashKey, savedFlash); err != nil {
			s.log.WarnContext(ctx, "failed to set flash", logger.Error(err))
		}
	}
	return handler.Redirect("/profile")
}

func (s *Service) takeFlash(ctx shelfadmin.Context) string {
	if s.flash == nil {
		return ""
	}
	var msg string
	if err := s.flash.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashKey, &msg); err != nil {
		return ""
	}
	return msg
}

func formFromUser(u *library.User) ProfileForm {
	return ProfileForm{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Gender:    u.Gender,
	}
}
