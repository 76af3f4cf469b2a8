package shelfadmin_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/binder"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/session"
)

var signedIn = session.Data{UserToken: "tok", UserID: 4, UserName: "Ann"}

func withSession(req *http.Request, d session.Data) *http.Request {
	return req.WithContext(session.WithContext(req.Context(), d))
}

func TestNewContext(t *testing.T) {
	t.Parallel()

	req := withSession(httptest.NewRequest(http.MethodGet, "/", nil), signedIn)
	ctx := shelfadmin.NewContext(httptest.NewRecorder(), req)
	assert.Equal(t, signedIn, ctx.Session())
	assert.Same(t, req, ctx.Request())

	anon := shelfadmin.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, anon.Session().IsAuthenticated())
}

func protected() http.HandlerFunc {
	return handler.Wrap(
		func(ctx shelfadmin.Context, _ struct{}) handler.Response {
			return handler.EmptyWithStatus(http.StatusOK)
		},
		handler.WithContextFactory[shelfadmin.Context, struct{}](shelfadmin.NewContext),
		handler.WithGuards[shelfadmin.Context, struct{}](shelfadmin.Authenticated),
	)
}

func TestAuthenticated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		sess     session.Data
		status   int
		location string
	}{
		{"signed in get", http.MethodGet, signedIn, http.StatusOK, ""},
		{"signed in post", http.MethodPost, signedIn, http.StatusOK, ""},
		{"anonymous get", http.MethodGet, session.Data{}, http.StatusSeeOther, "/login"},
		{"anonymous head", http.MethodHead, session.Data{}, http.StatusSeeOther, "/login"},
		{"anonymous post", http.MethodPost, session.Data{}, http.StatusUnauthorized, ""},
		{"incomplete session", http.MethodGet, session.Data{UserToken: "tok"}, http.StatusSeeOther, "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			protected()(rec, withSession(httptest.NewRequest(tt.method, "/authors", nil), tt.sess))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

func TestUserError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := shelfadmin.Internal("Failed to fetch author", cause)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.Equal(t, "Failed to fetch author", err.UserMessage())
	assert.Equal(t, "Failed to fetch author: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	var uf handler.UserFacing
	require.ErrorAs(t, error(err), &uf)
	info := handler.ClassifyError(err)
	assert.Equal(t, http.StatusInternalServerError, info.StatusCode)
	assert.Equal(t, "Failed to fetch author", info.Message)

	assert.Equal(t, http.StatusForbidden, shelfadmin.Forbidden("no", nil).StatusCode())
	assert.Equal(t, "no", shelfadmin.Forbidden("no", nil).Error())
	assert.Equal(t, http.StatusBadRequest, shelfadmin.BadRequest("bad", nil).StatusCode())
}

type pageQuery struct {
	Page int `query:"page"`
}

func TestHandle(t *testing.T) {
	t.Parallel()

	var got pageQuery
	var gotErr error
	h := func(ctx shelfadmin.Context, req pageQuery) handler.Response {
		got = req
		return handler.EmptyWithStatus(http.StatusAccepted)
	}
	eh := func(ctx shelfadmin.Context, err error) {
		gotErr = err
		ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
	}

	rec := httptest.NewRecorder()
	shelfadmin.Handle(h, eh, binder.Query())(rec, httptest.NewRequest(http.MethodGet, "/?page=3", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 3, got.Page)

	rec = httptest.NewRecorder()
	shelfadmin.Handle(h, eh, binder.Query())(rec, httptest.NewRequest(http.MethodGet, "/?page=x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, gotErr, binder.ErrInvalidQuery)
}

func TestHandleAuthenticated(t *testing.T) {
	t.Parallel()

	h := func(ctx shelfadmin.Context, _ struct{}) handler.Response {
		return handler.EmptyWithStatus(http.StatusOK)
	}

	rec := httptest.NewRecorder()
	shelfadmin.HandleAuthenticated(h, nil)(rec, httptest.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	shelfadmin.HandleAuthenticated(h, nil)(rec, withSession(httptest.NewRequest(http.MethodGet, "/books", nil), signedIn))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleAuthenticatedChecksSessionBeforeBinding(t *testing.T) {
	t.Parallel()

	var bound bool
	h := func(ctx shelfadmin.Context, _ pageQuery) handler.Response {
		return handler.EmptyWithStatus(http.StatusOK)
	}
	eh := handler.NewErrorHandler[shelfadmin.Context](logger.Discard(), handler.ErrorHandlerConfig{})
	bind := func(r *http.Request, v any) error {
		bound = true
		return binder.ErrInvalidPath
	}

	rec := httptest.NewRecorder()
	shelfadmin.HandleAuthenticated(h, eh, bind)(rec, httptest.NewRequest(http.MethodGet, "/books/abc", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, bound)

	rec = httptest.NewRecorder()
	shelfadmin.HandleAuthenticated(h, eh, bind)(rec, httptest.NewRequest(http.MethodPost, "/books/abc", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, bound)

	rec = httptest.NewRecorder()
	shelfadmin.HandleAuthenticated(h, eh, bind)(rec, withSession(httptest.NewRequest(http.MethodGet, "/books/abc", nil), signedIn))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, bound)
}
