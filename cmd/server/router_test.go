package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shelfadmin/pkg/clientip"
	"github.com/dmitrymomot/shelfadmin/pkg/cookie"
	"github.com/dmitrymomot/shelfadmin/pkg/environment"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/requestid"
	"github.com/dmitrymomot/shelfadmin/pkg/session"
)

type namedModule string

func (m namedModule) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		env := environment.FromContext(r.Context())
		_, _ = w.Write([]byte(string(m) + ":" + r.URL.Path + ":" + env.String()))
	})
	return r
}

func newTestRouter(t *testing.T, opts RouterOptions) http.Handler {
	t.Helper()
	cookies, err := cookie.New([]string{strings.Repeat("s", 32)})
	require.NoError(t, err)

	opts.Env = environment.Development
	opts.Log = logger.Discard()
	opts.Sessions = session.New(cookies, session.Config{})
	return Router(opts)
}

func TestRouter(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, RouterOptions{
		Auth:    namedModule("auth"),
		Authors: namedModule("authors"),
		Books:   namedModule("books"),
		Profile: namedModule("profile"),
	})

	tests := []struct {
		path string
		want string
	}{
		{"/", "auth:/:development"},
		{"/login", "auth:/login:development"},
		{"/authors/7", "authors:/authors/7:development"},
		{"/books/new", "books:/books/new:development"},
		{"/profile", "profile:/profile:development"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(requestid.Header))
		})
	}
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, RouterOptions{Auth: namedModule("auth")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestRouterSkipsMissingModules(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, RouterOptions{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/authors", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterRecoversPanics(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, RouterOptions{Auth: panicModule{}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type ipModule struct{}

func (ipModule) Handle() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(clientip.FromContext(r.Context())))
	})
}

func TestRouterClientIP(t *testing.T) {
	t.Parallel()

	spoofed := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.5:4000"
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		return req
	}

	direct := newTestRouter(t, RouterOptions{Auth: ipModule{}})
	rec := httptest.NewRecorder()
	direct.ServeHTTP(rec, spoofed())
	assert.Equal(t, "10.0.0.5", rec.Body.String())

	proxies, err := clientip.ParseTrusted([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	behindProxy := newTestRouter(t, RouterOptions{Auth: ipModule{}, TrustedProxies: proxies})
	rec = httptest.NewRecorder()
	behindProxy.ServeHTTP(rec, spoofed())
	assert.Equal(t, "203.0.113.7", rec.Body.String())
}

type panicModule struct{}

func (panicModule) Handle() http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
}
