package profile_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/modules/profile"
	"github.com/dmitrymomot/shelfadmin/pkg/cookie"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/session"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

const secret = "0123456789abcdef0123456789abcdef"

var signedIn = session.Data{UserToken: "tok", UserID: 7, UserName: "Ann"}

type users struct {
	mu      sync.Mutex
	updates []map[string]any
	failPut bool
}

func (u *users) lastUpdate() map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.updates) == 0 {
		return nil
	}
	return u.updates[len(u.updates)-1]
}

func newRouter(t *testing.T, failPut bool) (*users, http.Handler) {
	t.Helper()
	u := &users{failPut: failPut}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 7, "email": "ann@example.com", "first_name": "Ann", "last_name": "Lee", "gender": "female"})
	})
	mux.HandleFunc("PUT /users/7", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		u.mu.Lock()
		u.updates = append(u.updates, maps.Clone(body))
		u.mu.Unlock()
		if u.failPut {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "nope"})
			return
		}
		body["id"] = 7
		writeJSON(w, http.StatusOK, body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api, err := library.New(srv.URL)
	require.NoError(t, err)
	cookies, err := cookie.New([]string{secret})
	require.NoError(t, err)

	views := profile.Views{
		ProfilePage: func(p profile.ProfilePageParams) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprintf(w, "profile email=%s first=%s last=%s gender=%s flash=%s fields=%v",
					p.Form.Email, p.Form.FirstName, p.Form.LastName, p.Form.Gender, p.Flash, p.Errors)
				return err
			})
		},
	}
	eh := handler.NewErrorHandler[shelfadmin.Context](logger.Discard(), handler.ErrorHandlerConfig{})
	svc := profile.NewService(api, cookies, views, eh, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), signedIn)))
		})
	})
	r.Mount("/profile", svc.Handle())
	return u, r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestShowProfile(t *testing.T) {
	t.Parallel()
	_, r := newRouter(t, false)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "email=ann@example.com first=Ann last=Lee gender=female flash= ")
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("keeps stored email", func(t *testing.T) {
		t.Parallel()
		u, r := newRouter(t, false)

		rec := serve(r, postForm(url.Values{
			"_method":    {"PUT"},
			"email":      {"mallory@example.com"},
			"first_name": {" Anna "},
			"last_name":  {"Lee"},
			"gender":     {"Other"},
		}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/profile", rec.Header().Get("Location"))

		assert.Equal(t, map[string]any{
			"email":      "ann@example.com",
			"first_name": "Anna",
			"last_name":  "Lee",
			"gender":     "other",
		}, u.lastUpdate())

		next := httptest.NewRequest(http.MethodGet, "/profile", nil)
		for _, c := range rec.Result().Cookies() {
			next.AddCookie(c)
		}
		assert.Contains(t, serve(r, next).Body.String(), "flash=Profile saved successfully!")
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		u, r := newRouter(t, false)

		rec := serve(r, postForm(url.Values{
			"_method":   {"PUT"},
			"last_name": {"Lee"},
			"gender":    {"robot"},
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "first_name:field is required")
		assert.Contains(t, rec.Body.String(), "gender:must be one of: male, female, other")
		assert.Nil(t, u.lastUpdate())
	})

	t.Run("empty gender is allowed", func(t *testing.T) {
		t.Parallel()
		u, r := newRouter(t, false)

		rec := serve(r, postForm(url.Values{"_method": {"put"}, "first_name": {"Ann"}, "last_name": {"Lee"}}))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "", u.lastUpdate()["gender"])
	})

	t.Run("remote failure", func(t *testing.T) {
		t.Parallel()
		_, r := newRouter(t, true)

		rec := serve(r, postForm(url.Values{"_method": {"PUT"}, "first_name": {"Ann"}, "last_name": {"Lee"}}))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to update user")
	})

	t.Run("unknown method", func(t *testing.T) {
		t.Parallel()
		u, r := newRouter(t, false)

		rec := serve(r, postForm(url.Values{"_method": {"DELETE"}, "first_name": {"Ann"}, "last_name": {"Lee"}}))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Nil(t, u.lastUpdate())
	})
}
