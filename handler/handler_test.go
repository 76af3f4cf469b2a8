package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shelfadmin/binder"
	"github.com/dmitrymomot/shelfadmin/handler"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func datastarRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Datastar-Request", "true")
	req.Header.Set("Accept", "text/event-stream")
	return req
}

type itemRequest struct {
	ID   int    `path:"id" query:"id"`
	Name string `query:"name" form:"name"`
}

func TestWrap_BindersRunInOrder(t *testing.T) {
	t.Parallel()

	path := binder.Path(func(*http.Request, string) string { return "7" })
	h := handler.Wrap(func(ctx handler.Context, req itemRequest) handler.Response {
		return handler.Templ(text(req.Name))
	}, handler.WithBinders[handler.Context, itemRequest](binder.Query(), path, binder.Form()))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?id=1&name=dune", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dune", rec.Body.String())
}

func TestWrap_PathOverridesQuery(t *testing.T) {
	t.Parallel()

	var got itemRequest
	path := binder.Path(func(*http.Request, string) string { return "7" })
	h := handler.Wrap(func(ctx handler.Context, req itemRequest) handler.Response {
		got = req
		return handler.Empty()
	}, handler.WithBinders[handler.Context, itemRequest](binder.Query(), path))

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?id=1", nil))
	assert.Equal(t, 7, got.ID)
}

func TestWrap_BindErrorReachesErrorHandler(t *testing.T) {
	t.Parallel()

	var handled error
	called := false
	h := handler.Wrap(func(ctx handler.Context, req itemRequest) handler.Response {
		called = true
		return handler.Empty()
	},
		handler.WithBinders[handler.Context, itemRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, itemRequest](func(ctx handler.Context, err error) { handled = err }),
	)

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?id=abc", nil))
	assert.False(t, called)
	assert.ErrorIs(t, handled, binder.ErrInvalidQuery)
}

func TestWrap_DecoratorsFirstIsOutermost(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, struct{}] {
		return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
		order = append(order, "handler")
		return handler.Empty()
	}, handler.WithDecorators(mark("outer"), mark("inner")))

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestWrap_GuardsRunBeforeBinders(t *testing.T) {
	t.Parallel()

	var bound, called bool
	bind := func(*http.Request, any) error {
		bound = true
		return nil
	}
	deny := func(ctx handler.Context) handler.Response {
		if ctx.Request().URL.Query().Get("allow") == "" {
			return handler.EmptyWithStatus(http.StatusTeapot)
		}
		return nil
	}
	h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
		called = true
		return handler.Empty()
	}, handler.WithGuards[handler.Context, struct{}](deny), handler.WithBinders[handler.Context, struct{}](bind))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.False(t, bound)
	assert.False(t, called)

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?allow=1", nil))
	assert.True(t, bound)
	assert.True(t, called)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	var handled error
	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil },
		handler.WithErrorHandler[handler.Context, struct{}](func(ctx handler.Context, err error) { handled = err }))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, handled, handler.ErrNilResponse)
}

func TestWrap_DefaultErrorHandler(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return handler.Error(handler.ErrForbidden) })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	h = handler.Wrap(func(handler.Context, struct{}) handler.Response { return handler.Error(errors.New("secret detail")) })
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestUnhandled(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return handler.Unhandled() })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTemplResponses(t *testing.T) {
	t.Parallel()

	t.Run("html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Templ(text("<p>hi</p>")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hi</p>", rec.Body.String())
	})

	t.Run("status applies to html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplStatus(http.StatusBadRequest, text("bad")).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("partial serves full page to plain requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		resp := handler.TemplPartial(text("<table id=\"books-table\"></table>"), text("<html>page</html>"), handler.WithTarget("#books-table"))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/books", nil)))
		assert.Equal(t, "<html>page</html>", rec.Body.String())
	})

	t.Run("partial patches for datastar", func(t *testing.T) {
		rec := httptest.NewRecorder()
		resp := handler.TemplPartialStatus(http.StatusBadRequest, text(`<table id="books-table"><tr><td>Dune</td></tr></table>`), text("<html>page</html>"), handler.WithTarget("#books-table"))
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodGet, "/books")))

		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "#books-table")
		assert.Contains(t, body, "Dune")
		assert.NotContains(t, body, "page")
	})

	t.Run("multi", func(t *testing.T) {
		rec := httptest.NewRecorder()
		resp := handler.TemplMulti(handler.Patch(text("a")), handler.Patch(text("b"), handler.WithPatchMode(handler.PatchAppend)))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "ab", rec.Body.String())
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/authors").Render(rec, httptest.NewRequest(http.MethodPost, "/login", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/authors", rec.Header().Get("Location"))
	})

	t.Run("datastar", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/authors").Render(rec, datastarRequest(http.MethodPost, "/login")))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/authors")
		assert.Empty(t, rec.Header().Get("Location"))
	})
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(rec, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	require.NoError(t, handler.EmptyWithStatus(http.StatusAccepted).Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		query   url.Values
		want    bool
	}{
		{"request header", map[string]string{"Datastar-Request": "true"}, nil, true},
		{"accept header", map[string]string{"Accept": "text/html, text/event-stream"}, nil, true},
		{"query signals", nil, url.Values{"datastar": {`{"title":""}`}}, true},
		{"plain html", map[string]string{"Accept": "text/html"}, nil, false},
		{"bare", nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/books"
			if tt.query != nil {
				target += "?" + tt.query.Encode()
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, handler.IsDataStar(req))
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Same(t, req, ctx.Request())
	assert.Equal(t, "v", ctx.Value(key{}))
	assert.NoError(t, ctx.Err())

	sse := ctx.SSE()
	require.NotNil(t, sse)
	assert.Same(t, sse, ctx.SSE())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/event-stream"))
}
