package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/modules/auth"
	"github.com/dmitrymomot/shelfadmin/modules/authors"
	"github.com/dmitrymomot/shelfadmin/modules/books"
	"github.com/dmitrymomot/shelfadmin/modules/profile"
	"github.com/dmitrymomot/shelfadmin/svc/library"
	"github.com/dmitrymomot/shelfadmin/views"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayout(t *testing.T) {
	t.Parallel()

	html := render(t, views.Layout("Books", "Ann <3", templ.Raw("<p>body</p>")))
	assert.Contains(t, html, "<title>Books · Shelf Admin</title>")
	assert.Contains(t, html, "Ann &lt;3")
	assert.Contains(t, html, `action="/logout" method="POST"`)
	assert.Contains(t, html, `id="toast-container"`)
	assert.Contains(t, html, "<p>body</p>")

	anon := render(t, views.Layout("Sign in", "", nil))
	assert.NotContains(t, anon, "/logout")
}

func TestLoginForm(t *testing.T) {
	t.Parallel()

	html := render(t, views.LoginPage(auth.LoginParams{
		Email:     `a"b@x.io`,
		FormError: "Invalid email or password",
		Errors:    map[string]string{"password": "Password must be at least 6 characters"},
	}))
	assert.Contains(t, html, `id="login-form"`)
	assert.Contains(t, html, `value="a&#34;b@x.io"`)
	assert.Contains(t, html, "Invalid email or password")
	assert.Contains(t, html, "Password must be at least 6 characters")
	assert.NotContains(t, html, "/logout")
}

func TestAuthorPage(t *testing.T) {
	t.Parallel()

	with := library.Author{ID: 1, FirstName: "Frank", LastName: "Herbert", Books: []library.Book{{ID: 10, Title: "Dune"}}, BooksCount: 1}
	html := render(t, views.AuthorPage(authors.AuthorPageParams{UserName: "Ann", Author: &with}))
	assert.Contains(t, html, "Frank Herbert")
	assert.Contains(t, html, `name="bookId" value="10"`)
	assert.NotContains(t, html, "Delete author")

	without := library.Author{ID: 2, FirstName: "Jane", LastName: "Austen"}
	html = render(t, views.AuthorPage(authors.AuthorPageParams{UserName: "Ann", Author: &without}))
	assert.Contains(t, html, "Delete author")
	assert.Contains(t, html, `name="authorId" value="2"`)
}

func TestAuthorsPage(t *testing.T) {
	t.Parallel()

	html := render(t, views.AuthorsPage(authors.AuthorsPageParams{
		UserName: "Ann",
		Authors:  []library.Author{{ID: 3, FirstName: "Ursula", LastName: "Le Guin", BooksCount: 4}},
	}))
	assert.Contains(t, html, "<td>Ursula Le Guin</td><td>4</td>")
	assert.Contains(t, html, `href="/authors/3"`)
}

func TestBooksTable(t *testing.T) {
	t.Parallel()

	html := render(t, views.BooksTable(books.BooksTableParams{
		Books: []library.Book{{ID: 1, Title: "<Dune>", Author: &library.Author{ID: 4, FirstName: "Frank"}, NumberOfPages: 412}},
	}))
	assert.Contains(t, html, `<div id="books-table">`)
	assert.Contains(t, html, "&lt;Dune&gt;")
	assert.Contains(t, html, `href="/authors/4"`)
	assert.Contains(t, html, "<td>412</td>")

	empty := render(t, views.BooksTable(books.BooksTableParams{}))
	assert.Contains(t, empty, "No books match.")
}

func TestBooksPage(t *testing.T) {
	t.Parallel()

	html := render(t, views.BooksPage(books.BooksPageParams{
		UserName: "Ann",
		Table:    books.BooksTableParams{Filter: library.BookFilter{Title: "dune", Year: "1965"}},
	}))
	assert.Contains(t, html, `href="/books/new"`)
	assert.Contains(t, html, `<a href="/books">Clear</a>`)
	assert.Contains(t, html, `data-signals="{&#34;title&#34;:&#34;dune&#34;,&#34;year&#34;:&#34;1965&#34;}"`)
	assert.Contains(t, html, `id="books-table"`)
}

func TestBookPage(t *testing.T) {
	t.Parallel()

	html := render(t, views.BookPage(books.BookPageParams{
		UserName: "Ann",
		BookID:   7,
		Form:     books.BookForm{Title: "Dune", AuthorID: 4, AuthorName: "Frank Herbert", Format: "Paperback"},
		Flash:    "Book saved successfully!",
		Errors:   map[string]string{"title": "field is required"},
	}))
	assert.Contains(t, html, "Book saved successfully!")
	assert.Contains(t, html, `name="_method" value="PUT"`)
	assert.Contains(t, html, `name="_method" value="DELETE"`)
	assert.Contains(t, html, `action="/books/7"`)
	assert.Contains(t, html, `name="format" value="Paperback"`)
	assert.Contains(t, html, "field is required")
}

func TestNewBookPage(t *testing.T) {
	t.Parallel()

	html := render(t, views.NewBookPage(books.NewBookPageParams{
		UserName: "Ann",
		Authors:  []library.Author{{ID: 4, FirstName: "Frank", LastName: "Herbert"}, {ID: 5}},
		Form:     books.BookForm{AuthorID: 5},
	}))
	assert.Contains(t, html, `<option value="4">Frank Herbert</option>`)
	assert.Contains(t, html, `<option value="5" selected>#5</option>`)
}

func TestProfilePage(t *testing.T) {
	t.Parallel()

	html := render(t, views.ProfilePage(profile.ProfilePageParams{
		UserName: "Ann",
		Form:     profile.ProfileForm{Email: "ann@example.com", FirstName: "Ann", Gender: "other"},
	}))
	assert.Contains(t, html, `value="ann@example.com" readonly`)
	assert.Contains(t, html, `<option value="other" selected>`)
}

func TestErrorViews(t *testing.T) {
	t.Parallel()

	html := render(t, views.ErrorPage(handler.ErrorPageParams{
		Message:    "Failed to fetch author",
		StatusCode: 500,
		RequestID:  "req-1",
		RetryURL:   "/authors/1",
	}))
	assert.Contains(t, html, "<h1>500</h1>")
	assert.Contains(t, html, "Failed to fetch author")
	assert.Contains(t, html, "req-1")
	assert.NotContains(t, html, `class="detail"`)

	toast := render(t, views.ErrorToast(handler.ErrorToastParams{Message: "Nope", Type: "warning"}))
	assert.Contains(t, toast, `class="toast toast-warning"`)
	assert.Contains(t, toast, "Nope")
}
