// Package books serves the book list, the create form and the edit page.
package books

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/binder"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

type API interface {
	ListBooks(ctx context.Context, token string, filter library.BookFilter) ([]library.Book, error)
	ListAuthors(ctx context.Context, token string) ([]library.Author, error)
	GetBook(ctx context.Context, token string, id int) (*library.Book, error)
	CreateBook(ctx context.Context, token string, in library.BookInput) (*library.Book, error)
	UpdateBook(ctx context.Context, token string, id int, in library.BookInput) (*library.Book, error)
	DeleteBook(ctx context.Context, token string, id int) error
}

// Flasher carries one-shot notices across a redirect. *cookie.Manager
// implements it.
type Flasher interface {
	SetFlash(w http.ResponseWriter, key string, value any) error
	GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error
}

type Views struct {
	BooksPage   func(BooksPageParams) templ.Component
	BooksTable  func(BooksTableParams) templ.Component
	BookPage    func(BookPageParams) templ.Component
	NewBookPage func(NewBookPageParams) templ.Component
}

type BooksTableParams struct {
	Filter library.BookFilter
	Books  []library.Book
}

type BooksPageParams struct {
	UserName string
	Table    BooksTableParams
}

// BookForm holds form values as the user sees them.
type BookForm struct {
	Title         string
	AuthorID      int
	AuthorName    string
	ReleaseDate   string
	Description   string
	ISBN          string
	Format        string
	NumberOfPages string
}

type BookPageParams struct {
	UserName  string
	BookID    int
	Form      BookForm
	Errors    map[string]string
	FormError string
	Flash     string
}

type NewBookPageParams struct {
	UserName  string
	Authors   []library.Author
	Form      BookForm
	Errors    map[string]string
	FormError string
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
		log:          log.With(logger.Component("books")),
	}
}

// Handle is mounted at /books.
func (s *Service) Handle() http.Handler {
	path := binder.Path(chi.URLParam)

	r := chi.NewRouter()
	r.Get("/", shelfadmin.HandleAuthenticated(s.list, s.errorHandler, binder.Query(), binder.Signals()))
	r.Get("/new", shelfadmin.HandleAuthenticated(s.newPage, s.errorHandler))
	r.Post("/new", shelfadmin.HandleAuthenticated(s.create, s.errorHandler, binder.Form()))
	r.Get("/{bookId}", shelfadmin.HandleAuthenticated(s.show, s.errorHandler, path))
	r.Post("/{bookId}", shelfadmin.HandleAuthenticated(s.action, s.errorHandler, path, binder.Form()))
	return r
}
