// Package authors serves the author list and detail pages.
package authors

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/binder"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

type API interface {
	ListAuthors(ctx context.Context, token string) ([]library.Author, error)
	GetAuthor(ctx context.Context, token string, id int) (*library.Author, error)
	DeleteAuthor(ctx context.Context, token string, id int) error
	DeleteBook(ctx context.Context, token string, id int) error
}

type Views struct {
	AuthorsPage func(AuthorsPageParams) templ.Component
	AuthorPage  func(AuthorPageParams) templ.Component
}

type AuthorsPageParams struct {
	UserName string
	Authors  []library.Author
}

type AuthorPageParams struct {
	UserName string
	Author   *library.Author
}

type Service struct {
	api          API
	views        Views
	errorHandler handler.ErrorHandler[shelfadmin.Context]
	log          *slog.Logger
}

func NewService(api API, views Views, errorHandler handler.ErrorHandler[shelfadmin.Context], log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		api:          api,
		views:        views,
		errorHandler: errorHandler,
		log:          log.With(logger.Component("authors")),
	}
}

// Handle is mounted at /authors.
func (s *Service) Handle() http.Handler {
	path := binder.Path(chi.URLParam)

	r := chi.NewRouter()
	r.Get("/", shelfadmin.HandleAuthenticated(s.list, s.errorHandler))
	r.Get("/{authorId}", shelfadmin.HandleAuthenticated(s.show, s.errorHandler, path))
	r.Post("/{authorId}", shelfadmin.HandleAuthenticated(s.action, s.errorHandler, path, binder.Form()))
	return r
}

type ShowRequest struct {
	AuthorID int `path:"authorId"`
}

// ActionRequest carries exactly one of BookID or DeleteAuthorID.
type ActionRequest struct {
	AuthorID       int `path:"authorId"`
	BookID         int `form:"bookId"`
	DeleteAuthorID int `form:"authorId"`
}

func (s *Service) list(ctx shelfadmin.Context, _ struct{}) handler.Response {
	sess := ctx.Session()
	authors, err := s.api.ListAuthors(ctx, sess.UserToken)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to fetch authors", err))
	}
	return handler.Templ(s.views.AuthorsPage(AuthorsPageParams{UserName: sess.UserName, Authors: authors}))
}

func (s *Service) show(ctx shelfadmin.Context, req ShowRequest) handler.Response {
	if req.AuthorID <= 0 {
		return handler.Error(shelfadmin.BadRequest("Invalid author id", nil))
	}
	sess := ctx.Session()
	author, err := s.api.GetAuthor(ctx, sess.UserToken, req.AuthorID)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to fetch author", err))
	}
	return handler.Templ(s.views.AuthorPage(AuthorPageParams{UserName: sess.UserName, Author: author}))
}

func (s *Service) action(ctx shelfadmin.Context, req ActionRequest) handler.Response {
	token := ctx.Session().UserToken

	switch {
	case req.BookID > 0:
		if err := s.api.DeleteBook(ctx, token, req.BookID); err != nil {
			return handler.Error(shelfadmin.Internal("Failed to delete book", err))
		}
		s.log.InfoContext(ctx, "book deleted", logger.Event("book_deleted"), slog.Int("book_id", req.BookID))
		return handler.Redirect("/authors/" + strconv.Itoa(req.AuthorID))

	case req.DeleteAuthorID > 0:
		author, err := s.api.GetAuthor(ctx, token, req.DeleteAuthorID)
		if err != nil {
			return handler.Error(shelfadmin.Internal("Failed to fetch author", err))
		}
		if author.BooksCount > 0 {
			return handler.Error(shelfadmin.Forbidden("Cannot delete an author with associated books", library.ErrAuthorHasBooks))
		}
		if err := s.api.DeleteAuthor(ctx, token, req.DeleteAuthorID); err != nil {
			return handler.Error(shelfadmin.Internal("Failed to delete author", err))
		}
		s.log.InfoContext(ctx, "author deleted", logger.Event("author_deleted"), slog.Int("author_id", req.DeleteAuthorID))
		return handler.Redirect("/authors")
	}

	return handler.Error(shelfadmin.BadRequest("Resource ID is required", nil))
}
