package books

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/shelfadmin"
	"github.com/dmitrymomot/shelfadmin/handler"
	"github.com/dmitrymomot/shelfadmin/pkg/cookie"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
	"github.com/dmitrymomot/shelfadmin/pkg/validator"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

const (
	flashKey   = "book"
	savedFlash = "Book saved successfully!"
	tableID    = "#books-table"
)

// ListRequest reads the filter from the query string, or from signals when
// the filter form is driven by DataStar.
type ListRequest struct {
	Title string `query:"title" json:"title"`
	Year  string `query:"year" json:"year"`
}

type ShowRequest struct {
	BookID int `path:"bookId"`
}

func bookPath(id int) string { return "/books/" + strconv.Itoa(id) }

func (s *Service) list(ctx shelfadmin.Context, req ListRequest) handler.Response {
	sess := ctx.Session()
	filter := library.BookFilter{Title: strings.TrimSpace(req.Title), Year: strings.TrimSpace(req.Year)}

	books, err := s.api.ListBooks(ctx, sess.UserToken, filter)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to fetch books", err))
	}

	table := BooksTableParams{Filter: filter, Books: books}
	return handler.TemplPartial(
		s.views.BooksTable(table),
		s.views.BooksPage(BooksPageParams{UserName: sess.UserName, Table: table}),
		handler.WithTarget(tableID),
	)
}

func (s *Service) newPage(ctx shelfadmin.Context, _ struct{}) handler.Response {
	return s.renderNew(ctx, http.StatusOK, NewBookPageParams{})
}

func (s *Service) renderNew(ctx shelfadmin.Context, status int, params NewBookPageParams) handler.Response {
	sess := ctx.Session()
	authors, err := s.api.ListAuthors(ctx, sess.UserToken)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to fetch authors", err))
	}
	params.UserName = sess.UserName
	params.Authors = authors
	return handler.TemplStatus(status, s.views.NewBookPage(params))
}

func (s *Service) create(ctx shelfadmin.Context, req BookRequest) handler.Response {
	form := req.sanitized()
	in, err := form.input()
	if err != nil {
		return s.renderNew(ctx, http.StatusBadRequest, NewBookPageParams{
			Form:      form,
			Errors:    fieldErrors(err),
			FormError: invalidBookData,
		})
	}

	book, err := s.api.CreateBook(ctx, ctx.Session().UserToken, in)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to create book", err))
	}

	s.log.InfoContext(ctx, "book created", logger.Event("book_created"), slog.Int("book_id", book.ID))
	s.setFlash(ctx, savedFlash)
	return handler.Redirect(bookPath(book.ID))
}

func (s *Service) show(ctx shelfadmin.Context, req ShowRequest) handler.Response {
	if req.BookID <= 0 {
		return handler.Error(shelfadmin.BadRequest("Invalid book id", nil))
	}
	sess := ctx.Session()
	book, err := s.api.GetBook(ctx, sess.UserToken, req.BookID)
	if err != nil {
		return handler.Error(shelfadmin.Internal("Failed to fetch book", err))
	}

	return handler.Templ(s.views.BookPage(BookPageParams{
		UserName: sess.UserName,
		BookID:   book.ID,
		Form:     formFromBook(book),
		Flash:    s.takeFlash(ctx),
	}))
}

func (s *Service) action(ctx shelfadmin.Context, req BookRequest) handler.Response {
	if req.BookID <= 0 {
		return handler.Error(shelfadmin.BadRequest("Invalid book id", nil))
	}

	switch strings.ToUpper(strings.TrimSpace(req.Method)) {
	case http.MethodPut:
		return s.update(ctx, req)
	case http.MethodDelete:
		if err := s.api.DeleteBook(ctx, ctx.Session().UserToken, req.BookID); err != nil {
			return handler.Error(shelfadmin.Internal("Failed to delete book", err))
		}
		s.log.InfoContext(ctx, "book deleted", logger.Event("book_deleted"), slog.Int("book_id", req.BookID))
		return handler.Redirect("/books")
	}
	return handler.Unhandled()
}

func (s *Service) update(ctx shelfadmin.Context, req BookRequest) handler.Response {
	sess := ctx.Session()
	form := req.sanitized()
	in, err := form.input()
	if err != nil {
		return handler.TemplStatus(http.StatusBadRequest, s.views.BookPage(BookPageParams{
			UserName:  sess.UserName,
			BookID:    req.BookID,
			Form:      form,
			Errors:    fieldErrors(err),
			FormError: invalidBookData,
		}))
	}

	if _, err := s.api.UpdateBook(ctx, sess.UserToken, req.BookID, in); err != nil {
		return handler.Error(shelfadmin.Internal("Failed to update book", err))
	}

	s.log.InfoContext(ctx, "book updated", logger.Event("book_updated"), slog.Int("book_id", req.BookID))
	s.setFlash(ctx, savedFlash)
	return handler.Redirect(bookPath(req.BookID))
}

func (s *Service) setFlash(ctx shelfadmin.Context, msg string) {
	if s.flash == nil {
		return
	}
	if err := s.flash.SetFlash(ctx.ResponseWriter(), flashKey, msg); err != nil {
		s.log.WarnContext(ctx, "failed to set flash", logger.Error(err))
	}
}

func (s *Service) takeFlash(ctx shelfadmin.Context) string {
	if s.flash == nil {
		return ""
	}
	var msg string
	if err := s.flash.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashKey, &msg); err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			s.log.DebugContext(ctx, "discarding unreadable flash", logger.Error(err))
		}
		return ""
	}
	return msg
}

func fieldErrors(err error) map[string]string {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ve.Map()
	}
	return map[string]string{"release_date": "must be a valid date"}
}
