package books

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/shelfadmin/pkg/sanitizer"
	"github.com/dmitrymomot/shelfadmin/pkg/validator"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

const invalidBookData = "Invalid book data"

// BookRequest is the create and edit form. Method is the _method override
// used by the edit page.
type BookRequest struct {
	BookID        int    `path:"bookId"`
	Method        string `form:"_method"`
	Title         string `form:"title"`
	AuthorID      int    `form:"author_id"`
	AuthorName    string `form:"author_name"`
	ReleaseDate   string `form:"release_date"`
	Description   string `form:"description"`
	ISBN          string `form:"isbn"`
	Format        string `form:"format"`
	NumberOfPages string `form:"number_of_pages"`
}

func (r BookRequest) sanitized() BookForm {
	return BookForm{
		Title:         sanitizer.Apply(r.Title, sanitizer.SingleLine),
		AuthorID:      r.AuthorID,
		AuthorName:    sanitizer.SingleLine(r.AuthorName),
		ReleaseDate:   sanitizer.Trim(r.ReleaseDate),
		Description:   sanitizer.Apply(r.Description, sanitizer.RemoveControlChars, sanitizer.Trim),
		ISBN:          sanitizer.KeepISBN(r.ISBN),
		Format:        sanitizer.Apply(r.Format, sanitizer.SingleLine),
		NumberOfPages: sanitizer.Trim(r.NumberOfPages),
	}
}

// input validates f and converts it to the backend shape.
func (f BookForm) input() (library.BookInput, error) {
	pages, pagesErr := strconv.Atoi(f.NumberOfPages)
	hasPages := f.NumberOfPages != ""

	if err := validator.Apply(
		validator.RequiredString("title", f.Title),
		validator.MinNum("author_id", f.AuthorID, 1).WithMessage("select an author"),
		validator.ValidDate("release_date", f.ReleaseDate, time.DateOnly, time.RFC3339),
		validator.Rule{
			Check: func() bool { return pagesErr == nil },
			Error: validator.ValidationError{
				Field:          "number_of_pages",
				Message:        "must be a whole number",
				TranslationKey: "validation.integer",
			},
		}.When(hasPages),
		validator.MinNum("number_of_pages", pages, 1).When(hasPages && pagesErr == nil),
	); err != nil {
		return library.BookInput{}, err
	}

	release, err := library.ParseFormDate(f.ReleaseDate)
	if err != nil {
		return library.BookInput{}, err
	}

	return library.BookInput{
		Title:         f.Title,
		Author:        library.AuthorRef{ID: f.AuthorID},
		ReleaseDate:   release,
		Description:   f.Description,
		ISBN:          f.ISBN,
		Format:        f.Format,
		NumberOfPages: pages,
	}, nil
}

func formFromBook(b *library.Book) BookForm {
	f := BookForm{
		Title:       b.Title,
		ReleaseDate: b.ReleaseDate.DateOnly(),
		Description: b.Description,
		ISBN:        b.ISBN,
		Format:      b.Format,
	}
	if b.NumberOfPages > 0 {
		f.NumberOfPages = strconv.Itoa(b.NumberOfPages)
	}
	if b.Author != nil {
		f.AuthorID = b.Author.ID
		f.AuthorName = library.AuthorLabel(b.Author)
	}
	return f
}
