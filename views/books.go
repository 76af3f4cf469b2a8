package views

import (
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/shelfadmin/modules/books"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

// BooksTableID is the element DataStar patches on filter changes.
const BooksTableID = "books-table"

// bookFormats are suggestions only; the field accepts any text.
var bookFormats = []string{"Paperback", "Hardcover", "Ebook", "Audiobook"}

func bookHref(id int) string { return "/books/" + strconv.Itoa(id) }

func BooksPage(params books.BooksPageParams) templ.Component {
	body := component(func(p *page) {
		p.raw(`<div class="page-head"><h1>Books</h1><a class="button" href="/books/new">Add book</a></div>`)
		filterForm(p, params.Table.Filter)
		p.child(BooksTable(params.Table))
	})
	return Layout("Books", params.UserName, body)
}

// filterForm works as a plain GET form and, with DataStar loaded, patches
// the table as the user types.
func filterForm(p *page, f library.BookFilter) {
	signals, _ := json.Marshal(map[string]string{"title": f.Title, "year": f.Year})

	p.raw(`<form class="filters" action="/books" method="GET"`)
	p.attr("data-signals", string(signals))
	p.attr("data-on:submit__prevent", "@get('/books')")
	p.raw(`><label>Title <input type="search" name="title" data-bind="title"`)
	p.attr("value", f.Title)
	p.attr("data-on:input__debounce.300ms", "@get('/books')")
	p.raw(`></label><label>Year <input type="number" name="year" min="0" max="9999" data-bind="year"`)
	p.attr("value", f.Year)
	p.attr("data-on:input__debounce.300ms", "@get('/books')")
	p.raw(`></label><button type="submit">Filter</button> <a href="/books">Clear</a></form>`)
}

func BooksTable(params books.BooksTableParams) templ.Component {
	return component(func(p *page) {
		p.raw(`<div`)
		p.attr("id", BooksTableID)
		p.raw(`>`)
		if len(params.Books) == 0 {
			p.raw(`<p class="empty">No books match.</p></div>`)
			return
		}
		p.raw(`<table class="data"><thead><tr><th>ID</th><th>Title</th><th>Author</th><th>Release date</th><th>Format</th><th>Pages</th></tr></thead><tbody>`)
		for _, b := range params.Books {
			p.raw(`<tr><td>`)
			p.number(b.ID)
			p.raw(`</td><td><a`)
			p.attr("href", bookHref(b.ID))
			p.raw(`>`)
			p.text(b.Title)
			p.raw(`</a></td><td>`)
			if b.Author != nil {
				p.raw(`<a`)
				p.attr("href", authorHref(b.Author.ID))
				p.raw(`>`)
				p.text(library.AuthorLabel(b.Author))
				p.raw(`</a>`)
			}
			p.raw(`</td><td>`)
			p.text(displayDate(b.ReleaseDate))
			p.raw(`</td><td>`)
			p.text(b.Format)
			p.raw(`</td><td>`)
			if b.NumberOfPages > 0 {
				p.number(b.NumberOfPages)
			}
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table></div>`)
	})
}

// bookFields renders the inputs shared by the create and edit forms.
func bookFields(p *page, f books.BookForm, errs map[string]string) {
	p.field("Title", "text", "title", f.Title, errs, "required")
	p.field("Release date", "date", "release_date", f.ReleaseDate, errs, "required")

	p.field("Format", "text", "format", f.Format, errs, `list="book-formats"`)
	p.raw(`<datalist id="book-formats">`)
	for _, format := range bookFormats {
		p.raw(`<option`)
		p.attr("value", format)
		p.raw(`></option>`)
	}
	p.raw(`</datalist>`)

	p.field("ISBN", "text", "isbn", f.ISBN, errs)
	p.field("Pages", "number", "number_of_pages", f.NumberOfPages, errs, `min="1"`)

	p.raw(`<label class="field"><span>Description</span><textarea name="description" rows="6">`)
	p.text(f.Description)
	p.raw(`</textarea>`)
	p.fieldError("description", errs)
	p.raw(`</label>`)
}

func BookPage(params books.BookPageParams) templ.Component {
	title := params.Form.Title
	if title == "" {
		title = "Book #" + strconv.Itoa(params.BookID)
	}
	body := component(func(p *page) {
		p.raw(`<a class="back" href="/books">&larr; Books</a><h1>`)
		p.text(title)
		p.raw(`</h1>`)
		p.notice(params.Flash)

		p.raw(`<form class="book-form" method="POST"`)
		p.attr("action", bookHref(params.BookID))
		p.raw(`>`)
		p.methodOverride("PUT")
		p.formError(params.FormError)

		p.raw(`<input type="hidden" name="author_id"`)
		p.attr("value", strconv.Itoa(params.Form.AuthorID))
		p.raw(`><input type="hidden" name="author_name"`)
		p.attr("value", params.Form.AuthorName)
		p.raw(`><p class="field"><span>Author</span> `)
		if params.Form.AuthorID > 0 {
			name := params.Form.AuthorName
			if name == "" {
				name = "#" + strconv.Itoa(params.Form.AuthorID)
			}
			p.raw(`<a`)
			p.attr("href", authorHref(params.Form.AuthorID))
			p.raw(`>`)
			p.text(name)
			p.raw(`</a>`)
		}
		p.raw(`</p>`)
		p.fieldError("author_id", params.Errors)

		bookFields(p, params.Form, params.Errors)
		p.raw(`<button type="submit">Save</button></form>`)

		p.raw(`<form method="POST"`)
		p.attr("action", bookHref(params.BookID))
		p.raw(`>`)
		p.methodOverride("DELETE")
		p.raw(`<button type="submit" class="danger">Delete book</button></form>`)
	})
	return Layout(title, params.UserName, body)
}

func NewBookPage(params books.NewBookPageParams) templ.Component {
	body := component(func(p *page) {
		p.raw(`<a class="back" href="/books">&larr; Books</a><h1>Add book</h1>`)
		p.raw(`<form class="book-form" action="/books/new" method="POST">`)
		p.formError(params.FormError)

		p.raw(`<label class="field"><span>Author</span><select name="author_id" required><option value="">Select an author</option>`)
		for _, a := range params.Authors {
			p.raw(`<option`)
			p.attr("value", strconv.Itoa(a.ID))
			if a.ID == params.Form.AuthorID {
				p.raw(` selected`)
			}
			p.raw(`>`)
			p.text(library.AuthorLabel(&a))
			p.raw(`</option>`)
		}
		p.raw(`</select>`)
		p.fieldError("author_id", params.Errors)
		p.raw(`</label>`)

		bookFields(p, params.Form, params.Errors)
		p.raw(`<button type="submit">Create</button></form>`)
	})
	return Layout("Add book", params.UserName, body)
}
