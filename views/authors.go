package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/shelfadmin/modules/authors"
	"github.com/dmitrymomot/shelfadmin/svc/library"
)

func authorHref(id int) string { return "/authors/" + strconv.Itoa(id) }

func AuthorsPage(params authors.AuthorsPageParams) templ.Component {
	body := component(func(p *page) {
		p.raw(`<h1>Authors</h1>`)
		if len(params.Authors) == 0 {
			p.raw(`<p class="empty">No authors yet.</p>`)
			return
		}
		p.raw(`<table class="data"><thead><tr><th>ID</th><th>Name</th><th>Books</th><th></th></tr></thead><tbody>`)
		for _, a := range params.Authors {
			p.raw(`<tr><td>`)
			p.number(a.ID)
			p.raw(`</td><td>`)
			p.text(a.FullName())
			p.raw(`</td><td>`)
			p.number(a.BooksCount)
			p.raw(`</td><td><a`)
			p.attr("href", authorHref(a.ID))
			p.raw(`>View</a></td></tr>`)
		}
		p.raw(`</tbody></table>`)
	})
	return Layout("Authors", params.UserName, body)
}

func AuthorPage(params authors.AuthorPageParams) templ.Component {
	a := params.Author
	if a == nil {
		a = &library.Author{}
	}
	body := component(func(p *page) {
		p.raw(`<a class="back" href="/authors">&larr; Authors</a><h1>`)
		p.text(a.FullName())
		p.raw(`</h1><dl class="details">`)
		p.raw(`<dt>Birthday</dt><dd>`)
		p.text(displayDate(a.Birthday))
		p.raw(`</dd><dt>Place of birth</dt><dd>`)
		p.text(a.PlaceOfBirth)
		p.raw(`</dd><dt>Biography</dt><dd class="prose">`)
		p.text(a.Biography)
		p.raw(`</dd></dl>`)

		p.raw(`<h2>Books</h2>`)
		if len(a.Books) == 0 {
			p.raw(`<p class="empty">No books for this author.</p>`)
		} else {
			p.raw(`<ul class="books">`)
			for _, b := range a.Books {
				p.raw(`<li><a`)
				p.attr("href", bookHref(b.ID))
				p.raw(`>`)
				p.text(b.Title)
				p.raw(`</a><form method="POST"`)
				p.attr("action", authorHref(a.ID))
				p.raw(`><input type="hidden" name="bookId"`)
				p.attr("value", strconv.Itoa(b.ID))
				p.raw(`><button type="submit" class="danger">Delete</button></form></li>`)
			}
			p.raw(`</ul>`)
		}

		if a.BooksCount == 0 {
			p.raw(`<form method="POST"`)
			p.attr("action", authorHref(a.ID))
			p.raw(`><input type="hidden" name="authorId"`)
			p.attr("value", strconv.Itoa(a.ID))
			p.raw(`><button type="submit" class="danger">Delete author</button></form>`)
		}
	})
	return Layout(a.FullName(), params.UserName, body)
}

// displayDate renders the UTC date or a dash.
func displayDate(t library.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("January 2, 2006")
}
