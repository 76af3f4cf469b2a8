package library

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/shelfadmin/pkg/async"
)

// ListAuthors fetches the first page of authors and then every author's
// detail to fill BooksCount. Any failed detail call fails the whole list.
func (c *Client) ListAuthors(ctx context.Context, token string) ([]Author, error) {
	var page listBody[Author]
	if err := c.do(ctx, "list_authors", http.MethodGet, "/authors", c.listQuery(), token, nil, &page); err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return []Author{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	futures := make([]*async.Future[Author], len(page.Items))
	for i, item := range page.Items {
		futures[i] = async.Async(ctx, item, func(ctx context.Context, a Author) (Author, error) {
			return c.enrichAuthor(ctx, token, a)
		})
	}

	authors, err := async.WaitAll(futures...)
	if err != nil {
		return nil, err
	}
	return authors, nil
}

// enrichAuthor overlays the author's detail on the list item.
func (c *Client) enrichAuthor(ctx context.Context, token string, a Author) (Author, error) {
	merged := a
	merged.Books = nil
	if err := c.do(ctx, "get_author", http.MethodGet, itemPath("authors", a.ID), nil, token, nil, &merged); err != nil {
		return Author{}, err
	}
	merged.BooksCount = len(merged.Books)
	return merged, nil
}

func (c *Client) GetAuthor(ctx context.Context, token string, id int) (*Author, error) {
	var a Author
	if err := c.do(ctx, "get_author", http.MethodGet, itemPath("authors", id), nil, token, nil, &a); err != nil {
		return nil, err
	}
	a.BooksCount = len(a.Books)
	return &a, nil
}

func (c *Client) DeleteAuthor(ctx context.Context, token string, id int) error {
	return c.do(ctx, "delete_author", http.MethodDelete, itemPath("authors", id), nil, token, nil, nil)
}

// AuthorLabel is "First Last", or "#id" when both names are empty.
func AuthorLabel(a *Author) string {
	if a == nil {
		return ""
	}
	if name := a.FullName(); name != "" {
		return name
	}
	return "#" + strconv.Itoa(a.ID)
}
