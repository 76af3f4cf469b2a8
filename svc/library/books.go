package library

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/shelfadmin/pkg/async"
	"github.com/dmitrymomot/shelfadmin/pkg/logger"
)

// ListBooks fetches the first page of books, overlays each book's detail on
// its list item, and applies filter. A failed detail call keeps the list item.
func (c *Client) ListBooks(ctx context.Context, token string, filter BookFilter) ([]Book, error) {
	var page listBody[Book]
	if err := c.do(ctx, "list_books", http.MethodGet, "/books", c.listQuery(), token, nil, &page); err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return []Book{}, nil
	}

	futures := make([]*async.Future[Book], len(page.Items))
	for i, item := range page.Items {
		futures[i] = async.Async(ctx, item, func(ctx context.Context, b Book) (Book, error) {
			return c.enrichBook(ctx, token, b)
		})
	}

	books := make([]Book, len(page.Items))
	for i, res := range async.WaitAllSettled(futures...) {
		if res.Err != nil {
			c.log.WarnContext(ctx, "book detail unavailable, using list item",
				logger.Operation("get_book"),
				logger.Event("book_enrich_failed"),
				logger.Error(res.Err),
			)
			books[i] = page.Items[i]
			continue
		}
		books[i] = res.Value
	}

	return FilterBooks(books, filter), nil
}

func (c *Client) enrichBook(ctx context.Context, token string, b Book) (Book, error) {
	merged := b
	if b.Author != nil {
		author := *b.Author
		merged.Author = &author
	}
	if err := c.do(ctx, "get_book", http.MethodGet, itemPath("books", b.ID), nil, token, nil, &merged); err != nil {
		return Book{}, err
	}
	return merged, nil
}

func (c *Client) GetBook(ctx context.Context, token string, id int) (*Book, error) {
	var b Book
	if err := c.do(ctx, "get_book", http.MethodGet, itemPath("books", id), nil, token, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) CreateBook(ctx context.Context, token string, in BookInput) (*Book, error) {
	var b Book
	if err := c.do(ctx, "create_book", http.MethodPost, "/books", nil, token, in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) UpdateBook(ctx context.Context, token string, id int, in BookInput) (*Book, error) {
	var b Book
	if err := c.do(ctx, "update_book", http.MethodPut, itemPath("books", id), nil, token, in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int) error {
	return c.do(ctx, "delete_book", http.MethodDelete, itemPath("books", id), nil, token, nil, nil)
}
