package client

import (
	"context"
	"net/http"

	"BookStock/internal/inventory"
	"BookStock/internal/wire"
)

// BookStoreClient is the customer side of the store. It needs no token.
type BookStoreClient struct {
	base
}

func NewBookStoreClient(baseURL string) *BookStoreClient {
	return &BookStoreClient{base: newBase(baseURL)}
}

func (c *BookStoreClient) Books(ctx context.Context, isbns []int) ([]inventory.Book, error) {
	if isbns == nil {
		return nil, inventory.ErrNullInput
	}
	if len(isbns) == 0 {
		return []inventory.Book{}, nil
	}

	var out []inventory.Book
	if err := c.do(ctx, http.MethodGet, "/books", isbnQuery(isbns), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookStoreClient) Buy(ctx context.Context, copies []inventory.BookCopy) error {
	if copies == nil {
		return inventory.ErrNullInput
	}
	return c.do(ctx, http.MethodPost, "/books/buy", nil, wire.CopiesReq{Copies: copies}, nil)
}

func (c *BookStoreClient) EditorPicks(ctx context.Context, n int) ([]inventory.Book, error) {
	var out []inventory.Book
	if err := c.do(ctx, http.MethodGet, "/books/editor-picks", countQuery(n), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookStoreClient) RateBooks(ctx context.Context, ratings []inventory.BookRating) error {
	return c.do(ctx, http.MethodPost, "/books/ratings", nil, wire.RatingsReq{Ratings: ratings}, nil)
}

func (c *BookStoreClient) TopRatedBooks(ctx context.Context, n int) ([]inventory.Book, error) {
	var out []inventory.Book
	if err := c.do(ctx, http.MethodGet, "/books/top-rated", countQuery(n), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
