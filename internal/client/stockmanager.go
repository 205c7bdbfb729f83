package client

import (
	"context"
	"net/http"

	"BookStock/internal/inventory"
	"BookStock/internal/wire"
)

// StockManagerClient drives the manager API. Every call carries the bearer
// token obtained from Login.
type StockManagerClient struct {
	base
}

func NewStockManagerClient(baseURL, token string) *StockManagerClient {
	b := newBase(baseURL)
	b.Token = token
	return &StockManagerClient{base: b}
}

func (c *StockManagerClient) AddBooks(ctx context.Context, books []inventory.StockBook) error {
	if books == nil {
		return inventory.ErrNullInput
	}
	return c.do(ctx, http.MethodPost, "/stock/books", nil, wire.BooksReq{Books: books}, nil)
}

func (c *StockManagerClient) AddCopies(ctx context.Context, copies []inventory.BookCopy) error {
	if copies == nil {
		return inventory.ErrNullInput
	}
	return c.do(ctx, http.MethodPost, "/stock/copies", nil, wire.CopiesReq{Copies: copies}, nil)
}

func (c *StockManagerClient) StockBooks(ctx context.Context) ([]inventory.StockBook, error) {
	var out []inventory.StockBook
	if err := c.do(ctx, http.MethodGet, "/stock/books", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StockManagerClient) StockBooksByISBN(ctx context.Context, isbns []int) ([]inventory.StockBook, error) {
	if isbns == nil {
		return nil, inventory.ErrNullInput
	}
	if len(isbns) == 0 {
		return []inventory.StockBook{}, nil
	}

	var out []inventory.StockBook
	if err := c.do(ctx, http.MethodGet, "/stock/books", isbnQuery(isbns), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StockManagerClient) UpdateEditorPicks(ctx context.Context, picks []inventory.EditorPick) error {
	if picks == nil {
		return inventory.ErrNullInput
	}
	return c.do(ctx, http.MethodPost, "/stock/editor-picks", nil, wire.EditorPicksReq{Picks: picks}, nil)
}

func (c *StockManagerClient) RemoveBooks(ctx context.Context, isbns []int) error {
	if isbns == nil {
		return inventory.ErrNullInput
	}
	return c.do(ctx, http.MethodPost, "/stock/books/remove", nil, wire.ISBNsReq{ISBNs: isbns}, nil)
}

func (c *StockManagerClient) RemoveAll(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/stock/books", nil, nil, nil)
}

func (c *StockManagerClient) BooksInDemand(ctx context.Context) ([]inventory.StockBook, error) {
	var out []inventory.StockBook
	if err := c.do(ctx, http.MethodGet, "/stock/demand", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
