// Package wire holds the JSON bodies and error codes shared by the HTTP
// servers and the client.
package wire

import "BookStock/internal/inventory"

type BooksReq struct {
	Books []inventory.StockBook `json:"books"`
}

type CopiesReq struct {
	Copies []inventory.BookCopy `json:"copies"`
}

type EditorPicksReq struct {
	Picks []inventory.EditorPick `json:"picks"`
}

type ISBNsReq struct {
	ISBNs []int `json:"isbns"`
}

type RatingsReq struct {
	Ratings []inventory.BookRating `json:"ratings"`
}
