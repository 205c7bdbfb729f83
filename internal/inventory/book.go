package inventory

import "sync"

// StockBook is the stock manager's point-in-time view of a record.
type StockBook struct {
	ISBN        int    `json:"isbn"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	PriceCents  int64  `json:"price_cents"`
	NumCopies   int    `json:"num_copies"`
	SaleMisses  int64  `json:"sale_misses"`
	TimesRated  int64  `json:"times_rated"`
	TotalRating int64  `json:"total_rating"`
	EditorPick  bool   `json:"editor_pick"`
}

// AverageRating returns -1 for a book that has never been rated.
func (b StockBook) AverageRating() float64 {
	if b.TimesRated == 0 {
		return -1
	}
	return float64(b.TotalRating) / float64(b.TimesRated)
}

// Book is the customer's view of a record.
type Book struct {
	ISBN       int    `json:"isbn"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	PriceCents int64  `json:"price_cents"`
}

type BookCopy struct {
	ISBN      int `json:"isbn"`
	NumCopies int `json:"num_copies"`
}

type EditorPick struct {
	ISBN       int  `json:"isbn"`
	EditorPick bool `json:"editor_pick"`
}

type BookRating struct {
	ISBN   int `json:"isbn"`
	Rating int `json:"rating"`
}

type record struct {
	isbn        int
	title       string
	author      string
	priceCents  int64
	numCopies   int
	saleMisses  int64
	timesRated  int64
	totalRating int64
	editorPick  bool
}

func (r *record) stockBook() StockBook {
	return StockBook{
		ISBN:        r.isbn,
		Title:       r.title,
		Author:      r.author,
		PriceCents:  r.priceCents,
		NumCopies:   r.numCopies,
		SaleMisses:  r.saleMisses,
		TimesRated:  r.timesRated,
		TotalRating: r.totalRating,
		EditorPick:  r.editorPick,
	}
}

func (r *record) book() Book {
	return Book{
		ISBN:       r.isbn,
		Title:      r.title,
		Author:     r.author,
		PriceCents: r.priceCents,
	}
}

// slot co-locates a record with the lock that guards its fields, so the
// record table and the lock table can never disagree on their key sets.
type slot struct {
	mu  sync.RWMutex
	rec record
}

func newSlot(b StockBook) *slot {
	return &slot{rec: record{
		isbn:       b.ISBN,
		title:      b.Title,
		author:     b.Author,
		priceCents: b.PriceCents,
		numCopies:  b.NumCopies,
		editorPick: b.EditorPick,
	}}
}
