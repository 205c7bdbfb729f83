package inventory

import "time"

// StockBooks returns a snapshot of every book, sorted by ISBN.
func (inv *Inventory) StockBooks() []StockBook {
	defer inv.metrics.observe("stock_books", time.Now())

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	locks := inv.lockAll(readMode)
	defer locks.release()

	out := make([]StockBook, 0, len(locks.slots))
	for _, s := range locks.slots {
		out = append(out, s.rec.stockBook())
	}
	return out
}

// StockBooksByISBN returns snapshots of the named books, sorted by ISBN.
// Nothing is returned if any ISBN is invalid or unknown.
func (inv *Inventory) StockBooksByISBN(isbns []int) ([]StockBook, error) {
	return snapshot(inv, "stock_books_by_isbn", isbns, (*record).stockBook)
}

// Books returns the customer view of the named books, sorted by ISBN.
func (inv *Inventory) Books(isbns []int) ([]Book, error) {
	return snapshot(inv, "books", isbns, (*record).book)
}

func snapshot[T any](inv *Inventory, op string, isbns []int, view func(*record) T) ([]T, error) {
	if isbns == nil {
		return nil, ErrNullInput
	}
	defer inv.metrics.observe(op, time.Now())

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	for _, isbn := range isbns {
		if err := inv.checkPresent(isbn); err != nil {
			return nil, err
		}
	}

	locks := inv.lockRecords(isbns, readMode)
	defer locks.release()

	out := make([]T, 0, len(locks.slots))
	for _, s := range locks.slots {
		out = append(out, view(&s.rec))
	}
	return out, nil
}

// RateBooks is not implemented.
func (inv *Inventory) RateBooks(ratings []BookRating) error {
	return ErrNotImplemented
}

// TopRatedBooks is not implemented.
func (inv *Inventory) TopRatedBooks(n int) ([]Book, error) {
	return nil, ErrNotImplemented
}

// BooksInDemand is not implemented.
func (inv *Inventory) BooksInDemand() ([]StockBook, error) {
	return nil, ErrNotImplemented
}
