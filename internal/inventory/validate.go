package inventory

import (
	"fmt"
	"math"
	"strings"
)

func validISBN(isbn int) bool { return isbn > 0 }

func validNumCopies(n int) bool { return n > 0 }

// fitsSum reports whether total+n stays within int for non-negative operands.
func fitsSum(total, n int) bool { return n <= math.MaxInt-total }

func isEmpty(s string) bool { return strings.TrimSpace(s) == "" }

func validateBook(b StockBook) error {
	switch {
	case !validISBN(b.ISBN):
		return fmt.Errorf("%w: %d", ErrInvalidISBN, b.ISBN)
	case isEmpty(b.Title) || isEmpty(b.Author):
		return fmt.Errorf("%w: isbn %d needs a title and an author", ErrInvalidBook, b.ISBN)
	case !validNumCopies(b.NumCopies):
		return fmt.Errorf("%w: isbn %d copies %d", ErrInvalidQuantity, b.ISBN, b.NumCopies)
	case b.PriceCents < 0:
		return fmt.Errorf("%w: isbn %d price %d", ErrInvalidPrice, b.ISBN, b.PriceCents)
	}
	return nil
}

// checkPresent requires a valid ISBN that names an existing record.
// The caller must hold the master lock.
func (inv *Inventory) checkPresent(isbn int) error {
	if !validISBN(isbn) {
		return fmt.Errorf("%w: %d", ErrInvalidISBN, isbn)
	}
	if _, ok := inv.slots[isbn]; !ok {
		return fmt.Errorf("%w: %d", ErrRecordNotFound, isbn)
	}
	return nil
}
