package inventory

import "errors"

// Errors returned by Inventory operations. Callers match them with errors.Is;
// the returned error usually wraps one of these with the offending ISBN or value.
var (
	ErrNullInput        = errors.New("null input")
	ErrInvalidISBN      = errors.New("invalid isbn")
	ErrDuplicateISBN    = errors.New("duplicate isbn")
	ErrRecordNotFound   = errors.New("isbn not available")
	ErrInvalidBook      = errors.New("invalid book")
	ErrInvalidQuantity  = errors.New("invalid number of copies")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrStockUnavailable = errors.New("books not available")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotImplemented   = errors.New("not implemented")
)
