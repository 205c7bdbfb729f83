package wire

import (
	"errors"
	"net/http"

	"BookStock/internal/inventory"
)

const (
	CodeNullInput        = "null_input"
	CodeInvalidISBN      = "invalid_isbn"
	CodeDuplicateISBN    = "duplicate_isbn"
	CodeRecordNotFound   = "not_found"
	CodeInvalidBook      = "invalid_book"
	CodeInvalidQuantity  = "invalid_quantity"
	CodeInvalidPrice     = "invalid_price"
	CodeStockUnavailable = "stock_unavailable"
	CodeInvalidArgument  = "invalid_argument"
	CodeNotImplemented   = "not_implemented"
	CodeInternal         = "internal"
)

type mapping struct {
	err    error
	code   string
	status int
}

var mappings = []mapping{
	{inventory.ErrNullInput, CodeNullInput, http.StatusBadRequest},
	{inventory.ErrInvalidISBN, CodeInvalidISBN, http.StatusBadRequest},
	{inventory.ErrDuplicateISBN, CodeDuplicateISBN, http.StatusConflict},
	{inventory.ErrRecordNotFound, CodeRecordNotFound, http.StatusNotFound},
	{inventory.ErrInvalidBook, CodeInvalidBook, http.StatusBadRequest},
	{inventory.ErrInvalidQuantity, CodeInvalidQuantity, http.StatusBadRequest},
	{inventory.ErrInvalidPrice, CodeInvalidPrice, http.StatusBadRequest},
	{inventory.ErrStockUnavailable, CodeStockUnavailable, http.StatusConflict},
	{inventory.ErrInvalidArgument, CodeInvalidArgument, http.StatusBadRequest},
	{inventory.ErrNotImplemented, CodeNotImplemented, http.StatusNotImplemented},
}

// Classify returns the HTTP status and stable code for an inventory error.
// Unknown errors map to 500 / CodeInternal.
func Classify(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// ErrorForCode is the inverse of Classify. It returns nil for unknown codes.
func ErrorForCode(code string) error {
	for _, m := range mappings {
		if m.code == code {
			return m.err
		}
	}
	return nil
}
