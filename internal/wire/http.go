package wire

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"BookStock/internal/inventory"
	"BookStock/pkg/kit"
)

// WriteError answers with the status and code of an inventory error.
// Internal errors are logged and their text is not exposed.
func WriteError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status, code := Classify(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("inventory operation failed", zap.Error(err), zap.String("path", r.URL.Path))
		}
		kit.WriteError(w, r, status, code, "server error", nil)
		return
	}
	kit.WriteError(w, r, status, code, err.Error(), nil)
}

// WriteBadJSON answers a request whose body could not be decoded.
func WriteBadJSON(w http.ResponseWriter, r *http.Request, err error) {
	kit.WriteError(w, r, http.StatusBadRequest, "bad_json", "bad json", map[string]any{"cause": err.Error()})
}

// QueryISBNs reads the isbn query parameter, which may be repeated or comma
// separated. It returns nil when the parameter is absent.
func QueryISBNs(r *http.Request) ([]int, error) {
	raw, ok := r.URL.Query()["isbn"]
	if !ok {
		return nil, nil
	}

	out := []int{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			isbn, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", inventory.ErrInvalidISBN, part)
			}
			out = append(out, isbn)
		}
	}
	return out, nil
}

// QueryCount reads an integer count parameter. A missing parameter yields
// def; range checks are left to the inventory.
func QueryCount(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", inventory.ErrInvalidArgument, name, v)
	}
	return n, nil
}
