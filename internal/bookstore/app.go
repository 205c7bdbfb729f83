// Package bookstore serves the customer side of the inventory: browsing,
// buying and editor picks.
package bookstore

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BookStock/internal/inventory"
)

// Store is the part of the inventory customers can reach.
type Store interface {
	Books(isbns []int) ([]inventory.Book, error)
	Buy(copies []inventory.BookCopy) error
	EditorPicks(n int) ([]inventory.Book, error)
	RateBooks(ratings []inventory.BookRating) error
	TopRatedBooks(n int) ([]inventory.Book, error)
}

type Server struct {
	Store Store
	Log   *zap.Logger
}

const defaultPicks = 10

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.books)
	r.Post("/buy", s.buy)
	r.Get("/editor-picks", s.editorPicks)
	r.Post("/ratings", s.rate)
	r.Get("/top-rated", s.topRated)

	return r
}
