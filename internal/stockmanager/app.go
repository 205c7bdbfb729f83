// Package stockmanager serves the operator side of the inventory. Every
// route requires a manager token.
package stockmanager

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"BookStock/internal/auth"
	"BookStock/internal/inventory"
)

type Store interface {
	Add(books []inventory.StockBook) error
	AddCopies(copies []inventory.BookCopy) error
	StockBooks() []inventory.StockBook
	StockBooksByISBN(isbns []int) ([]inventory.StockBook, error)
	UpdateEditorPicks(picks []inventory.EditorPick) error
	Remove(isbns []int) error
	RemoveAll() error
	BooksInDemand() ([]inventory.StockBook, error)
}

type Server struct {
	Store Store
	JWT   *auth.TokenMaker
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.RequireRole(s.JWT, auth.RoleManager))

	r.Post("/books", s.addBooks)
	r.Get("/books", s.stockBooks)
	r.Delete("/books", s.removeAll)
	r.Post("/books/remove", s.removeBooks)
	r.Post("/copies", s.addCopies)
	r.Post("/editor-picks", s.updateEditorPicks)
	r.Get("/demand", s.booksInDemand)

	return r
}
