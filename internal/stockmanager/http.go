package stockmanager

import (
	"net/http"

	"go.uber.org/zap"

	"BookStock/internal/auth"
	"BookStock/internal/wire"
	"BookStock/pkg/kit"
)

func (s *Server) addBooks(w http.ResponseWriter, r *http.Request) {
	var req wire.BooksReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		wire.WriteBadJSON(w, r, err)
		return
	}

	if err := s.Store.Add(req.Books); err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	s.audit(r, "books added", zap.Int("count", len(req.Books)))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) addCopies(w http.ResponseWriter, r *http.Request) {
	var req wire.CopiesReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		wire.WriteBadJSON(w, r, err)
		return
	}

	if err := s.Store.AddCopies(req.Copies); err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// stockBooks lists every book, or only the ones named by isbn parameters.
func (s *Server) stockBooks(w http.ResponseWriter, r *http.Request) {
	isbns, err := wire.QueryISBNs(r)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}

	if isbns == nil {
		kit.WriteJSON(w, http.StatusOK, s.Store.StockBooks())
		return
	}

	books, err := s.Store.StockBooksByISBN(isbns)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) updateEditorPicks(w http.ResponseWriter, r *http.Request) {
	var req wire.EditorPicksReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		wire.WriteBadJSON(w, r, err)
		return
	}

	if err := s.Store.UpdateEditorPicks(req.Picks); err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeBooks(w http.ResponseWriter, r *http.Request) {
	var req wire.ISBNsReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		wire.WriteBadJSON(w, r, err)
		return
	}

	if err := s.Store.Remove(req.ISBNs); err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	s.audit(r, "books removed", zap.Ints("isbns", req.ISBNs))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeAll(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.RemoveAll(); err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	s.audit(r, "all books removed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) booksInDemand(w http.ResponseWriter, r *http.Request) {
	books, err := s.Store.BooksInDemand()
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

// audit logs structural changes with the operator that made them.
func (s *Server) audit(r *http.Request, msg string, fields ...zap.Field) {
	if s.Log == nil {
		return
	}
	if c, ok := auth.ClaimsFromContext(r.Context()); ok {
		fields = append(fields, zap.String("operator_id", c.OperatorID))
	}
	s.Log.Info(msg, fields...)
}
