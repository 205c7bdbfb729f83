package bookstore

import (
	"net/http"

	"go.uber.org/zap"

	"BookStock/internal/wire"
	"BookStock/pkg/kit"
)

func (s *Server) books(w http.ResponseWriter, r *http.Request) {
	isbns, err := wire.QueryISBNs(r)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}

	books, err := s.Store.Books(isbns)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) buy(w http.ResponseWriter, r *http.Request) {
	var req wire.CopiesReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		wire.WriteBadJSON(w, r, err)
		return
	}

	if err := s.Store.Buy(req.Copies); err != nil {
		if s.Log != nil {
			s.Log.Info("purchase rejected", zap.Error(err), zap.Int("entries", len(req.Copies)))
		}
		wire.WriteError(w, r, s.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) editorPicks(w http.ResponseWriter, r *http.Request) {
	n, err := wire.QueryCount(r, "n", defaultPicks)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}

	books, err := s.Store.EditorPicks(n)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}

func (s *Server) rate(w http.ResponseWriter, r *http.Request) {
	var req wire.RatingsReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		wire.WriteBadJSON(w, r, err)
		return
	}

	if err := s.Store.RateBooks(req.Ratings); err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) topRated(w http.ResponseWriter, r *http.Request) {
	n, err := wire.QueryCount(r, "n", defaultPicks)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}

	books, err := s.Store.TopRatedBooks(n)
	if err != nil {
		wire.WriteError(w, r, s.Log, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, books)
}
