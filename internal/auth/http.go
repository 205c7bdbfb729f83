package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"BookStock/pkg/kit"
)

type Server struct {
	Log   *zap.Logger
	Store OperatorStore
	JWT   *TokenMaker

	LoginLimitPerMin int
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	AccessToken string `json:"access_token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad_json", "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if normalizeEmail(req.Email) == "" || normalizePassword(req.Password) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "bad_request", "email/password required", nil)
		return
	}

	op, err := s.Store.Verify(r.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		kit.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		return
	}
	if err != nil {
		s.Log.Error("verify operator", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal", "server error", nil)
		return
	}

	tok, err := s.JWT.New(op)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal", "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, LoginResp{AccessToken: tok})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"operator_id": claims.OperatorID,
		"email":       claims.Email,
		"role":        claims.Role,
	})
}
