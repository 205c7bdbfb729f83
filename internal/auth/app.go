package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"BookStock/pkg/kit"
)

type ctxKey string

const operatorKey ctxKey = "operator"

// RequireRole rejects requests without a valid bearer token for role.
// The token claims are available downstream through ClaimsFromContext.
func RequireRole(jwt *TokenMaker, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := kit.BearerToken(r)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "missing token", nil)
				return
			}

			claims, err := jwt.Parse(tok)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid token", nil)
				return
			}
			if claims.Role != role {
				kit.WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden", map[string]any{"role": role})
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(operatorKey).(Claims)
	return c, ok
}

// Bootstrap makes sure an operator with email exists. An existing account is
// left untouched.
func Bootstrap(ctx context.Context, store OperatorStore, email, password string, log *zap.Logger) error {
	if email == "" || password == "" {
		return nil
	}

	err := store.Create(ctx, email, password, RoleManager, "op_"+uuid.NewString())
	if errors.Is(err, ErrEmailExists) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("operator created", zap.String("email", normalizeEmail(email)))
	return nil
}

const (
	loginLimitPerMin = 5
	limitWindow      = 60 * time.Second
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	loginLimiter := kit.NewIPRateLimiter(s.loginLimit(), limitWindow)

	r.With(loginLimiter.Middleware).Post("/login", s.handleLogin)
	r.With(RequireRole(s.JWT, RoleManager)).Get("/whoami", s.handleWhoAmI)

	return r
}

func (s *Server) loginLimit() int {
	if s.LoginLimitPerMin > 0 {
		return s.LoginLimitPerMin
	}
	return loginLimitPerMin
}
