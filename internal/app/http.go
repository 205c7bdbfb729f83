// Package app assembles the HTTP surface of one bookstock process around a
// single inventory.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"BookStock/internal/auth"
	"BookStock/internal/bookstore"
	"BookStock/internal/inventory"
	"BookStock/internal/stockmanager"
	"BookStock/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	Inventory *inventory.Inventory
	Operators auth.OperatorStore
	JWT       *auth.TokenMaker

	LoginLimitPerMin int
}

const readyTimeout = 1 * time.Second

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	log := httpDeps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps, log)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps.Operators, log))

	authSrv := &auth.Server{
		Log:              log.Named("auth"),
		Store:            deps.Operators,
		JWT:              deps.JWT,
		LoginLimitPerMin: deps.LoginLimitPerMin,
	}
	storeSrv := &bookstore.Server{
		Store: deps.Inventory,
		Log:   log.Named("bookstore"),
	}
	stockSrv := &stockmanager.Server{
		Store: deps.Inventory,
		JWT:   deps.JWT,
		Log:   log.Named("stockmanager"),
	}

	r.Mount("/auth", authSrv.Routes())
	r.Mount("/books", storeSrv.Routes())
	r.Mount("/stock", stockSrv.Routes())

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps, log *zap.Logger) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// readyz reports ready once the operator store answers; the inventory
// itself is always ready.
func readyz(ops auth.OperatorStore, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := ops.Ping(ctx); err != nil {
			log.Warn("readyz failed", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not_ready", "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
