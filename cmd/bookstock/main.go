package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"BookStock/internal/app"
	"BookStock/internal/auth"
	"BookStock/internal/config"
	"BookStock/internal/inventory"
	"BookStock/pkg/kit"
)

const service = "bookstock"

func main() {
	cfg, err := config.Load(".", "/etc/bookstock")
	if err != nil {
		// The logger level comes from config, so report with a default one.
		log, _ := kit.NewLogger(service, "info")
		log.Fatal("load config", zap.Error(err))
	}

	log, err := kit.NewLogger(service, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	operators, closeOps, err := openOperators(ctx, cfg.Operators.DatabaseURL, log)
	if err != nil {
		log.Fatal("open operator store", zap.Error(err))
	}
	defer closeOps()

	if err := auth.Bootstrap(ctx, operators, cfg.Operators.BootstrapEmail, cfg.Operators.BootstrapPass, log); err != nil {
		log.Fatal("bootstrap operator", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []inventory.Option{
		inventory.WithLogger(log.Named("inventory")),
		inventory.WithMetrics(inventory.NewMetrics(reg)),
	}
	if cfg.Inventory.PickSeed != 0 {
		opts = append(opts, inventory.WithRand(rand.New(rand.NewSource(cfg.Inventory.PickSeed))))
	}
	inv := inventory.New(opts...)

	h := app.NewHandler(app.Deps{
		Inventory:        inv,
		Operators:        operators,
		JWT:              auth.NewTokenMaker(cfg.JWT.Secret, cfg.JWT.TokenTTL),
		LoginLimitPerMin: cfg.HTTP.LoginLimitPerMin,
	}, app.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	srv := kit.ServerOptions{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}
	if err := kit.RunHTTPServer(ctx, srv, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openOperators(ctx context.Context, url string, log *zap.Logger) (auth.OperatorStore, func(), error) {
	if url == "" {
		log.Info("operator store: memory")
		return auth.NewMemStore(), func() {}, nil
	}

	st, err := auth.OpenPostgres(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	log.Info("operator store: postgres")
	return st, func() { _ = st.Close() }, nil
}
