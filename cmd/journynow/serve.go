package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	adapthttp "github.com/farhancoder7071/journynow/internal/adapter/http"
	"github.com/farhancoder7071/journynow/internal/app"
	"github.com/farhancoder7071/journynow/internal/config"
	"github.com/farhancoder7071/journynow/internal/metrics"
	"github.com/farhancoder7071/journynow/internal/seed"
)

func runServer(ctx context.Context, configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.HTTP.Addr = addr
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	if cfg.Seed.Defaults {
		if _, err := seed.Defaults(ctx, store, logger); err != nil {
			return err
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	audit := app.NewAuditor(store)
	auth := app.NewAuthService(store, store.Sessions(), app.AuthOptions{
		SessionTTL:        cfg.Session.TTL,
		PasswordMinLength: cfg.Auth.PasswordMinLength,
	})

	onSwept := func(int64) {}
	if m != nil {
		onSwept = m.SessionsSwept
	}
	sweeper, err := app.NewSweeper(auth, cfg.Session.SweepSchedule, logger, onSwept)
	if err != nil {
		return err
	}
	sweeper.Start()

	srv := adapthttp.New(adapthttp.Services{
		Auth:      auth,
		Users:     app.NewUserService(store, auth, audit),
		Routes:    app.NewRouteService(store, store, audit),
		Crowd:     app.NewCrowdService(store, audit),
		Settings:  app.NewSettingsService(store, store, audit),
		Dashboard: app.NewDashboardService(store, store),
		Content:   app.NewContentService(store, audit),
		Analytics: app.NewAnalyticsService(store),
		Store:     store,
	}, logger, m, adapthttp.Options{
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		WebDir:       cfg.HTTP.WebDir,
		MetricsPath:  cfg.Metrics.Path,
		Production:   cfg.Production(),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("mode", cfg.Mode))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sweeper.Stop(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	sweeper.Stop(shutdownCtx)
	return httpSrv.Shutdown(shutdownCtx)
}
