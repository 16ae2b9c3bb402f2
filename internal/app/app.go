// Package app assembles the landing backend from configuration and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/wellandwilde/landing-be/internal/api"
	"github.com/wellandwilde/landing-be/internal/auth"
	"github.com/wellandwilde/landing-be/internal/config"
	"github.com/wellandwilde/landing-be/internal/email"
	"github.com/wellandwilde/landing-be/internal/notify"
	"github.com/wellandwilde/landing-be/internal/scheduler"
	"github.com/wellandwilde/landing-be/internal/services"
)

// App owns every long-lived component of a running server.
type App struct {
	cfg *config.Config

	stores        *Stores
	dispatcher    *notify.Dispatcher
	digest        *scheduler.Digest
	subscriptions *services.SubscriptionService
	users         *services.UserService
	tokens        *auth.Manager
}

// New opens the store, seeds the admin account and prepares the
// notification pipeline. Nothing runs until Run is called.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	stores, err := OpenStores(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	a, err := build(ctx, cfg, stores)
	if err != nil {
		stores.Close()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, stores *Stores) (*App, error) {
	transport, err := email.NewTransport(cfg.SMTP)
	if err != nil {
		return nil, err
	}
	sender := email.NewSender(cfg.Mail, transport)
	if !sender.Configured() {
		log.Warn().Msg("SMTP_HOST is not set: notification emails will be skipped")
	}

	dispatcher := notify.NewDispatcher(sender, notify.Options{
		QueueSize:   cfg.Notify.QueueSize,
		Workers:     cfg.Notify.Workers,
		SendTimeout: cfg.Notify.SendTimeout,
	})

	a := &App{
		cfg:           cfg,
		stores:        stores,
		dispatcher:    dispatcher,
		subscriptions: services.NewSubscriptionService(stores.Subscribers, dispatcher),
		users:         services.NewUserService(stores.Users),
	}

	if cfg.JWT.Secret != "" {
		a.tokens = auth.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	}

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if _, err := a.users.EnsureUser(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return nil, fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Info().Str("username", cfg.Admin.Username).Msg("Admin account ready")
	}

	if cfg.DigestCron != "" {
		a.digest, err = scheduler.NewDigest(cfg.DigestCron, stores.Subscribers, sender)
		if err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Handler returns the full API router.
func (a *App) Handler() http.Handler {
	return api.NewRouter(api.Options{
		Subscriptions: a.subscriptions,
		Users:         a.users,
		Tokens:        a.tokens,
		RequireAuth:   a.cfg.Admin.AuthRequired,
		SecureCookie:  a.cfg.Admin.SecureCookie,
		StoreName:     a.stores.Name,
		Stats:         a.dispatcher.Stats(),
		CORS:          a.cfg.CORS,
	})
}

// FunctionHandler returns the single-endpoint intake handler.
func (a *App) FunctionHandler() http.Handler {
	return api.NewFunctionHandler(a.subscriptions, a.cfg.CORS)
}

// Run serves handler until ctx is cancelled, then shuts the server down and
// drains pending notifications.
func (a *App) Run(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:         a.cfg.HTTP.Addr(),
		Handler:      handler,
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
	}

	a.dispatcher.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", a.stores.Name).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})

	if a.digest != nil {
		g.Go(func() error {
			a.digest.Run()
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		if a.digest != nil {
			a.digest.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()

	// The server no longer accepts requests, so no new jobs can arrive.
	a.dispatcher.Stop()
	log.Info().Interface("notifications", a.dispatcher.Stats().Snapshot()).Msg("Server exiting")
	return err
}

// Close releases the store.
func (a *App) Close() {
	a.stores.Close()
}
