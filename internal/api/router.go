package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wellandwilde/landing-be/internal/api/handlers"
	"github.com/wellandwilde/landing-be/internal/auth"
	"github.com/wellandwilde/landing-be/internal/config"
	"github.com/wellandwilde/landing-be/internal/services"
)

// Options wires the router's collaborators.
type Options struct {
	Subscriptions services.SubscriptionServiceProvider
	// Users and Tokens enable the admin login route. Without them the
	// subscriber listing can only be served ungated.
	Users  services.UserServiceProvider
	Tokens *auth.Manager
	// RequireAuth gates the subscriber listing behind a valid admin token.
	// With no Tokens the listing always answers 401.
	RequireAuth  bool
	SecureCookie bool

	StoreName string
	Stats     handlers.StatsProvider
	CORS      config.CORS
}

// NewRouter creates and configures a new Chi router.
func NewRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(opts.CORS))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	subscriptionHandler := handlers.NewSubscriptionHandler(opts.Subscriptions)
	healthHandler := handlers.NewHealthHandler(opts.StoreName, opts.Stats)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Get)

		r.Post("/subscribe", subscriptionHandler.Subscribe)
		r.Options("/subscribe", handlers.NoContent)

		r.Group(func(r chi.Router) {
			if opts.RequireAuth {
				r.Use(requireToken(opts.Tokens))
			}
			r.Get("/subscribers", subscriptionHandler.List)
		})

		if opts.Users != nil && opts.Tokens != nil {
			adminHandler := handlers.NewAdminHandler(opts.Users, opts.Tokens, opts.SecureCookie)
			r.Post("/admin/login", adminHandler.Login)
		}
	})

	return r
}

// NewFunctionHandler serves the intake endpoint alone, the way a single
// serverless function would: OPTIONS gets an empty 200, POST runs the
// signup, anything else is a 405. The path is ignored.
func NewFunctionHandler(service services.SubscriptionServiceProvider, corsCfg config.CORS) http.Handler {
	subscriptionHandler := handlers.NewSubscriptionHandler(service)

	fn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodOptions:
			handlers.NoContent(w, r)
		case http.MethodPost:
			subscriptionHandler.Subscribe(w, r)
		default:
			handlers.MethodNotAllowed(w, r)
		}
	})

	return middleware.RequestID(accessLog(middleware.Recoverer(corsHandler(corsCfg)(fn))))
}

// requireToken gates routes behind a valid admin token. Without a token
// manager nothing can be verified, so every request is refused.
func requireToken(tokens *auth.Manager) func(http.Handler) http.Handler {
	if tokens != nil {
		return tokens.Middleware()
	}
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(handlers.Unauthorized)
	}
}

func corsHandler(cfg config.CORS) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           300,
	})
}
