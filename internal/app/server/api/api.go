// Package api wires the HTTP surface: auth routes, one set of CRUD routes per
// collection, health, metrics and the OpenAPI document.
package api

import (
	"net/http"

	entryAPI "carnet/internal/app/server/api/http/entry"
	healthAPI "carnet/internal/app/server/api/http/health"
	"carnet/internal/app/server/api/http/middleware"
	"carnet/internal/app/server/api/http/middleware/auth"
	"carnet/internal/app/server/api/http/middleware/logger"
	"carnet/internal/app/server/api/http/middleware/metrics"
	userAPI "carnet/internal/app/server/api/http/user"
	"carnet/internal/app/server/config"
	"carnet/internal/domain/session"
	"carnet/internal/domain/user"
	"carnet/internal/infrastructure/storage"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/exp/slog"
)

const (
	title   = "Carnet API"
	version = "1.0.0"
)

// New builds the router for cfg on top of store.
func New(store storage.Storage, cfg *config.Config, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	mux.Handle("/metrics", m.Handler())

	humaConfig := huma.DefaultConfig(title, version)
	// entries carry their own JSON encoding, so no "$schema" rewriting
	humaConfig.CreateHooks = nil
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	root := humachi.New(mux, humaConfig)
	root.UseMiddleware(m.Middleware(), logger.New(log).Middleware())

	var API huma.API = root
	if cfg.Server.PathPrefix != "" {
		API = huma.NewGroup(root, cfg.Server.PathPrefix)
	}

	h := handlers(API, store, cfg, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	entryAPI.SetupRoutes(API, store.Entries(), log, h.authed)

	return mux
}

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	authed huma.Middlewares
}

func handlers(api huma.API, store storage.Storage, cfg *config.Config, log *slog.Logger) *Handlers {
	userService := user.NewService(store.Users(), user.NewCredentialsValidator(), log)
	sessionService := session.NewService(userService, cfg.Auth.Secret, cfg.Auth.TokenTTL, log)
	authMW := auth.New(sessionService, log)
	middlewares := middleware.NewContainer()

	healthHandler := healthAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware(api))
	authed := middlewares.GetAllAndClear()
	userHandler := userAPI.NewHandler(userService, sessionService, log, nil, authed)

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		authed: authed,
	}
}
