package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskboard-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
)

const bannerText = "Task board server is running"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.tokenService, app.config.Server.IsProduction(), app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	// Token checks on the data routes are opt-in.
	protect := func(r chi.Router) {
		if app.config.Auth.ProtectRoutes {
			r.Use(authMiddleware.Authenticate)
		}
	}

	r.Route("/users", func(r chi.Router) {
		protect(r)
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{email}", userHandler.GetByEmail)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.Route("/allTasks", func(r chi.Router) {
		protect(r)
		r.Get("/", taskHandler.ListAll)
		r.Post("/", taskHandler.Create)
		r.Get("/{email}", taskHandler.ListByOwner)
		r.Put("/{id}", taskHandler.Move)
		r.Put("/edit/{id}", taskHandler.Edit)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Post("/jwt", authHandler.IssueToken)
	r.Post("/logout", authHandler.Logout)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte(bannerText)); err != nil {
			app.logger.Error("Failed to write banner response", "error", err)
		}
	})

	r.Get("/health", app.handleHealth)

	return r
}

// handleHealth reports 200 when the database answers a ping, 503 otherwise.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
