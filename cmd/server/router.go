package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lyricdeck/lyricdeck-api/internal/api/middleware"
)

// setupRouter builds the chi router: public browse and auth routes,
// authenticated profile and progress routes, and admin-only management
// routes behind the role check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)
	adminMiddleware := middleware.NewAdminMiddleware(app.userStore, app.logger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.authHandler.Register)
			r.Post("/login", app.authHandler.Login)
			r.Post("/refresh", app.authHandler.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/logout", app.authHandler.Logout)
			})
		})

		// Browsing the card catalog does not require an account.
		r.Get("/cards", app.cardHandler.ListCards)
		r.Get("/cards/{id}", app.cardHandler.GetCard)
		r.Get("/artists", app.cardHandler.ListArtists)
		r.Get("/albums", app.cardHandler.ListAlbums)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/profile", app.profileHandler.GetProfile)
			r.Put("/profile", app.profileHandler.UpdateProfile)
			r.Put("/profile/password", app.profileHandler.ChangePassword)

			r.Post("/cards/{id}/learned", app.cardHandler.MarkLearned)
			r.Delete("/cards/{id}/learned", app.cardHandler.UnmarkLearned)
			r.Get("/learned", app.cardHandler.ListLearned)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(adminMiddleware.RequireAdmin)

			r.Get("/cards", app.adminHandler.ListCards)
			r.Post("/cards", app.adminHandler.CreateCard)
			r.Put("/cards/{id}", app.adminHandler.UpdateCard)
			r.Delete("/cards/{id}", app.adminHandler.DeleteCard)

			r.Get("/users", app.adminHandler.ListUsers)
			r.Get("/users/{id}", app.adminHandler.GetUser)
			r.Put("/users/{id}", app.adminHandler.UpdateUser)
			r.Delete("/users/{id}", app.adminHandler.DeleteUser)
		})
	})

	return r
}
