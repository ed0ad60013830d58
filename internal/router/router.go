// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// Inkwell API. Routes are grouped into public, authenticated, and admin
// sections with the appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/token"
)

// Deps bundles the handler groups and cross-cutting pieces the router
// needs.
type Deps struct {
	Tokens        *token.Issuer
	RateLimiter   *middleware.RateLimiter
	Auth          *handlers.Auth
	Articles      *handlers.Articles
	Social        *handlers.Social
	Users         *handlers.Users
	Search        *handlers.Search
	Activity      *handlers.Activity
	Collaborators *handlers.Collaborators
	Moderation    *handlers.Moderation
	Analytics     *handlers.Analytics
}

// New creates and returns the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Authenticate(d.Tokens))

	// Health check, outside the rate limit.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}

		// Accounts and sessions.
		r.Post("/auth/register", d.Auth.Register)
		r.Post("/auth/login", d.Auth.Login)
		r.Post("/auth/logout", d.Auth.Logout)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/auth/me", d.Auth.Me)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleEditor))
			r.Post("/auth/totp/setup", d.Auth.TOTPSetup)
			r.Post("/auth/totp/verify", d.Auth.TOTPVerify)
		})

		// Articles: reads are public, writes require an account.
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", d.Articles.List)
			r.With(middleware.RequireAuth).Get("/my", d.Articles.Mine)
			r.Get("/{id}", d.Articles.Get)
			r.Get("/{id}/likes", d.Social.ListLikes)
			r.Get("/{id}/comments", d.Social.ListComments)
			r.Get("/{id}/collaborators", d.Collaborators.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", d.Articles.Create)
				r.Put("/{id}", d.Articles.Update)
				r.Delete("/{id}", d.Articles.Delete)
				r.Post("/{id}/like", d.Social.Like)
				r.Delete("/{id}/like", d.Social.Unlike)
				r.Post("/{id}/comments", d.Social.Comment)
				r.Post("/{id}/bookmark", d.Social.Bookmark)
				r.Delete("/{id}/bookmark", d.Social.Unbookmark)
				r.Post("/{id}/collaborators", d.Collaborators.Add)
				r.Delete("/{id}/collaborators/{userID}", d.Collaborators.Remove)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/bookmarks", d.Social.ListBookmarks)
			r.Put("/comments/{id}", d.Social.UpdateComment)
			r.Delete("/comments/{id}", d.Social.DeleteComment)
		})

		// Profiles and the social graph. Accounts are id-keyed; profile
		// pages are additionally reachable by username.
		r.Get("/profiles/{username}", d.Users.GetByUsername)
		r.Route("/users", func(r chi.Router) {
			r.Get("/", d.Users.List)
			r.Get("/{id}", d.Users.Get)
			r.Get("/{id}/articles", d.Articles.ByAuthor)
			r.Get("/{id}/followers", d.Users.Followers)
			r.Get("/{id}/following", d.Users.Following)
			r.Get("/{id}/activity", d.Activity.ByUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/{id}/follow", d.Social.Follow)
				r.Delete("/{id}/follow", d.Social.Unfollow)
			})
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Put("/profile", d.Users.UpdateProfile)
			r.Post("/profile/avatar", d.Users.UploadAvatar)
		})

		// Search.
		r.Get("/search", d.Search.Query)
		r.Get("/search/suggestions", d.Search.Suggest)

		// Feed and notifications.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/feed", d.Activity.Feed)
			r.Get("/notifications", d.Activity.Notifications)
			r.Post("/notifications/read-all", d.Activity.MarkAllRead)
			r.Post("/notifications/{id}/read", d.Activity.MarkRead)
		})

		// Analytics: the author dashboard for signed-in users, the rest
		// for admins.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/analytics/me", d.Analytics.Dashboard)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/analytics/top", d.Analytics.Top)
			r.Get("/analytics/activity", d.Analytics.SiteActivity)
		})

		// Moderation: anyone signed in can report, admins review.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/reports", d.Moderation.Report)
		})
		r.Route("/moderation", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/reports", d.Moderation.List)
			r.Get("/reports/{id}", d.Moderation.Get)
			r.Put("/reports/{id}", d.Moderation.UpdateStatus)
			r.Get("/audit", d.Moderation.Audit)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
