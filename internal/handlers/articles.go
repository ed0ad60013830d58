// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/store"
	"inkwell/internal/token"
)

// Articles groups the article lifecycle handlers.
type Articles struct {
	articles *service.ArticleService
}

// NewArticles creates the article handler group.
func NewArticles(articles *service.ArticleService) *Articles {
	return &Articles{articles: articles}
}

type articleRequest struct {
	Title        string     `json:"title" validate:"max=300"`
	Summary      string     `json:"summary" validate:"max=1000"`
	Content      string     `json:"content" validate:"max=100000"`
	Status       string     `json:"status" validate:"omitempty,oneof=draft published scheduled"`
	ScheduledFor *time.Time `json:"scheduled_for"`
	PublishedAt  *time.Time `json:"published_at"`
	IsFeatured   *bool      `json:"is_featured"`
}

func (req articleRequest) input() service.ArticleInput {
	return service.ArticleInput{
		Title:        req.Title,
		Summary:      req.Summary,
		Content:      req.Content,
		Status:       models.ArticleStatus(req.Status),
		ScheduledFor: req.ScheduledFor,
		PublishedAt:  req.PublishedAt,
		IsFeatured:   req.IsFeatured,
	}
}

// Create makes a new article owned by the caller.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.articles.Create(req.input(), claims.UserID, claims.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// Update modifies an article the caller may edit.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req articleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.articles.Update(id, req.input(), claims.UserID, claims.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// Delete removes an article the caller may edit.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.articles.Delete(id, claims.UserID, claims.Role); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Get returns a single article, counting the view for published articles.
// Staff may pass ?preview=1 to inspect hidden articles.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	viewerID, viewerRole := viewer(claims)
	preview := r.URL.Query().Get("preview") == "1"
	a, err := h.articles.Get(r.Context(), id, viewerID, viewerRole, preview, viewerKey(r, claims))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// List returns published articles matching the query filters. Staff can
// additionally filter by status.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	viewerID, viewerRole := viewer(claims)
	f := listFilter(r)
	articles, total, err := h.articles.List(f, viewerID, viewerRole)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"total":    total,
		"page":     f.Page,
		"limit":    f.Limit,
	})
}

// Mine lists the caller's own articles across all statuses.
func (h *Articles) Mine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	f := listFilter(r)
	f.AuthorID = claims.UserID
	articles, total, err := h.articles.List(f, claims.UserID, claims.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"total":    total,
		"page":     f.Page,
		"limit":    f.Limit,
	})
}

// ByAuthor lists an author's articles. Published only for the public; the
// author and staff can filter by status like on List.
func (h *Articles) ByAuthor(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	authorID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	viewerID, viewerRole := viewer(claims)
	f := listFilter(r)
	f.AuthorID = authorID
	articles, total, err := h.articles.List(f, viewerID, viewerRole)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"total":    total,
		"page":     f.Page,
		"limit":    f.Limit,
	})
}

func listFilter(r *http.Request) store.ArticleListFilter {
	q := r.URL.Query()
	f := store.ArticleListFilter{
		Search: q.Get("q"),
		Sort:   q.Get("sort"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}
	if author := q.Get("author"); author != "" {
		if id, err := uuid.Parse(author); err == nil {
			f.AuthorID = id
		}
	}
	for _, s := range q["status"] {
		switch models.ArticleStatus(s) {
		case models.ArticleStatusDraft, models.ArticleStatusPublished, models.ArticleStatusScheduled:
			f.Statuses = append(f.Statuses, models.ArticleStatus(s))
		}
	}
	if from := q.Get("from"); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			f.DateFrom = &ts
		}
	}
	if to := q.Get("to"); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			f.DateTo = &ts
		}
	}
	return f
}

// viewer unpacks optional claims into the service-layer identity pair.
func viewer(claims *token.Claims) (uuid.UUID, models.Role) {
	if claims == nil {
		return uuid.Nil, models.RoleViewer
	}
	return claims.UserID, claims.Role
}

// viewerKey identifies the viewer for view deduplication: the account ID
// when signed in, the client IP otherwise.
func viewerKey(r *http.Request, claims *token.Claims) string {
	if claims != nil {
		return claims.UserID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
