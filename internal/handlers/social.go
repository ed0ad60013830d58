// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

// Social groups the like, comment, bookmark and follow handlers.
type Social struct {
	social *service.SocialService
}

// NewSocial creates the social handler group.
func NewSocial(social *service.SocialService) *Social {
	return &Social{social: social}
}

// Like records a like on an article. Repeats return the existing like.
func (h *Social) Like(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	like, err := h.social.Like(articleID, claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, like)
}

// Unlike removes the caller's like. Absent likes are a no-op.
func (h *Social) Unlike(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.social.Unlike(articleID, claims.UserID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "unliked"})
}

// ListLikes returns the likes on an article with author cards.
func (h *Social) ListLikes(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	viewerID, _ := viewer(claims)
	likes, err := h.social.ListLikes(articleID, viewerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

type commentRequest struct {
	Content  string     `json:"content" validate:"required,max=10000"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// Comment adds a comment or a single-level reply to an article.
func (h *Social) Comment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.social.Comment(articleID, claims.UserID, req.ParentID, req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// ListComments returns an article's live comment thread; soft-deleted
// comments are omitted.
func (h *Social) ListComments(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	viewerID, _ := viewer(claims)
	comments, err := h.social.ListComments(articleID, viewerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

type commentUpdateRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// UpdateComment edits the caller's own comment.
func (h *Social) UpdateComment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	commentID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req commentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.social.UpdateComment(commentID, claims.UserID, req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// DeleteComment soft-deletes a comment (author or admin).
func (h *Social) DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	commentID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	live, err := h.social.DeleteComment(commentID, claims.UserID, claims.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "deleted", "live_comments": live})
}

// Bookmark saves an article to the caller's reading list.
func (h *Social) Bookmark(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	b, err := h.social.Bookmark(articleID, claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

// Unbookmark removes an article from the caller's reading list.
func (h *Social) Unbookmark(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.social.Unbookmark(articleID, claims.UserID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListBookmarks returns the caller's reading list with article snippets.
func (h *Social) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	bookmarks, err := h.social.ListBookmarks(claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bookmarks)
}

// Follow subscribes the caller to another author's activity.
func (h *Social) Follow(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	userID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	rel, err := h.social.Follow(userID, claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rel)
}

// Unfollow removes the follow relationship. Absent follows are a no-op.
func (h *Social) Unfollow(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	userID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.social.Unfollow(userID, claims.UserID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "unfollowed"})
}
