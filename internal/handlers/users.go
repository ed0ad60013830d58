// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

// Users groups the profile handlers.
type Users struct {
	users *service.UserService
}

// NewUsers creates the user handler group.
func NewUsers(users *service.UserService) *Users {
	return &Users{users: users}
}

// Get returns a public profile by account id.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	user, commentCount, err := h.users.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"comment_count": commentCount,
	})
}

// GetByUsername returns a public profile by username.
func (h *Users) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, commentCount, err := h.users.GetByUsername(username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"comment_count": commentCount,
	})
}

// List returns users matching an optional search query.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, total, err := h.users.List(r.URL.Query().Get("q"), queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users, "total": total})
}

type profileRequest struct {
	Username    *string `json:"username" validate:"omitempty,min=3,max=30"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=2000"`
	Headline    *string `json:"headline" validate:"omitempty,max=200"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	Website     *string `json:"website" validate:"omitempty,url,max=300"`
	SocialLinks *string `json:"social_links" validate:"omitempty,max=2000"`
}

// UpdateProfile edits the caller's own profile. Nil fields are unchanged.
func (h *Users) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.users.UpdateProfile(claims.UserID, service.ProfileInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Headline:    req.Headline,
		Location:    req.Location,
		Website:     req.Website,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UploadAvatar stores the caller's avatar image and returns its public URL.
func (h *Users) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart upload"})
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "avatar file is required"})
		return
	}
	defer file.Close()

	url, err := h.users.UploadAvatar(r.Context(), claims.UserID, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"avatar_url": url})
}

// Followers lists the accounts following a user.
func (h *Users) Followers(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	follows, err := h.users.Followers(userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, follows)
}

// Following lists the accounts a user follows.
func (h *Users) Following(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	follows, err := h.users.Following(userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, follows)
}
