// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

// Activity groups the feed and notification handlers.
type Activity struct {
	activity *service.ActivityService
}

// NewActivity creates the activity handler group.
func NewActivity(activity *service.ActivityService) *Activity {
	return &Activity{activity: activity}
}

// Feed returns the caller's activity feed: their own actions plus those of
// everyone they follow, newest first.
func (h *Activity) Feed(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	entries, err := h.activity.Feed(claims.UserID, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"feed": entries})
}

// ByUser returns one user's own activity, newest first.
func (h *Activity) ByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	entries, err := h.activity.ForUser(id, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"activity": entries})
}

// Notifications returns the caller's notifications and unread count.
// Pass ?unread=1 to restrict to unread ones.
func (h *Activity) Notifications(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	unreadOnly := r.URL.Query().Get("unread") == "1"
	list, unread, err := h.activity.Notifications(claims.UserID, unreadOnly)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": list,
		"unread_count":  unread,
	})
}

// MarkRead marks one of the caller's notifications as read. Idempotent.
func (h *Activity) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.activity.MarkRead(id, claims.UserID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *Activity) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	n, err := h.activity.MarkAllRead(claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "read", "marked": n})
}
