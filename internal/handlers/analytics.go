package handlers

import (
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

// Analytics groups the trending and author dashboard handlers.
type Analytics struct {
	analytics *service.AnalyticsService
}

// NewAnalytics creates the analytics handler group.
func NewAnalytics(analytics *service.AnalyticsService) *Analytics {
	return &Analytics{analytics: analytics}
}

// Top returns the most viewed published articles.
func (h *Analytics) Top(w http.ResponseWriter, r *http.Request) {
	top, err := h.analytics.TopArticles(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"articles": top})
}

// SiteActivity returns the platform-wide daily activity series. Admin only.
func (h *Analytics) SiteActivity(w http.ResponseWriter, r *http.Request) {
	series, err := h.analytics.SiteActivity(queryInt(r, "days", 30))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"activity": series})
}

// Dashboard returns the caller's authoring stats and 30-day activity series.
func (h *Analytics) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	summary, err := h.analytics.ForAuthor(claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
