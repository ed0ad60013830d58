// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
)

// Moderation groups the report submission and admin review handlers.
type Moderation struct {
	moderation *service.ModerationService
}

// NewModeration creates the moderation handler group.
func NewModeration(moderation *service.ModerationService) *Moderation {
	return &Moderation{moderation: moderation}
}

type reportRequest struct {
	TargetType string    `json:"target_type" validate:"required,oneof=article comment"`
	ItemID     uuid.UUID `json:"item_id" validate:"required"`
	Reason     string    `json:"reason" validate:"required,max=2000"`
}

// Report files a report against an article or comment.
func (h *Moderation) Report(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req reportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rep, err := h.moderation.Report(models.ReportTarget(req.TargetType), req.ItemID, claims.UserID, req.Reason)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rep)
}

// List returns the review queue, optionally filtered by status. Admin only.
func (h *Moderation) List(w http.ResponseWriter, r *http.Request) {
	status := models.ReportStatus(r.URL.Query().Get("status"))
	reports, total, err := h.moderation.ListReports(status, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reports": reports, "total": total})
}

// Get returns a report with its target content, soft-deleted comments
// included. Admin only.
func (h *Moderation) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	ctx, err := h.moderation.GetContext(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ctx)
}

type reportStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=open in_review resolved"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateStatus moves a report through the review queue. Resolution notes
// containing "delete" take the reported comment down. Admin only.
func (h *Moderation) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req reportStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	rep, err := h.moderation.UpdateStatus(id, models.ReportStatus(req.Status), req.Notes, claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// Audit returns the moderation action trail. Admin only.
func (h *Moderation) Audit(w http.ResponseWriter, r *http.Request) {
	actions, err := h.moderation.Audit(queryInt(r, "page", 1), queryInt(r, "limit", 50))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, actions)
}
