package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
)

// Collaborators groups the article collaborator handlers.
type Collaborators struct {
	collab *service.CollaborationService
}

// NewCollaborators creates the collaborator handler group.
func NewCollaborators(collab *service.CollaborationService) *Collaborators {
	return &Collaborators{collab: collab}
}

type collaboratorRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=co_author reviewer"`
}

// Add grants a user co-author or reviewer access to an article.
func (h *Collaborators) Add(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req collaboratorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.collab.Add(articleID, req.UserID, claims.UserID, claims.Role, models.CollaboratorRole(req.Role))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// Remove revokes a user's collaborator access.
func (h *Collaborators) Remove(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}
	if err := h.collab.Remove(articleID, userID, claims.UserID, claims.Role); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// List returns an article's collaborators with user cards.
func (h *Collaborators) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	articleID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	viewerID, _ := viewer(claims)
	collabs, err := h.collab.List(articleID, viewerID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, collabs)
}
