package service

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// CollaborationService manages article collaborator grants.
type CollaborationService struct {
	articles      *store.ArticleStore
	users         *store.UserStore
	collabs       *store.CollaboratorStore
	notifications *store.NotificationStore
}

// NewCollaborationService wires a CollaborationService.
func NewCollaborationService(
	articles *store.ArticleStore,
	users *store.UserStore,
	collabs *store.CollaboratorStore,
	notifications *store.NotificationStore,
) *CollaborationService {
	return &CollaborationService{
		articles:      articles,
		users:         users,
		collabs:       collabs,
		notifications: notifications,
	}
}

// Add grants a user co_author or reviewer access to an article. Only the
// article's author or an admin may grant. Re-adding updates the role.
// The invitee is notified.
func (s *CollaborationService) Add(articleID, userID, actorID uuid.UUID, actorRole models.Role, role models.CollaboratorRole) (*models.ArticleCollaborator, error) {
	switch role {
	case models.CollaboratorCoAuthor, models.CollaboratorReviewer:
	default:
		return nil, apperr.Validation("unknown collaborator role %q", role)
	}

	a, err := s.articles.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("article not found")
	}
	if a.AuthorID != actorID && actorRole != models.RoleAdmin {
		return nil, apperr.Authorization("only the author or an admin may manage collaborators")
	}
	if userID == a.AuthorID {
		return nil, apperr.Conflict("the author cannot be added as a collaborator")
	}

	invitee, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, apperr.NotFound("user not found")
	}

	c, err := s.collabs.Upsert(articleID, userID, role)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]any{
		"article_id": articleID,
		"role":       role,
		"user_id":    actorID,
	})
	if _, err := s.notifications.Create(userID, models.NotificationCollaboratorInvite, payload); err != nil {
		slog.Warn("notify collaborator invite", "article_id", articleID, "error", err)
	}
	return c, nil
}

// Remove revokes a collaborator grant. Author or admin only.
func (s *CollaborationService) Remove(articleID, userID, actorID uuid.UUID, actorRole models.Role) error {
	a, err := s.articles.FindByID(articleID)
	if err != nil {
		return err
	}
	if a == nil {
		return apperr.NotFound("article not found")
	}
	if a.AuthorID != actorID && actorRole != models.RoleAdmin {
		return apperr.Authorization("only the author or an admin may manage collaborators")
	}

	n, err := s.collabs.Delete(articleID, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("collaborator not found")
	}
	return nil
}

// List returns an article's collaborators. Visible to anyone who can see
// the article.
func (s *CollaborationService) List(articleID, viewerID uuid.UUID) ([]models.ArticleCollaborator, error) {
	a, err := s.articles.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if a == nil || !a.VisibleTo(viewerID) {
		return nil, apperr.NotFound("article not found")
	}
	return s.collabs.ListByArticle(articleID)
}
