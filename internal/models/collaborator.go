package models

import (
	"time"

	"github.com/google/uuid"
)

// CollaboratorRole is the capability granted to an article collaborator.
type CollaboratorRole string

const (
	CollaboratorCoAuthor CollaboratorRole = "co_author"
	CollaboratorReviewer CollaboratorRole = "reviewer"
)

// ArticleCollaborator grants a user edit (co_author) or review (reviewer)
// access to an article they do not own. The (article, user) pairing is
// unique; re-inviting an existing collaborator updates their role.
type ArticleCollaborator struct {
	ID        uuid.UUID        `json:"id"`
	ArticleID uuid.UUID        `json:"article_id"`
	UserID    uuid.UUID        `json:"user_id"`
	Role      CollaboratorRole `json:"role"`
	CreatedAt time.Time        `json:"created_at"`

	User *AuthorCard `json:"user,omitempty"`
}

// CanEdit returns true if this collaborator role permits editing.
func (c *ArticleCollaborator) CanEdit() bool {
	return c.Role == CollaboratorCoAuthor
}
