package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CollaboratorStore handles article collaborator grants.
type CollaboratorStore struct {
	db *sql.DB
}

// NewCollaboratorStore creates a new CollaboratorStore with the given database connection.
func NewCollaboratorStore(db *sql.DB) *CollaboratorStore {
	return &CollaboratorStore{db: db}
}

// Find retrieves the grant for a (article, user) pair. Returns nil if absent.
func (s *CollaboratorStore) Find(articleID, userID uuid.UUID) (*models.ArticleCollaborator, error) {
	c := &models.ArticleCollaborator{}
	err := s.db.QueryRow(`
		SELECT id, article_id, user_id, role, created_at
		FROM article_collaborators WHERE article_id = $1 AND user_id = $2
	`, articleID, userID).Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Role, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collaborator: %w", err)
	}
	return c, nil
}

// Upsert inserts a grant or updates the role of an existing one.
func (s *CollaboratorStore) Upsert(articleID, userID uuid.UUID, role models.CollaboratorRole) (*models.ArticleCollaborator, error) {
	c := &models.ArticleCollaborator{}
	err := s.db.QueryRow(`
		INSERT INTO article_collaborators (article_id, user_id, role) VALUES ($1, $2, $3)
		ON CONFLICT (article_id, user_id) DO UPDATE SET role = EXCLUDED.role
		RETURNING id, article_id, user_id, role, created_at
	`, articleID, userID, role).Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Role, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert collaborator: %w", err)
	}
	return c, nil
}

// Delete removes a grant. Returns the number of rows removed.
func (s *CollaboratorStore) Delete(articleID, userID uuid.UUID) (int, error) {
	res, err := s.db.Exec(`
		DELETE FROM article_collaborators WHERE article_id = $1 AND user_id = $2
	`, articleID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete collaborator: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete collaborator rows affected: %w", err)
	}
	return int(n), nil
}

// ListByArticle returns all grants on an article with user cards, oldest first.
func (s *CollaboratorStore) ListByArticle(articleID uuid.UUID) ([]models.ArticleCollaborator, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.article_id, c.user_id, c.role, c.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM article_collaborators c
		JOIN users u ON u.id = c.user_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	defer rows.Close()

	var collaborators []models.ArticleCollaborator
	for rows.Next() {
		c := models.ArticleCollaborator{User: &models.AuthorCard{}}
		if err := rows.Scan(
			&c.ID, &c.ArticleID, &c.UserID, &c.Role, &c.CreatedAt,
			&c.User.ID, &c.User.Username, &c.User.DisplayName,
			&c.User.AvatarURL, &c.User.Headline, &c.User.IsVerified,
		); err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		collaborators = append(collaborators, c)
	}
	return collaborators, rows.Err()
}
