package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// LikeStore handles the unique (user, article) like pairings. The unique
// constraint is the sole safeguard against duplicate rows under concurrent
// requests.
type LikeStore struct {
	db *sql.DB
}

// NewLikeStore creates a new LikeStore with the given database connection.
func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

// Find retrieves the like for a (user, article) pair. Returns nil if absent.
func (s *LikeStore) Find(userID, articleID uuid.UUID) (*models.Like, error) {
	l := &models.Like{}
	err := s.db.QueryRow(`
		SELECT id, user_id, article_id, created_at
		FROM likes WHERE user_id = $1 AND article_id = $2
	`, userID, articleID).Scan(&l.ID, &l.UserID, &l.ArticleID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find like: %w", err)
	}
	return l, nil
}

// Create inserts a like row. Returns ErrDuplicate if the pair already
// exists, which callers treat as the idempotent already-liked case.
func (s *LikeStore) Create(userID, articleID uuid.UUID) (*models.Like, error) {
	l := &models.Like{}
	err := s.db.QueryRow(`
		INSERT INTO likes (user_id, article_id) VALUES ($1, $2)
		RETURNING id, user_id, article_id, created_at
	`, userID, articleID).Scan(&l.ID, &l.UserID, &l.ArticleID, &l.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("create like: %w", err)
	}
	return l, nil
}

// Delete removes the like for a (user, article) pair.
func (s *LikeStore) Delete(userID, articleID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM likes WHERE user_id = $1 AND article_id = $2
	`, userID, articleID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

// ListByArticle returns an article's likes, newest first, with user cards.
func (s *LikeStore) ListByArticle(articleID uuid.UUID) ([]models.Like, error) {
	rows, err := s.db.Query(`
		SELECT l.id, l.user_id, l.article_id, l.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM likes l JOIN users u ON u.id = l.user_id
		WHERE l.article_id = $1
		ORDER BY l.created_at DESC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	var likes []models.Like
	for rows.Next() {
		l := models.Like{User: &models.AuthorCard{}}
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.ArticleID, &l.CreatedAt,
			&l.User.ID, &l.User.Username, &l.User.DisplayName,
			&l.User.AvatarURL, &l.User.Headline, &l.User.IsVerified,
		); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
