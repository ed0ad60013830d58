// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CommentStore handles all comment-related database operations. Comments
// are never physically removed: deletion sets deleted_at so reports filed
// against a comment keep their context.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// FindByID retrieves a comment by ID, including soft-deleted ones.
// Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	c := &models.Comment{Author: &models.AuthorCard{}}
	err := s.db.QueryRow(`
		SELECT c.id, c.article_id, c.user_id, c.parent_id, c.content,
		       c.deleted_at, c.created_at, c.updated_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Content,
		&c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.ID, &c.Author.Username, &c.Author.DisplayName,
		&c.Author.AvatarURL, &c.Author.Headline, &c.Author.IsVerified,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// ListByArticle returns the live (non-deleted) comments of an article in
// creation order, with author cards attached.
func (s *CommentStore) ListByArticle(articleID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.article_id, c.user_id, c.parent_id, c.content,
		       c.deleted_at, c.created_at, c.updated_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.article_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c := models.Comment{Author: &models.AuthorCard{}}
		if err := rows.Scan(
			&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Content,
			&c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.ID, &c.Author.Username, &c.Author.DisplayName,
			&c.Author.AvatarURL, &c.Author.Headline, &c.Author.IsVerified,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create inserts a new comment and returns it with generated fields.
func (s *CommentStore) Create(articleID, userID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (article_id, user_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, article_id, user_id, parent_id, content, deleted_at, created_at, updated_at
	`, articleID, userID, parentID, content).Scan(
		&c.ID, &c.ArticleID, &c.UserID, &c.ParentID, &c.Content,
		&c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// UpdateContent replaces the comment body.
func (s *CommentStore) UpdateContent(id uuid.UUID, content string) error {
	_, err := s.db.Exec(`
		UPDATE comments SET content = $1, updated_at = NOW() WHERE id = $2
	`, content, id)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// SoftDelete marks a comment deleted. The row is retained for audit and
// report context. Already-deleted comments keep their original timestamp.
func (s *CommentStore) SoftDelete(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE comments SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete comment: %w", err)
	}
	return nil
}

// LiveCountByArticle counts the non-deleted comments of an article.
func (s *CommentStore) LiveCountByArticle(articleID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM comments WHERE article_id = $1 AND deleted_at IS NULL
	`, articleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count live comments: %w", err)
	}
	return count, nil
}

// LiveCountByUser counts the non-deleted comments written by a user.
func (s *CommentStore) LiveCountByUser(userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM comments WHERE user_id = $1 AND deleted_at IS NULL
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count user comments: %w", err)
	}
	return count, nil
}
