package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// BookmarkStore handles the unique (user, article) bookmark pairings.
type BookmarkStore struct {
	db *sql.DB
}

// NewBookmarkStore creates a new BookmarkStore with the given database connection.
func NewBookmarkStore(db *sql.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// Find retrieves the bookmark for a (user, article) pair. Returns nil if absent.
func (s *BookmarkStore) Find(userID, articleID uuid.UUID) (*models.Bookmark, error) {
	b := &models.Bookmark{}
	err := s.db.QueryRow(`
		SELECT id, user_id, article_id, snippet, created_at
		FROM bookmarks WHERE user_id = $1 AND article_id = $2
	`, userID, articleID).Scan(&b.ID, &b.UserID, &b.ArticleID, &b.Snippet, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find bookmark: %w", err)
	}
	return b, nil
}

// Create inserts a bookmark row. Returns ErrDuplicate if the pair already
// exists.
func (s *BookmarkStore) Create(userID, articleID uuid.UUID) (*models.Bookmark, error) {
	b := &models.Bookmark{}
	err := s.db.QueryRow(`
		INSERT INTO bookmarks (user_id, article_id) VALUES ($1, $2)
		RETURNING id, user_id, article_id, snippet, created_at
	`, userID, articleID).Scan(&b.ID, &b.UserID, &b.ArticleID, &b.Snippet, &b.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}
	return b, nil
}

// SetSnippet stores the prefetched plain-text preview on a bookmark.
// Best-effort: called after creation by the snippet prefetcher.
func (s *BookmarkStore) SetSnippet(id uuid.UUID, snippet string) error {
	_, err := s.db.Exec(`UPDATE bookmarks SET snippet = $1 WHERE id = $2`, snippet, id)
	if err != nil {
		return fmt.Errorf("set bookmark snippet: %w", err)
	}
	return nil
}

// Delete removes the bookmark for a (user, article) pair.
func (s *BookmarkStore) Delete(userID, articleID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM bookmarks WHERE user_id = $1 AND article_id = $2
	`, userID, articleID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// ListByUser returns a user's bookmarks, newest first, with the bookmarked
// article (author card and counts attached) embedded.
func (s *BookmarkStore) ListByUser(userID uuid.UUID) ([]models.Bookmark, error) {
	rows, err := s.db.Query(`
		SELECT b.id, b.user_id, b.article_id, b.snippet, b.created_at,`+articleJoined+`
		FROM bookmarks b
		JOIN articles a ON a.id = b.article_id
		JOIN users u ON u.id = a.author_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		b := models.Bookmark{Article: &models.Article{Author: &models.AuthorCard{}}}
		a := b.Article
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.ArticleID, &b.Snippet, &b.CreatedAt,
			&a.ID, &a.Title, &a.Summary, &a.Content, &a.Status, &a.PublishedAt,
			&a.ScheduledFor, &a.Views, &a.IsFeatured, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
			&a.Author.ID, &a.Author.Username, &a.Author.DisplayName,
			&a.Author.AvatarURL, &a.Author.Headline, &a.Author.IsVerified,
			&a.LikesCount, &a.CommentsCount,
		); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}
