// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"inkwell/internal/models"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// articleJoined is the column set for article queries that attach the
// author card and denormalized-free counters. Comment counts exclude
// soft-deleted rows.
const articleJoined = `
	a.id, a.title, a.summary, a.content, a.status, a.published_at,
	a.scheduled_for, a.views, a.is_featured, a.author_id, a.created_at, a.updated_at,
	u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified,
	(SELECT COUNT(*) FROM likes l WHERE l.article_id = a.id),
	(SELECT COUNT(*) FROM comments c WHERE c.article_id = a.id AND c.deleted_at IS NULL)`

// ArticleListFilter narrows and orders article listings.
type ArticleListFilter struct {
	Search   string                 // substring across title/summary/content
	AuthorID uuid.UUID              // filter by author when non-zero
	Statuses []models.ArticleStatus // explicit status filter (staff only, enforced by service)
	DateFrom *time.Time
	DateTo   *time.Time
	Sort     string // "recent" (default) or "popular"
	Page     int
	Limit    int
}

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func scanArticleJoined(row interface{ Scan(...any) error }) (*models.Article, error) {
	a := &models.Article{Author: &models.AuthorCard{}}
	err := row.Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content, &a.Status, &a.PublishedAt,
		&a.ScheduledFor, &a.Views, &a.IsFeatured, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Username, &a.Author.DisplayName,
		&a.Author.AvatarURL, &a.Author.Headline, &a.Author.IsVerified,
		&a.LikesCount, &a.CommentsCount,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindByID retrieves a bare article row by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	a := &models.Article{}
	err := s.db.QueryRow(`
		SELECT id, title, summary, content, status, published_at, scheduled_for,
		       views, is_featured, author_id, created_at, updated_at
		FROM articles WHERE id = $1
	`, id).Scan(
		&a.ID, &a.Title, &a.Summary, &a.Content, &a.Status, &a.PublishedAt,
		&a.ScheduledFor, &a.Views, &a.IsFeatured, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindWithAuthor retrieves an article with its author card and live
// like/comment counts. Returns nil if not found.
func (s *ArticleStore) FindWithAuthor(id uuid.UUID) (*models.Article, error) {
	a, err := scanArticleJoined(s.db.QueryRow(`
		SELECT`+articleJoined+`
		FROM articles a JOIN users u ON u.id = a.author_id
		WHERE a.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article with author: %w", err)
	}
	return a, nil
}

// FindManyWithAuthor fetches the given articles with joined data. The
// result order is whatever the database returns; callers that care about
// ranking must reimpose their own order.
func (s *ArticleStore) FindManyWithAuthor(ids []uuid.UUID) ([]models.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT`+articleJoined+`
		FROM articles a JOIN users u ON u.id = a.author_id
		WHERE a.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("find articles by ids: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticleJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// List returns articles matching the filter plus the total match count.
// The filter is composed dynamically; the service layer decides which
// filters a caller is allowed to use.
func (s *ArticleStore) List(f ArticleListFilter) ([]models.Article, int, error) {
	base := psql.Select().From("articles a").Join("users u ON u.id = a.author_id")

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"a.title": pattern},
			sq.ILike{"a.summary": pattern},
			sq.ILike{"a.content": pattern},
		})
	}
	if f.AuthorID != uuid.Nil {
		base = base.Where(sq.Eq{"a.author_id": f.AuthorID})
	}
	if len(f.Statuses) > 0 {
		base = base.Where(sq.Eq{"a.status": f.Statuses})
	}
	if f.DateFrom != nil {
		base = base.Where(sq.GtOrEq{"a.created_at": *f.DateFrom})
	}
	if f.DateTo != nil {
		base = base.Where(sq.LtOrEq{"a.created_at": *f.DateTo})
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build article count query: %w", err)
	}
	var total int
	if err := s.db.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	q := base.Columns(articleJoined)
	switch f.Sort {
	case "popular":
		q = q.OrderBy("a.views DESC", "a.created_at DESC")
	default:
		q = q.OrderBy("a.created_at DESC")
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
		if f.Page > 1 {
			q = q.Offset(uint64((f.Page - 1) * f.Limit))
		}
	}

	listSQL, listArgs, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build article list query: %w", err)
	}

	rows, err := s.db.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticleJoined(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, total, rows.Err()
}

// Create inserts a new article and returns it with generated fields.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	result := &models.Article{}
	err := s.db.QueryRow(`
		INSERT INTO articles (title, summary, content, status, published_at,
		                      scheduled_for, is_featured, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, summary, content, status, published_at, scheduled_for,
		          views, is_featured, author_id, created_at, updated_at
	`, a.Title, a.Summary, a.Content, a.Status, a.PublishedAt,
		a.ScheduledFor, a.IsFeatured, a.AuthorID,
	).Scan(
		&result.ID, &result.Title, &result.Summary, &result.Content, &result.Status,
		&result.PublishedAt, &result.ScheduledFor, &result.Views, &result.IsFeatured,
		&result.AuthorID, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return result, nil
}

// Update modifies an existing article's content and lifecycle fields.
func (s *ArticleStore) Update(a *models.Article) error {
	_, err := s.db.Exec(`
		UPDATE articles SET
			title = $1, summary = $2, content = $3, status = $4,
			published_at = $5, scheduled_for = $6, is_featured = $7,
			updated_at = NOW()
		WHERE id = $8
	`, a.Title, a.Summary, a.Content, a.Status,
		a.PublishedAt, a.ScheduledFor, a.IsFeatured, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Delete removes an article by ID. Dependent rows cascade in the schema.
func (s *ArticleStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter. Views are a best-effort
// popularity signal and are not reconciled.
func (s *ArticleStore) IncrementViews(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment article views: %w", err)
	}
	return nil
}

// PromoteDue publishes every scheduled article whose scheduled_for has
// passed, in a single statement. The published_at is the original
// scheduled_for, preserving the intended publish instant rather than the
// tick time. Re-running is a no-op for already-published rows, so the
// transition is idempotent.
func (s *ArticleStore) PromoteDue(now time.Time) (int, error) {
	res, err := s.db.Exec(`
		UPDATE articles
		SET status = 'published', published_at = scheduled_for, scheduled_for = NULL,
		    updated_at = NOW()
		WHERE status = 'scheduled' AND scheduled_for <= $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("promote due articles: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("promote due rows affected: %w", err)
	}
	return int(n), nil
}
