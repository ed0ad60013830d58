// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// search.go holds the two article search paths: the full-text index query
// and the substring fallback. Both return ranked ID lists only; callers
// re-fetch the articles with joined data and reimpose the rank order,
// since join order is not guaranteed by the database.
package store

import (
	"fmt"

	"github.com/google/uuid"
)

// titleBoost is added to the ts_rank score when the title contains the
// literal query, ranking title matches ahead of summary/body-only matches.
const titleBoost = 1.0

// SearchFTS runs the full-text query against published articles and
// returns article IDs in rank order, best first.
func (s *ArticleStore) SearchFTS(query string, limit int) ([]uuid.UUID, error) {
	rows, err := s.db.Query(`
		SELECT a.id,
		       ts_rank(a.search, q) +
		       CASE WHEN a.title ILIKE '%' || $1 || '%' THEN $2::float4 ELSE 0 END AS rank
		FROM articles a, websearch_to_tsquery('english', $1) q
		WHERE a.status = 'published' AND a.search @@ q
		ORDER BY rank DESC, a.published_at DESC
		LIMIT $3
	`, query, titleBoost, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles fts: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		var rank float64
		if err := rows.Scan(&id, &rank); err != nil {
			return nil, fmt.Errorf("scan fts result: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SearchSubstring is the fallback path: a case-insensitive substring match
// across title, summary, and content of published articles, newest first.
func (s *ArticleStore) SearchSubstring(query string, limit int) ([]uuid.UUID, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id FROM articles
		WHERE status = 'published'
		  AND (title ILIKE $1 OR summary ILIKE $1 OR content ILIKE $1)
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search articles substring: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan substring result: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SuggestTitle is one row of the search suggestions dropdown.
type SuggestTitle struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// SuggestArticles returns up to limit published articles whose title or
// summary contains the query, newest first.
func (s *ArticleStore) SuggestArticles(query string, limit int) ([]SuggestTitle, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, title FROM articles
		WHERE status = 'published' AND (title ILIKE $1 OR summary ILIKE $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest articles: %w", err)
	}
	defer rows.Close()

	var items []SuggestTitle
	for rows.Next() {
		var it SuggestTitle
		if err := rows.Scan(&it.ID, &it.Title); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
