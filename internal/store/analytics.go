package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// AnalyticsStore runs the aggregate queries behind the analytics endpoints.
// It reads across articles, likes, comments and follows but never writes.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore with the given database connection.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// TopArticle is one row of the platform-wide top-articles board.
type TopArticle struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Views    int       `json:"views"`
	Likes    int       `json:"likes"`
	Author   string    `json:"author"`
	AuthorID uuid.UUID `json:"author_id"`
}

// TopArticles returns the most viewed published articles.
func (s *AnalyticsStore) TopArticles(limit int) ([]TopArticle, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.title, a.views,
		       (SELECT COUNT(*) FROM likes l WHERE l.article_id = a.id),
		       u.username, u.id
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.status = 'published'
		ORDER BY a.views DESC, a.published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top articles: %w", err)
	}
	defer rows.Close()

	var top []TopArticle
	for rows.Next() {
		var t TopArticle
		if err := rows.Scan(&t.ID, &t.Title, &t.Views, &t.Likes, &t.Author, &t.AuthorID); err != nil {
			return nil, fmt.Errorf("scan top article: %w", err)
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

// AuthorStats is the per-author analytics summary.
type AuthorStats struct {
	Drafts          int `json:"drafts"`
	Published       int `json:"published"`
	Scheduled       int `json:"scheduled"`
	TotalViews      int `json:"total_views"`
	LikesReceived   int `json:"likes_received"`
	FollowersGained int `json:"followers_gained"`
}

// AuthorSummary aggregates an author's article counts, views and likes.
// FollowersGained is left zero; the service layer fills it from the
// follow store.
func (s *AnalyticsStore) AuthorSummary(userID uuid.UUID) (*AuthorStats, error) {
	st := &AuthorStats{}
	err := s.db.QueryRow(`
		SELECT
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COALESCE(SUM(views), 0)
		FROM articles WHERE author_id = $1
	`, userID, models.ArticleStatusDraft, models.ArticleStatusPublished, models.ArticleStatusScheduled).
		Scan(&st.Drafts, &st.Published, &st.Scheduled, &st.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("author article stats: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM likes l
		JOIN articles a ON a.id = l.article_id
		WHERE a.author_id = $1
	`, userID).Scan(&st.LikesReceived)
	if err != nil {
		return nil, fmt.Errorf("author likes received: %w", err)
	}
	return st, nil
}
