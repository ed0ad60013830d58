package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// ActivityStore appends to and reads from the activity log. Rows are never
// updated or deleted.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore with the given database connection.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Create appends one activity record.
func (s *ActivityStore) Create(userID uuid.UUID, kind string, entityID *uuid.UUID, metadata []byte) (*models.ActivityLog, error) {
	a := &models.ActivityLog{}
	err := s.db.QueryRow(`
		INSERT INTO activity_log (user_id, type, entity_id, metadata) VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, type, entity_id, metadata, created_at
	`, userID, kind, entityID, metadata).Scan(&a.ID, &a.UserID, &a.Type, &a.EntityID, &a.Metadata, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return a, nil
}

// FeedFor returns activity from the users the viewer follows plus the
// viewer's own, newest first.
func (s *ActivityStore) FeedFor(viewerID uuid.UUID, limit, offset int) ([]models.ActivityLog, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.user_id, a.type, a.entity_id, a.metadata, a.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM activity_log a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		   OR a.user_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity feed: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

// ListByUser returns one user's own activity, newest first.
func (s *ActivityStore) ListByUser(userID uuid.UUID, limit, offset int) ([]models.ActivityLog, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.user_id, a.type, a.entity_id, a.metadata, a.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM activity_log a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user activity: %w", err)
	}
	defer rows.Close()
	return scanActivities(rows)
}

func scanActivities(rows *sql.Rows) ([]models.ActivityLog, error) {
	var activities []models.ActivityLog
	for rows.Next() {
		a := models.ActivityLog{User: &models.AuthorCard{}}
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Type, &a.EntityID, &a.Metadata, &a.CreatedAt,
			&a.User.ID, &a.User.Username, &a.User.DisplayName,
			&a.User.AvatarURL, &a.User.Headline, &a.User.IsVerified,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// DailyCount is one day's activity tally for a user.
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// DailySeries returns per-day activity counts for a user over the last
// `days` days, oldest first. Days with no activity are absent.
func (s *ActivityStore) DailySeries(userID uuid.UUID, days int) ([]DailyCount, error) {
	rows, err := s.db.Query(`
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM activity_log
		WHERE user_id = $1 AND created_at >= now() - make_interval(days => $2)
		GROUP BY day
		ORDER BY day ASC
	`, userID, days)
	if err != nil {
		return nil, fmt.Errorf("activity daily series: %w", err)
	}
	defer rows.Close()

	var series []DailyCount
	for rows.Next() {
		var d DailyCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		series = append(series, d)
	}
	return series, rows.Err()
}

// DailySeriesAll returns per-day activity counts across all users over the
// last `days` days, oldest first.
func (s *ActivityStore) DailySeriesAll(days int) ([]DailyCount, error) {
	rows, err := s.db.Query(`
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM activity_log
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY day
		ORDER BY day ASC
	`, days)
	if err != nil {
		return nil, fmt.Errorf("activity daily series all: %w", err)
	}
	defer rows.Close()

	var series []DailyCount
	for rows.Next() {
		var d DailyCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		series = append(series, d)
	}
	return series, rows.Err()
}
