package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// NotificationStore handles per-user notifications. Rows are append-only
// except for the read marker.
type NotificationStore struct {
	db *sql.DB
}

// NewNotificationStore creates a new NotificationStore with the given database connection.
func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

// Create inserts a notification addressed to userID.
func (s *NotificationStore) Create(userID uuid.UUID, kind models.NotificationType, payload []byte) (*models.Notification, error) {
	n := &models.Notification{}
	err := s.db.QueryRow(`
		INSERT INTO notifications (user_id, type, payload) VALUES ($1, $2, $3)
		RETURNING id, user_id, type, payload, read_at, created_at
	`, userID, kind, payload).Scan(&n.ID, &n.UserID, &n.Type, &n.Payload, &n.ReadAt, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// FindByID retrieves a notification regardless of owner. The service layer
// checks ownership before mutating.
func (s *NotificationStore) FindByID(id uuid.UUID) (*models.Notification, error) {
	n := &models.Notification{}
	err := s.db.QueryRow(`
		SELECT id, user_id, type, payload, read_at, created_at
		FROM notifications WHERE id = $1
	`, id).Scan(&n.ID, &n.UserID, &n.Type, &n.Payload, &n.ReadAt, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return n, nil
}

// ListByUser returns the user's notifications, newest first, capped at limit.
// With unreadOnly set, read notifications are excluded.
func (s *NotificationStore) ListByUser(userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, payload, read_at, created_at
		FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		n := models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Payload, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationStore) UnreadCount(userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead stamps read_at on a single notification. Idempotent: an already
// read notification keeps its original timestamp.
func (s *NotificationStore) MarkRead(id uuid.UUID, now time.Time) error {
	_, err := s.db.Exec(`
		UPDATE notifications SET read_at = $2 WHERE id = $1 AND read_at IS NULL
	`, id, now)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead stamps read_at on every unread notification for the user and
// returns how many were affected.
func (s *NotificationStore) MarkAllRead(userID uuid.UUID, now time.Time) (int, error) {
	res, err := s.db.Exec(`
		UPDATE notifications SET read_at = $2 WHERE user_id = $1 AND read_at IS NULL
	`, userID, now)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all read rows affected: %w", err)
	}
	return int(n), nil
}
