package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// FollowStore handles the unique (follower, following) pairings.
type FollowStore struct {
	db *sql.DB
}

// NewFollowStore creates a new FollowStore with the given database connection.
func NewFollowStore(db *sql.DB) *FollowStore {
	return &FollowStore{db: db}
}

// Find retrieves the follow row for a pair. Returns nil if absent.
func (s *FollowStore) Find(followerID, followingID uuid.UUID) (*models.Follow, error) {
	f := &models.Follow{}
	err := s.db.QueryRow(`
		SELECT id, follower_id, following_id, created_at
		FROM follows WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID).Scan(&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find follow: %w", err)
	}
	return f, nil
}

// Create inserts a follow row. Returns ErrDuplicate if the pair exists.
func (s *FollowStore) Create(followerID, followingID uuid.UUID) (*models.Follow, error) {
	f := &models.Follow{}
	err := s.db.QueryRow(`
		INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)
		RETURNING id, follower_id, following_id, created_at
	`, followerID, followingID).Scan(&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("create follow: %w", err)
	}
	return f, nil
}

// Delete removes the follow row for a pair. Returns the number of rows
// removed so callers can skip counter decrements for no-op unfollows.
func (s *FollowStore) Delete(followerID, followingID uuid.UUID) (int, error) {
	res, err := s.db.Exec(`
		DELETE FROM follows WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	if err != nil {
		return 0, fmt.Errorf("delete follow: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete follow rows affected: %w", err)
	}
	return int(n), nil
}

// FollowingIDs returns the IDs of everyone the user follows. Feeds the
// activity feed query.
func (s *FollowStore) FollowingIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(`SELECT following_id FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list following ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan following id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Followers returns the users following userID, newest first, as cards.
func (s *FollowStore) Followers(userID uuid.UUID) ([]models.Follow, error) {
	return s.listWithCards(`
		SELECT f.id, f.follower_id, f.following_id, f.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`, userID, true)
}

// Following returns the users userID follows, newest first, as cards.
func (s *FollowStore) Following(userID uuid.UUID) ([]models.Follow, error) {
	return s.listWithCards(`
		SELECT f.id, f.follower_id, f.following_id, f.created_at,
		       u.id, u.username, u.display_name, u.avatar_url, u.headline, u.is_verified
		FROM follows f JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`, userID, false)
}

func (s *FollowStore) listWithCards(query string, userID uuid.UUID, asFollower bool) ([]models.Follow, error) {
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer rows.Close()

	var follows []models.Follow
	for rows.Next() {
		f := models.Follow{}
		card := &models.AuthorCard{}
		if err := rows.Scan(
			&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt,
			&card.ID, &card.Username, &card.DisplayName,
			&card.AvatarURL, &card.Headline, &card.IsVerified,
		); err != nil {
			return nil, fmt.Errorf("scan follow: %w", err)
		}
		if asFollower {
			f.Follower = card
		} else {
			f.Following = card
		}
		follows = append(follows, f)
	}
	return follows, rows.Err()
}

// CountSince counts follows gained by a user after the given timestamp.
// Backs the follower-gain analytics panel.
func (s *FollowStore) CountSince(userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM follows WHERE following_id = $1 AND created_at >= $2
	`, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count follows since: %w", err)
	}
	return count, nil
}
