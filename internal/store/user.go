// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/models"
)

// userColumns is the canonical column list scanned into models.User.
const userColumns = `id, email, username, password_hash, display_name, bio, headline,
	location, website, avatar_url, social_links, role, is_verified,
	totp_secret, totp_enabled, articles_count, followers_count, following_count,
	created_at, updated_at`

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Bio,
		&u.Headline, &u.Location, &u.Website, &u.AvatarURL, &u.SocialLinks,
		&u.Role, &u.IsVerified, &u.TOTPSecret, &u.TOTPEnabled,
		&u.ArticlesCount, &u.FollowersCount, &u.FollowingCount,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByUsername retrieves a user by their username. Returns nil if not found.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

// List returns users ordered newest first, optionally filtered by a
// case-insensitive substring across display name, username, and bio.
func (s *UserStore) List(search string, limit, offset int) ([]models.User, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE display_name ILIKE $1 OR username ILIKE $1 OR bio ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := s.db.Query(fmt.Sprintf(
		`SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password.
// Returns ErrDuplicate if the email or username is already taken.
func (s *UserStore) Create(email, username, password, displayName string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := scanUser(s.db.QueryRow(`
		INSERT INTO users (email, username, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		email, username, string(hash), displayName, role))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateProfile updates the mutable profile fields of a user.
// Returns ErrDuplicate if the new username is already taken.
func (s *UserStore) UpdateProfile(u *models.User) error {
	_, err := s.db.Exec(`
		UPDATE users SET
			username = $1, display_name = $2, bio = $3, headline = $4,
			location = $5, website = $6, avatar_url = $7, social_links = $8,
			updated_at = NOW()
		WHERE id = $9
	`, u.Username, u.DisplayName, u.Bio, u.Headline,
		u.Location, u.Website, u.AvatarURL, u.SocialLinks, u.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

// SetAvatarURL stores the avatar object URL for a user.
func (s *UserStore) SetAvatarURL(userID uuid.UUID, url *string) error {
	_, err := s.db.Exec(`UPDATE users SET avatar_url = $1, updated_at = NOW() WHERE id = $2`, url, userID)
	if err != nil {
		return fmt.Errorf("set avatar url: %w", err)
	}
	return nil
}

// AdjustArticlesCount shifts the denormalized article counter by delta.
// The increment is not atomic with the article write; drift is corrected by
// RecomputeStats.
func (s *UserStore) AdjustArticlesCount(userID uuid.UUID, delta int) error {
	_, err := s.db.Exec(`
		UPDATE users SET articles_count = GREATEST(articles_count + $1, 0), updated_at = NOW()
		WHERE id = $2
	`, delta, userID)
	if err != nil {
		return fmt.Errorf("adjust articles count: %w", err)
	}
	return nil
}

// AdjustFollowCounts shifts following_count on the follower and
// followers_count on the followee by delta (+1 on follow, -1 on unfollow).
func (s *UserStore) AdjustFollowCounts(followerID, followingID uuid.UUID, delta int) error {
	_, err := s.db.Exec(`
		UPDATE users SET following_count = GREATEST(following_count + $1, 0), updated_at = NOW()
		WHERE id = $2
	`, delta, followerID)
	if err != nil {
		return fmt.Errorf("adjust following count: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE users SET followers_count = GREATEST(followers_count + $1, 0), updated_at = NOW()
		WHERE id = $2
	`, delta, followingID)
	if err != nil {
		return fmt.Errorf("adjust followers count: %w", err)
	}
	return nil
}

// RecomputeStats rewrites the denormalized counters for one user from the
// underlying rows. The counters must always be recomputable this way.
func (s *UserStore) RecomputeStats(userID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE users SET
			articles_count = (SELECT COUNT(*) FROM articles WHERE author_id = $1),
			followers_count = (SELECT COUNT(*) FROM follows WHERE following_id = $1),
			following_count = (SELECT COUNT(*) FROM follows WHERE follower_id = $1),
			updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("recompute user stats: %w", err)
	}
	return nil
}

// ListIDs returns all user IDs. Used by the counter reconciliation loop.
func (s *UserStore) ListIDs() ([]uuid.UUID, error) {
	rows, err := s.db.Query(`SELECT id FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetTOTPSecret saves the TOTP secret for a user (during 2FA setup).
func (s *UserStore) SetTOTPSecret(userID uuid.UUID, secret string) error {
	_, err := s.db.Exec(`
		UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, userID)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for a user (after successful code verification).
func (s *UserStore) EnableTOTP(userID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (s *UserStore) Delete(userID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// ResolveUsernames maps usernames to user IDs, silently skipping names that
// do not exist. Used for @mention resolution.
func (s *UserStore) ResolveUsernames(usernames []string) (map[string]uuid.UUID, error) {
	resolved := make(map[string]uuid.UUID, len(usernames))
	if len(usernames) == 0 {
		return resolved, nil
	}

	for _, name := range usernames {
		var id uuid.UUID
		err := s.db.QueryRow(`SELECT id FROM users WHERE username = $1`, name).Scan(&id)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve username %q: %w", name, err)
		}
		resolved[name] = id
	}
	return resolved, nil
}
