// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// User represents a platform account. Staff accounts (admin/editor) may
// additionally enroll in TOTP 2FA.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"` // Never serialize the hash
	DisplayName    string    `json:"display_name"`
	Bio            *string   `json:"bio,omitempty"`
	Headline       *string   `json:"headline,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Website        *string   `json:"website,omitempty"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	SocialLinks    *string   `json:"social_links,omitempty"` // JSON blob managed by clients
	Role           Role      `json:"role"`
	IsVerified     bool      `json:"is_verified"`
	TOTPSecret     *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled    bool      `json:"totp_enabled"`
	ArticlesCount  int       `json:"articles_count"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff returns true for roles allowed to publish and schedule articles.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// AuthorCard is the reduced author shape joined onto articles, comments,
// likes, and feed entries.
type AuthorCard struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Headline    *string   `json:"headline,omitempty"`
	IsVerified  bool      `json:"is_verified"`
}

// Card returns the user's public author card.
func (u *User) Card() AuthorCard {
	return AuthorCard{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Headline:    u.Headline,
		IsVerified:  u.IsVerified,
	}
}
