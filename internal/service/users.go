package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// ProfileInput carries the editable profile fields. Nil means unchanged.
type ProfileInput struct {
	Username    *string
	DisplayName *string
	Bio         *string
	Headline    *string
	Location    *string
	Website     *string
	SocialLinks *string
}

// UserService owns profiles, user listings and avatar storage.
type UserService struct {
	users    *store.UserStore
	comments *store.CommentStore
	follows  *store.FollowStore
	storage  *storage.Client
}

// NewUserService wires a UserService. storageClient may be nil; avatar
// upload then fails with a validation error.
func NewUserService(users *store.UserStore, comments *store.CommentStore, follows *store.FollowStore, storageClient *storage.Client) *UserService {
	return &UserService{users: users, comments: comments, follows: follows, storage: storageClient}
}

// Get fetches a user by ID with their live comment count attached.
func (s *UserService) Get(id uuid.UUID) (*models.User, int, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, 0, err
	}
	if u == nil {
		return nil, 0, apperr.NotFound("user not found")
	}
	comments, err := s.comments.LiveCountByUser(id)
	if err != nil {
		return nil, 0, err
	}
	return u, comments, nil
}

// GetByUsername fetches a user by username with their live comment count.
func (s *UserService) GetByUsername(username string) (*models.User, int, error) {
	u, err := s.users.FindByUsername(strings.ToLower(username))
	if err != nil {
		return nil, 0, err
	}
	if u == nil {
		return nil, 0, apperr.NotFound("user not found")
	}
	comments, err := s.comments.LiveCountByUser(u.ID)
	if err != nil {
		return nil, 0, err
	}
	return u, comments, nil
}

// List searches users by username or display name.
func (s *UserService) List(query string, page, limit int) ([]models.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.users.List(strings.TrimSpace(query), limit, (page-1)*limit)
}

// UpdateProfile applies profile changes for the actor. A username change
// must keep the registration charset and stay unique.
func (s *UserService) UpdateProfile(actorID uuid.UUID, in ProfileInput) (*models.User, error) {
	u, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	if in.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*in.Username))
		if !usernamePattern.MatchString(username) {
			return nil, apperr.Validation("username must be 3-30 characters of a-z, 0-9 or _")
		}
		u.Username = username
	}
	if in.DisplayName != nil {
		if strings.TrimSpace(*in.DisplayName) == "" {
			return nil, apperr.Validation("display name cannot be empty")
		}
		u.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Bio != nil {
		u.Bio = in.Bio
	}
	if in.Headline != nil {
		u.Headline = in.Headline
	}
	if in.Location != nil {
		u.Location = in.Location
	}
	if in.Website != nil {
		u.Website = in.Website
	}
	if in.SocialLinks != nil {
		u.SocialLinks = in.SocialLinks
	}

	if err := s.users.UpdateProfile(u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("username %q is taken", u.Username)
		}
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores the avatar and records its public URL on the user.
func (s *UserService) UploadAvatar(ctx context.Context, actorID uuid.UUID, contentType string, body io.Reader, size int64) (string, error) {
	if s.storage == nil {
		return "", apperr.Validation("avatar storage is not configured")
	}

	var ext string
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	default:
		return "", apperr.Validation("unsupported avatar content type %q", contentType)
	}

	u, err := s.users.FindByID(actorID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", apperr.NotFound("user not found")
	}

	key := storage.AvatarKey(actorID, ext)
	if err := s.storage.Upload(ctx, key, contentType, body, size); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	url := s.storage.FileURL(key)
	if err := s.users.SetAvatarURL(actorID, &url); err != nil {
		return "", err
	}

	// A new extension means a new key, so the previous object would be
	// orphaned. Removal is best-effort.
	if u.AvatarURL != nil {
		if old, ok := s.storage.ExtractKey(*u.AvatarURL); ok && old != key {
			if err := s.storage.Delete(ctx, old); err != nil {
				slog.Warn("delete replaced avatar", "user_id", actorID, "key", old, "error", err)
			}
		}
	}
	return url, nil
}

// Followers lists the followers of a user with cards.
func (s *UserService) Followers(userID uuid.UUID) ([]models.Follow, error) {
	return s.follows.Followers(userID)
}

// Following lists who a user follows with cards.
func (s *UserService) Following(userID uuid.UUID) ([]models.Follow, error) {
	return s.follows.Following(userID)
}

// RecomputeStats rebuilds one user's denormalized counters from base rows.
func (s *UserService) RecomputeStats(userID uuid.UUID) error {
	if err := s.users.RecomputeStats(userID); err != nil {
		slog.Warn("recompute user stats", "user_id", userID, "error", err)
		return err
	}
	return nil
}
