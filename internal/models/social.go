package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is a unique (user, article) pairing. Creation is idempotent: liking
// an already-liked article returns the existing row.
type Like struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ArticleID uuid.UUID `json:"article_id"`
	CreatedAt time.Time `json:"created_at"`

	User *AuthorCard `json:"user,omitempty"`
}

// Bookmark is a unique (user, article) pairing with an optional prefetched
// plain-text snippet of the article for list previews.
type Bookmark struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ArticleID uuid.UUID `json:"article_id"`
	Snippet   *string   `json:"snippet,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Article *Article `json:"article,omitempty"`
}

// Follow records that follower follows following. Self-follows are rejected
// at the service layer; the pairing is unique.
type Follow struct {
	ID          uuid.UUID `json:"id"`
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  *AuthorCard `json:"follower,omitempty"`
	Following *AuthorCard `json:"following,omitempty"`
}
