package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Activity types recorded in the append-only activity log. The log feeds
// the follow-based activity feed and the daily activity analytics.
const (
	ActivityArticleCreated    = "article_created"
	ActivityArticleLiked      = "article_liked"
	ActivityCommentAdded      = "comment_added"
	ActivityArticleBookmarked = "article_bookmarked"
	ActivityUserFollowed      = "user_followed"
)

// ActivityLog is one append-only record of a user performing a typed action
// against an optional entity.
type ActivityLog struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Type      string          `json:"type"`
	EntityID  *uuid.UUID      `json:"entity_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`

	User *AuthorCard `json:"user,omitempty"`
}
