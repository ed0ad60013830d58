// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArticleStatus represents the publishing state of an article.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusScheduled ArticleStatus = "scheduled"
)

// Article is an authored post. Status transitions are enforced by the
// article service; the publish scheduler performs the scheduled→published
// transition only.
//
// Invariants: status=scheduled implies ScheduledFor is set and was in the
// future at transition time; status=published implies PublishedAt is set;
// status=draft implies PublishedAt is nil.
type Article struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Summary      string        `json:"summary"`
	Content      string        `json:"content"`
	Status       ArticleStatus `json:"status"`
	PublishedAt  *time.Time    `json:"published_at,omitempty"`
	ScheduledFor *time.Time    `json:"scheduled_for,omitempty"`
	Views        int           `json:"views"`
	IsFeatured   bool          `json:"is_featured"`
	AuthorID     uuid.UUID     `json:"author_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Joined data, populated by list/detail queries.
	Author        *AuthorCard `json:"author,omitempty"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	ContentHTML   string      `json:"content_html,omitempty"`
}

// IsPublished returns true if the article is in published status.
func (a *Article) IsPublished() bool {
	return a.Status == ArticleStatusPublished
}

// VisibleTo reports whether a viewer may read the article outside preview
// mode. Non-published articles are visible only to their author; callers
// treat a false result as not-found so drafts are indistinguishable from
// absent articles.
func (a *Article) VisibleTo(viewerID uuid.UUID) bool {
	if a.IsPublished() {
		return true
	}
	return viewerID != uuid.Nil && a.AuthorID == viewerID
}
