// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on an article. Replies are one level deep:
// ParentID points at a top-level comment, never at another reply.
//
// Comments are soft-deleted: DeletedAt is set, the row is retained so that
// moderation reports filed against the comment keep their context.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	ArticleID uuid.UUID  `json:"article_id"`
	UserID    uuid.UUID  `json:"user_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Author *AuthorCard `json:"author,omitempty"`
}

// IsDeleted returns true if the comment has been soft-deleted.
func (c *Comment) IsDeleted() bool {
	return c.DeletedAt != nil
}

// IsReply returns true if the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
