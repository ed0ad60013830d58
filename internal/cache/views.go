// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// views.go deduplicates article view counting. Each (viewer, article)
// pairing counts at most once per window; the dedup key is the viewer's
// user ID or, for anonymous readers, their client IP.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix = "view:"

	// DefaultViewWindow is how long a repeat view by the same viewer is
	// suppressed.
	DefaultViewWindow = 30 * time.Minute
)

// ViewDedup gates view-count increments through Valkey SETNX keys.
type ViewDedup struct {
	client *redis.Client
	window time.Duration
}

// NewViewDedup creates a ViewDedup with the given suppression window.
func NewViewDedup(client *redis.Client, window time.Duration) *ViewDedup {
	if window == 0 {
		window = DefaultViewWindow
	}
	return &ViewDedup{client: client, window: window}
}

// ShouldCount reports whether this viewer's view of the article should
// increment the counter. The first call in a window returns true and arms
// the suppression key. On Valkey errors the view counts.
func (v *ViewDedup) ShouldCount(ctx context.Context, articleID uuid.UUID, viewerKey string) bool {
	key := viewKeyPrefix + articleID.String() + ":" + viewerKey
	ok, err := v.client.SetNX(ctx, key, 1, v.window).Result()
	if err != nil {
		slog.Warn("view dedup error", "article_id", articleID, "error", err)
		return true
	}
	return ok
}
