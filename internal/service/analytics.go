package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/cache"
	"inkwell/internal/store"
)

// followerGainWindow is the lookback for the follower-gain panel.
const followerGainWindow = 30 * 24 * time.Hour

// AnalyticsService serves the top-articles board and per-author summaries.
type AnalyticsService struct {
	analytics *store.AnalyticsStore
	activity  *store.ActivityStore
	follows   *store.FollowStore
	top       *cache.TopCache
}

// NewAnalyticsService wires an AnalyticsService. topCache may be nil to
// bypass caching.
func NewAnalyticsService(analytics *store.AnalyticsStore, activity *store.ActivityStore, follows *store.FollowStore, topCache *cache.TopCache) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, activity: activity, follows: follows, top: topCache}
}

// TopArticles returns the most viewed published articles, served from the
// Valkey cache when warm.
func (s *AnalyticsService) TopArticles(ctx context.Context, limit int) ([]store.TopArticle, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	if s.top != nil {
		var cached []store.TopArticle
		if s.top.Get(ctx, &cached) && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	top, err := s.analytics.TopArticles(limit)
	if err != nil {
		return nil, err
	}
	if s.top != nil {
		s.top.Set(ctx, top)
	}
	return top, nil
}

// AuthorSummary holds one author's analytics panel.
type AuthorSummary struct {
	Stats  *store.AuthorStats `json:"stats"`
	Series []store.DailyCount `json:"daily_activity"`
}

// ForAuthor aggregates an author's article stats, 30-day follower gain and
// 30-day daily activity series.
func (s *AnalyticsService) ForAuthor(userID uuid.UUID) (*AuthorSummary, error) {
	stats, err := s.analytics.AuthorSummary(userID)
	if err != nil {
		return nil, err
	}
	stats.FollowersGained, err = s.follows.CountSince(userID, time.Now().Add(-followerGainWindow))
	if err != nil {
		return nil, err
	}
	series, err := s.activity.DailySeries(userID, 30)
	if err != nil {
		return nil, err
	}
	return &AuthorSummary{Stats: stats, Series: series}, nil
}

// SiteActivity returns the platform-wide daily activity series over the
// last `days` days, capped at 90.
func (s *AnalyticsService) SiteActivity(days int) ([]store.DailyCount, error) {
	if days < 1 || days > 90 {
		days = 30
	}
	return s.activity.DailySeriesAll(days)
}
