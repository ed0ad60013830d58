// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/cache"
	"inkwell/internal/markdown"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// ArticleInput carries the writable article fields. On update, zero values
// (empty strings, nil pointers) mean "leave unchanged".
type ArticleInput struct {
	Title        string
	Summary      string
	Content      string
	Status       models.ArticleStatus
	ScheduledFor *time.Time
	PublishedAt  *time.Time
	IsFeatured   *bool
}

// ArticleService owns the article lifecycle: create, update, delete, get
// with visibility rules, and filtered listing.
type ArticleService struct {
	articles *store.ArticleStore
	users    *store.UserStore
	collabs  *store.CollaboratorStore
	activity *store.ActivityStore
	views    *cache.ViewDedup
}

// NewArticleService wires an ArticleService.
func NewArticleService(
	articles *store.ArticleStore,
	users *store.UserStore,
	collabs *store.CollaboratorStore,
	activity *store.ActivityStore,
	views *cache.ViewDedup,
) *ArticleService {
	return &ArticleService{
		articles: articles,
		users:    users,
		collabs:  collabs,
		activity: activity,
		views:    views,
	}
}

// Create makes a new article for the actor. Status defaults to draft.
func (s *ArticleService) Create(in ArticleInput, actorID uuid.UUID, actorRole models.Role) (*models.Article, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.Status == "" {
		in.Status = models.ArticleStatusDraft
	}

	a := &models.Article{
		Title:    strings.TrimSpace(in.Title),
		Summary:  in.Summary,
		Content:  in.Content,
		AuthorID: actorID,
	}
	if err := applyStatus(a, in, actorRole); err != nil {
		return nil, err
	}
	if in.IsFeatured != nil {
		if actorRole != models.RoleAdmin {
			return nil, apperr.Authorization("only admins may feature articles")
		}
		a.IsFeatured = *in.IsFeatured
	}

	created, err := s.articles.Create(a)
	if err != nil {
		return nil, err
	}

	if err := s.users.AdjustArticlesCount(actorID, 1); err != nil {
		slog.Warn("adjust articles count", "user_id", actorID, "error", err)
	}
	if _, err := s.activity.Create(actorID, models.ActivityArticleCreated, &created.ID, nil); err != nil {
		slog.Warn("log article activity", "article_id", created.ID, "error", err)
	}
	return created, nil
}

// Update modifies an article. Permitted to the author, a co_author
// collaborator, or an admin.
func (s *ArticleService) Update(id uuid.UUID, in ArticleInput, actorID uuid.UUID, actorRole models.Role) (*models.Article, error) {
	a, err := s.articles.FindByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("article not found")
	}
	if err := s.requireEditable(a, actorID, actorRole); err != nil {
		return nil, err
	}

	if in.Title != "" {
		a.Title = strings.TrimSpace(in.Title)
	}
	if in.Summary != "" {
		a.Summary = in.Summary
	}
	if in.Content != "" {
		a.Content = in.Content
	}
	if in.Status != "" {
		if err := applyStatus(a, in, actorRole); err != nil {
			return nil, err
		}
	}
	if in.IsFeatured != nil {
		if actorRole != models.RoleAdmin {
			return nil, apperr.Authorization("only admins may feature articles")
		}
		a.IsFeatured = *in.IsFeatured
	}

	if err := s.articles.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an article and decrements the author's article count.
func (s *ArticleService) Delete(id, actorID uuid.UUID, actorRole models.Role) error {
	a, err := s.articles.FindByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return apperr.NotFound("article not found")
	}
	if err := s.requireEditable(a, actorID, actorRole); err != nil {
		return err
	}

	if err := s.articles.Delete(id); err != nil {
		return err
	}
	if err := s.users.AdjustArticlesCount(a.AuthorID, -1); err != nil {
		slog.Warn("adjust articles count", "user_id", a.AuthorID, "error", err)
	}
	return nil
}

// Get fetches one article with author and counters joined, enforcing
// visibility. Outside preview mode a non-published article is visible only
// to its author; preview additionally allows admins. Hidden articles report
// not-found. Reads by anyone but the author count a deduplicated view.
// viewerKey identifies the viewer for dedup: user ID or client address.
func (s *ArticleService) Get(ctx context.Context, id, viewerID uuid.UUID, viewerRole models.Role, preview bool, viewerKey string) (*models.Article, error) {
	a, err := s.articles.FindWithAuthor(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("article not found")
	}

	if !a.VisibleTo(viewerID) {
		if !(preview && viewerRole == models.RoleAdmin) {
			return nil, apperr.NotFound("article not found")
		}
	}

	if a.IsPublished() && viewerID != a.AuthorID {
		if s.views == nil || s.views.ShouldCount(ctx, a.ID, viewerKey) {
			if err := s.articles.IncrementViews(a.ID); err != nil {
				slog.Warn("increment views", "article_id", a.ID, "error", err)
			} else {
				a.Views++
			}
		}
	}

	html, err := markdown.ToHTML(a.Content)
	if err != nil {
		slog.Warn("render article html", "article_id", a.ID, "error", err)
	} else {
		a.ContentHTML = html
	}
	return a, nil
}

// List returns articles matching the filter. Status filters are restricted
// to staff, except over the actor's own articles; everyone else sees
// published articles only.
func (s *ArticleService) List(f store.ArticleListFilter, actorID uuid.UUID, actorRole models.Role) ([]models.Article, int, error) {
	own := f.AuthorID != uuid.Nil && f.AuthorID == actorID
	if len(f.Statuses) > 0 && !staff(actorRole) && !own {
		return nil, 0, apperr.Authorization("status filter not permitted")
	}
	if len(f.Statuses) == 0 && !own {
		f.Statuses = []models.ArticleStatus{models.ArticleStatusPublished}
	}
	return s.articles.List(f)
}

// requireEditable enforces the ownership rule shared by update and delete.
func (s *ArticleService) requireEditable(a *models.Article, actorID uuid.UUID, actorRole models.Role) error {
	if actorRole == models.RoleAdmin || a.AuthorID == actorID {
		return nil
	}
	collab, err := s.collabs.Find(a.ID, actorID)
	if err != nil {
		return err
	}
	if collab != nil && collab.CanEdit() {
		return nil
	}
	return apperr.Authorization("not permitted to modify this article")
}

// applyStatus enforces the status transition rules and stamps the lifecycle
// timestamps.
func applyStatus(a *models.Article, in ArticleInput, actorRole models.Role) error {
	switch in.Status {
	case models.ArticleStatusDraft:
		a.Status = models.ArticleStatusDraft
		a.PublishedAt = nil

	case models.ArticleStatusPublished:
		if !staff(actorRole) {
			return apperr.Authorization("role may not publish articles")
		}
		a.Status = models.ArticleStatusPublished
		if in.PublishedAt != nil {
			a.PublishedAt = in.PublishedAt
		} else if a.PublishedAt == nil {
			now := time.Now()
			a.PublishedAt = &now
		}
		a.ScheduledFor = nil

	case models.ArticleStatusScheduled:
		if !staff(actorRole) {
			return apperr.Authorization("role may not schedule articles")
		}
		if in.ScheduledFor == nil {
			return apperr.Validation("scheduled_for is required for scheduled status")
		}
		if !in.ScheduledFor.After(time.Now()) {
			return apperr.Validation("scheduled_for must be in the future")
		}
		a.Status = models.ArticleStatusScheduled
		a.ScheduledFor = in.ScheduledFor
		a.PublishedAt = nil

	default:
		return apperr.Validation("unknown status %q", in.Status)
	}
	return nil
}
