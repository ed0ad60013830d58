// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func TestArticleStoreCreateFind(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	u := testUser(t, db, "article_create")
	a := testArticle(t, db, u.ID, models.ArticleStatusDraft)

	if a.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if a.Status != models.ArticleStatusDraft {
		t.Errorf("status: got %q, want draft", a.Status)
	}
	if a.PublishedAt != nil {
		t.Error("draft must have nil published_at")
	}

	got, err := s.FindWithAuthor(a.ID)
	if err != nil {
		t.Fatalf("FindWithAuthor: %v", err)
	}
	if got == nil {
		t.Fatal("expected article, got nil")
	}
	if got.Author == nil || got.Author.ID != u.ID {
		t.Error("expected joined author card")
	}
	if got.LikesCount != 0 || got.CommentsCount != 0 {
		t.Error("fresh article must have zero counts")
	}
}

func TestArticleStorePromoteDue(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	u := testUser(t, db, "promote")

	past := time.Now().Add(-time.Hour).UTC().Truncate(time.Microsecond)
	future := time.Now().Add(time.Hour)

	due := testArticle(t, db, u.ID, models.ArticleStatusDraft)
	due.Status = models.ArticleStatusScheduled
	due.ScheduledFor = &past
	if err := s.Update(due); err != nil {
		t.Fatalf("Update due: %v", err)
	}

	notDue := testArticle(t, db, u.ID, models.ArticleStatusDraft)
	notDue.Status = models.ArticleStatusScheduled
	notDue.ScheduledFor = &future
	if err := s.Update(notDue); err != nil {
		t.Fatalf("Update notDue: %v", err)
	}

	n, err := s.PromoteDue(time.Now())
	if err != nil {
		t.Fatalf("PromoteDue: %v", err)
	}
	if n < 1 {
		t.Errorf("expected at least 1 promotion, got %d", n)
	}

	got, err := s.FindByID(due.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Status != models.ArticleStatusPublished {
		t.Errorf("due article status: got %q, want published", got.Status)
	}
	// published_at must be the original scheduled time, not promotion time.
	if got.PublishedAt == nil || !got.PublishedAt.Equal(past) {
		t.Errorf("published_at: got %v, want %v", got.PublishedAt, past)
	}
	if got.ScheduledFor != nil {
		t.Error("promoted article must clear scheduled_for")
	}

	later, err := s.FindByID(notDue.ID)
	if err != nil {
		t.Fatalf("FindByID notDue: %v", err)
	}
	if later.Status != models.ArticleStatusScheduled {
		t.Errorf("future article status: got %q, want scheduled", later.Status)
	}

	// Re-running with the same clock promotes nothing new.
	again, err := s.PromoteDue(time.Now())
	if err != nil {
		t.Fatalf("PromoteDue again: %v", err)
	}
	if again != 0 {
		t.Errorf("expected idempotent re-run, promoted %d", again)
	}
}

func TestArticleStoreListFilters(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	u := testUser(t, db, "listfilter")

	now := time.Now().UTC()
	pub := testArticle(t, db, u.ID, models.ArticleStatusDraft)
	pub.Status = models.ArticleStatusPublished
	pub.PublishedAt = &now
	if err := s.Update(pub); err != nil {
		t.Fatalf("Update: %v", err)
	}
	testArticle(t, db, u.ID, models.ArticleStatusDraft)

	all, total, err := s.List(ArticleListFilter{AuthorID: u.ID, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List by author: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("author list: got %d/%d, want 2/2", len(all), total)
	}

	published, total, err := s.List(ArticleListFilter{
		AuthorID: u.ID,
		Statuses: []models.ArticleStatus{models.ArticleStatusPublished},
		Page:     1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("List published: %v", err)
	}
	if total != 1 || len(published) != 1 {
		t.Fatalf("published list: got %d/%d, want 1/1", len(published), total)
	}
	if published[0].ID != pub.ID {
		t.Error("wrong article in published filter")
	}
}

func TestArticleStoreSearch(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	u := testUser(t, db, "search")

	now := time.Now().UTC()
	a := &models.Article{
		Title:    "Kubernetes Networking Deep Dive",
		Summary:  "How pods talk to each other",
		Content:  "An exploration of overlay networks and service meshes.",
		Status:   models.ArticleStatusPublished,
		AuthorID: u.ID,
	}
	created, err := s.Create(a)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	created.PublishedAt = &now
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	draft := &models.Article{
		Title:    "Kubernetes Secrets Management",
		Summary:  "draft notes",
		Content:  "not yet public",
		Status:   models.ArticleStatusDraft,
		AuthorID: u.ID,
	}
	if _, err := s.Create(draft); err != nil {
		t.Fatalf("Create draft: %v", err)
	}

	ids, err := s.SearchFTS("kubernetes networking", 20)
	if err != nil {
		t.Fatalf("SearchFTS: %v", err)
	}
	if !containsID(ids, created.ID) {
		t.Error("FTS should match the published article")
	}
	for _, id := range ids {
		if id != created.ID {
			got, _ := s.FindByID(id)
			if got != nil && got.Status != models.ArticleStatusPublished {
				t.Error("search must only surface published articles")
			}
		}
	}

	// Substring path matches partial words FTS would miss.
	sub, err := s.SearchSubstring("ubernete", 20)
	if err != nil {
		t.Fatalf("SearchSubstring: %v", err)
	}
	if !containsID(sub, created.ID) {
		t.Error("substring search should match partial title")
	}
}

func containsID(ids []uuid.UUID, want uuid.UUID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestArticleStoreIncrementViews(t *testing.T) {
	db := testDB(t)
	s := NewArticleStore(db)

	u := testUser(t, db, "views")
	a := testArticle(t, db, u.ID, models.ArticleStatusPublished)

	for i := 0; i < 3; i++ {
		if err := s.IncrementViews(a.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	got, err := s.FindByID(a.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Views != 3 {
		t.Errorf("views: got %d, want 3", got.Views)
	}
}
