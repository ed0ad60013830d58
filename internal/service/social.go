// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/markdown"
	"inkwell/internal/mention"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// snippetMaxLen caps the plain-text preview stored on bookmarks.
const snippetMaxLen = 200

// SocialService implements the like/comment/bookmark/follow fan-out. Each
// state change emits its notifications and activity entries as side effects;
// best-effort effects log and continue.
type SocialService struct {
	articles      *store.ArticleStore
	users         *store.UserStore
	likes         *store.LikeStore
	bookmarks     *store.BookmarkStore
	comments      *store.CommentStore
	follows       *store.FollowStore
	notifications *store.NotificationStore
	activity      *store.ActivityStore
}

// NewSocialService wires a SocialService.
func NewSocialService(
	articles *store.ArticleStore,
	users *store.UserStore,
	likes *store.LikeStore,
	bookmarks *store.BookmarkStore,
	comments *store.CommentStore,
	follows *store.FollowStore,
	notifications *store.NotificationStore,
	activity *store.ActivityStore,
) *SocialService {
	return &SocialService{
		articles:      articles,
		users:         users,
		likes:         likes,
		bookmarks:     bookmarks,
		comments:      comments,
		follows:       follows,
		notifications: notifications,
		activity:      activity,
	}
}

// visibleArticle fetches an article and hides non-published ones from
// everyone but their author.
func (s *SocialService) visibleArticle(articleID, viewerID uuid.UUID) (*models.Article, error) {
	a, err := s.articles.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if a == nil || !a.VisibleTo(viewerID) {
		return nil, apperr.NotFound("article not found")
	}
	return a, nil
}

// Like records a like. Idempotent: liking an already-liked article returns
// the existing row. The first like notifies the author and logs activity.
func (s *SocialService) Like(articleID, actorID uuid.UUID) (*models.Like, error) {
	a, err := s.visibleArticle(articleID, actorID)
	if err != nil {
		return nil, err
	}

	like, err := s.likes.Create(actorID, articleID)
	if errors.Is(err, store.ErrDuplicate) {
		return s.likes.Find(actorID, articleID)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.activity.Create(actorID, models.ActivityArticleLiked, &articleID, nil); err != nil {
		slog.Warn("log like activity", "article_id", articleID, "error", err)
	}
	if a.AuthorID != actorID {
		s.notify(a.AuthorID, models.NotificationLike, map[string]any{
			"article_id": articleID,
			"user_id":    actorID,
		})
	}
	return like, nil
}

// Unlike removes a like if present.
func (s *SocialService) Unlike(articleID, actorID uuid.UUID) error {
	return s.likes.Delete(actorID, articleID)
}

// Comment posts a comment, optionally as a reply one level under a
// top-level comment on the same article. Fan-out: the parent's author is
// notified of a reply, the article's author of a comment, and each distinct
// resolvable @username mention gets one mention notification. Self
// notifications are suppressed and mention failures never fail the comment.
func (s *SocialService) Comment(articleID, actorID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("comment content is required")
	}
	a, err := s.visibleArticle(articleID, actorID)
	if err != nil {
		return nil, err
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = s.comments.FindByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.IsDeleted() {
			return nil, apperr.NotFound("parent comment not found")
		}
		if parent.ArticleID != articleID {
			return nil, apperr.Validation("parent comment belongs to a different article")
		}
		if parent.IsReply() {
			return nil, apperr.Validation("replies may only nest one level")
		}
	}

	c, err := s.comments.Create(articleID, actorID, parentID, content)
	if err != nil {
		return nil, err
	}

	if _, err := s.activity.Create(actorID, models.ActivityCommentAdded, &c.ID, nil); err != nil {
		slog.Warn("log comment activity", "comment_id", c.ID, "error", err)
	}

	notifiedAuthor := false
	if parent != nil && parent.UserID != actorID {
		s.notify(parent.UserID, models.NotificationReply, map[string]any{
			"article_id": articleID,
			"comment_id": c.ID,
			"user_id":    actorID,
		})
		notifiedAuthor = parent.UserID == a.AuthorID
	}
	if a.AuthorID != actorID && !notifiedAuthor {
		s.notify(a.AuthorID, models.NotificationComment, map[string]any{
			"article_id": articleID,
			"comment_id": c.ID,
			"user_id":    actorID,
		})
	}

	s.notifyMentions(c, actorID)
	return c, nil
}

// notifyMentions resolves @username mentions in the comment and emits one
// mention notification per distinct resolvable user. Best-effort.
func (s *SocialService) notifyMentions(c *models.Comment, actorID uuid.UUID) {
	usernames := mention.Extract(c.Content)
	if len(usernames) == 0 {
		return
	}
	resolved, err := s.users.ResolveUsernames(usernames)
	if err != nil {
		slog.Warn("resolve mentions", "comment_id", c.ID, "error", err)
		return
	}
	for _, username := range usernames {
		userID, ok := resolved[username]
		if !ok || userID == actorID {
			continue
		}
		s.notify(userID, models.NotificationMention, map[string]any{
			"article_id": c.ArticleID,
			"comment_id": c.ID,
			"user_id":    actorID,
		})
	}
}

// UpdateComment edits a comment's content. Author only.
func (s *SocialService) UpdateComment(commentID, actorID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("comment content is required")
	}
	c, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted() {
		return nil, apperr.NotFound("comment not found")
	}
	if c.UserID != actorID {
		return nil, apperr.Authorization("only the comment author may edit it")
	}
	if err := s.comments.UpdateContent(commentID, content); err != nil {
		return nil, err
	}
	c.Content = content
	return c, nil
}

// DeleteComment soft-deletes a comment (author or admin) and returns the
// article's remaining live comment count.
func (s *SocialService) DeleteComment(commentID, actorID uuid.UUID, actorRole models.Role) (int, error) {
	c, err := s.comments.FindByID(commentID)
	if err != nil {
		return 0, err
	}
	if c == nil || c.IsDeleted() {
		return 0, apperr.NotFound("comment not found")
	}
	if c.UserID != actorID && actorRole != models.RoleAdmin {
		return 0, apperr.Authorization("not permitted to delete this comment")
	}
	if err := s.comments.SoftDelete(commentID); err != nil {
		return 0, err
	}
	return s.comments.LiveCountByArticle(c.ArticleID)
}

// ListComments returns an article's live comments, oldest first.
func (s *SocialService) ListComments(articleID, viewerID uuid.UUID) ([]models.Comment, error) {
	if _, err := s.visibleArticle(articleID, viewerID); err != nil {
		return nil, err
	}
	return s.comments.ListByArticle(articleID)
}

// ListLikes returns an article's likes with user cards, newest first.
func (s *SocialService) ListLikes(articleID, viewerID uuid.UUID) ([]models.Like, error) {
	if _, err := s.visibleArticle(articleID, viewerID); err != nil {
		return nil, err
	}
	return s.likes.ListByArticle(articleID)
}

// Bookmark records a bookmark. Idempotent like Like. A plain-text snippet
// of the article is prefetched onto the row, best-effort.
func (s *SocialService) Bookmark(articleID, actorID uuid.UUID) (*models.Bookmark, error) {
	a, err := s.visibleArticle(articleID, actorID)
	if err != nil {
		return nil, err
	}

	b, err := s.bookmarks.Create(actorID, articleID)
	if errors.Is(err, store.ErrDuplicate) {
		return s.bookmarks.Find(actorID, articleID)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.activity.Create(actorID, models.ActivityArticleBookmarked, &articleID, nil); err != nil {
		slog.Warn("log bookmark activity", "article_id", articleID, "error", err)
	}
	if snippet := prefetchSnippet(a.Content); snippet != "" {
		if err := s.bookmarks.SetSnippet(b.ID, snippet); err != nil {
			slog.Warn("set bookmark snippet", "bookmark_id", b.ID, "error", err)
		} else {
			b.Snippet = &snippet
		}
	}
	return b, nil
}

// Unbookmark removes a bookmark if present.
func (s *SocialService) Unbookmark(articleID, actorID uuid.UUID) error {
	return s.bookmarks.Delete(actorID, articleID)
}

// ListBookmarks returns the actor's bookmarks with embedded articles.
func (s *SocialService) ListBookmarks(actorID uuid.UUID) ([]models.Bookmark, error) {
	return s.bookmarks.ListByUser(actorID)
}

// Follow records that the actor follows another user. Self-follow is a
// conflict. Idempotent; the first follow adjusts both users' counters,
// notifies the followee and logs activity.
func (s *SocialService) Follow(followingID, actorID uuid.UUID) (*models.Follow, error) {
	if followingID == actorID {
		return nil, apperr.Conflict("cannot follow yourself")
	}
	target, err := s.users.FindByID(followingID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.NotFound("user not found")
	}

	f, err := s.follows.Create(actorID, followingID)
	if errors.Is(err, store.ErrDuplicate) {
		return s.follows.Find(actorID, followingID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.users.AdjustFollowCounts(actorID, followingID, 1); err != nil {
		slog.Warn("adjust follow counts", "error", err)
	}
	if _, err := s.activity.Create(actorID, models.ActivityUserFollowed, &followingID, nil); err != nil {
		slog.Warn("log follow activity", "error", err)
	}
	s.notify(followingID, models.NotificationFollow, map[string]any{
		"user_id": actorID,
	})
	return f, nil
}

// Unfollow removes a follow, decrementing both counters only when a row
// was actually removed.
func (s *SocialService) Unfollow(followingID, actorID uuid.UUID) error {
	n, err := s.follows.Delete(actorID, followingID)
	if err != nil {
		return err
	}
	if n > 0 {
		if err := s.users.AdjustFollowCounts(actorID, followingID, -1); err != nil {
			slog.Warn("adjust follow counts", "error", err)
		}
	}
	return nil
}

// notify writes one notification, logging failures.
func (s *SocialService) notify(userID uuid.UUID, kind models.NotificationType, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("encode notification payload", "type", kind, "error", err)
		return
	}
	if _, err := s.notifications.Create(userID, kind, data); err != nil {
		slog.Warn("create notification", "type", kind, "user_id", userID, "error", err)
	}
}

// prefetchSnippet renders the article body and extracts a short plain-text
// preview. Returns "" on any failure.
func prefetchSnippet(content string) string {
	html, err := markdown.ToHTML(content)
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	runes := []rune(text)
	if len(runes) > snippetMaxLen {
		text = string(runes[:snippetMaxLen])
	}
	return text
}
