// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

func TestLikeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "like-author", models.RoleEditor)
	reader := f.newUser(t, "like-reader", models.RoleViewer)
	a := f.publishedArticle(t, author, "Liked twice")

	first, err := f.socialSvc.Like(a.ID, reader.ID)
	require.NoError(t, err)

	second, err := f.socialSvc.Like(a.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	likes, err := f.socialSvc.ListLikes(a.ID, reader.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	// The author gets exactly one like notification.
	assert.Len(t, f.notificationsOf(t, author.ID, models.NotificationLike), 1)
}

func TestLikeOwnArticleDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "selflike", models.RoleEditor)
	a := f.publishedArticle(t, author, "Self regard")

	_, err := f.socialSvc.Like(a.ID, author.ID)
	require.NoError(t, err)
	assert.Empty(t, f.notificationsOf(t, author.ID, models.NotificationLike))
}

func TestSelfFollowRejected(t *testing.T) {
	f := newFixture(t)
	u := f.newUser(t, "selffollow", models.RoleViewer)

	_, err := f.socialSvc.Follow(u.ID, u.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	// No follow row was written.
	rel, err := f.follows.Find(u.ID, u.ID)
	require.NoError(t, err)
	assert.Nil(t, rel)
}

func TestFollowNotifiesAndCounts(t *testing.T) {
	f := newFixture(t)
	fan := f.newUser(t, "follow-fan", models.RoleViewer)
	star := f.newUser(t, "follow-star", models.RoleEditor)

	_, err := f.socialSvc.Follow(star.ID, fan.ID)
	require.NoError(t, err)
	assert.Len(t, f.notificationsOf(t, star.ID, models.NotificationFollow), 1)

	// Repeat follow is a no-op, not an error.
	_, err = f.socialSvc.Follow(star.ID, fan.ID)
	require.NoError(t, err)
	assert.Len(t, f.notificationsOf(t, star.ID, models.NotificationFollow), 1)

	starAfter, err := f.users.FindByID(star.ID)
	require.NoError(t, err)
	require.NotNil(t, starAfter)
	assert.Equal(t, 1, starAfter.FollowersCount)

	require.NoError(t, f.socialSvc.Unfollow(star.ID, fan.ID))
	starAfter, err = f.users.FindByID(star.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, starAfter.FollowersCount)

	// Unfollowing again must not drive the counter negative.
	require.NoError(t, f.socialSvc.Unfollow(star.ID, fan.ID))
	starAfter, err = f.users.FindByID(star.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, starAfter.FollowersCount)
}

func TestCommentMentionNotifiesOnce(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "mention-author", models.RoleEditor)
	commenter := f.newUser(t, "mention-writer", models.RoleViewer)
	alice := f.newUser(t, "alice", models.RoleViewer)
	a := f.publishedArticle(t, author, "Mention me")

	_, err := f.socialSvc.Comment(a.ID, commenter.ID, nil, "@svc_alice nice!")
	require.NoError(t, err)

	assert.Len(t, f.notificationsOf(t, alice.ID, models.NotificationMention), 1)
	assert.Len(t, f.notificationsOf(t, author.ID, models.NotificationComment), 1)
}

func TestCommentMentionOfUnknownUserIgnored(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "ghost-author", models.RoleEditor)
	commenter := f.newUser(t, "ghost-writer", models.RoleViewer)
	a := f.publishedArticle(t, author, "Ghosts")

	c, err := f.socialSvc.Comment(a.ID, commenter.ID, nil, "hey @nobody_here_ever look at this")
	require.NoError(t, err)
	require.NotNil(t, c)

	var mentions int
	err = f.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE type = 'mention' AND payload->>'comment_id' = $1`, c.ID.String()).Scan(&mentions)
	require.NoError(t, err)
	assert.Zero(t, mentions)
}

func TestReplyNotifiesParentAuthorOnly(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "reply-author", models.RoleEditor)
	parentC := f.newUser(t, "reply-parent", models.RoleViewer)
	replier := f.newUser(t, "reply-child", models.RoleViewer)
	a := f.publishedArticle(t, author, "Threaded")

	parent, err := f.socialSvc.Comment(a.ID, parentC.ID, nil, "top level")
	require.NoError(t, err)

	_, err = f.socialSvc.Comment(a.ID, replier.ID, &parent.ID, "replying")
	require.NoError(t, err)

	assert.Len(t, f.notificationsOf(t, parentC.ID, models.NotificationReply), 1)
	// Author is notified for both top-level comment and the reply.
	assert.Len(t, f.notificationsOf(t, author.ID, models.NotificationComment), 2)
}

func TestReplyToReplyRejected(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "flat-author", models.RoleEditor)
	a := f.publishedArticle(t, author, "One level only")

	parent, err := f.socialSvc.Comment(a.ID, author.ID, nil, "root")
	require.NoError(t, err)
	reply, err := f.socialSvc.Comment(a.ID, author.ID, &parent.ID, "child")
	require.NoError(t, err)

	_, err = f.socialSvc.Comment(a.ID, author.ID, &reply.ID, "grandchild")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestDeleteCommentSoftDeletes(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "softdel-author", models.RoleEditor)
	commenter := f.newUser(t, "softdel-writer", models.RoleViewer)
	a := f.publishedArticle(t, author, "Deletable")

	parent, err := f.socialSvc.Comment(a.ID, commenter.ID, nil, "questionable")
	require.NoError(t, err)
	_, err = f.socialSvc.Comment(a.ID, author.ID, &parent.ID, "keeping this")
	require.NoError(t, err)

	// Only the comment author or an admin may delete.
	_, err = f.socialSvc.DeleteComment(parent.ID, author.ID, models.RoleEditor)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	live, err := f.socialSvc.DeleteComment(parent.ID, commenter.ID, models.RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, 1, live)

	// The reply survives under the tombstoned parent.
	comments, err := f.socialSvc.ListComments(a.ID, author.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestBookmarkOnDraftHidden(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "bm-author", models.RoleViewer)
	other := f.newUser(t, "bm-other", models.RoleViewer)

	draft, err := f.articleSvc.Create(ArticleInput{Title: "Private notes"}, author.ID, author.Role)
	require.NoError(t, err)

	_, err = f.socialSvc.Bookmark(draft.ID, other.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
