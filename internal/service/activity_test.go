package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/models"
)

func TestUserActivityListsOwnEntriesOnly(t *testing.T) {
	f := newFixture(t)
	author := f.newUser(t, "act-author", models.RoleEditor)
	fan := f.newUser(t, "act-fan", models.RoleViewer)
	a := f.publishedArticle(t, author, "Timeline piece")

	_, err := f.socialSvc.Like(a.ID, fan.ID)
	require.NoError(t, err)

	mine, err := f.activitySvc.ForUser(author.ID, 1, 20)
	require.NoError(t, err)
	require.NotEmpty(t, mine)
	for _, e := range mine {
		assert.Equal(t, author.ID, e.UserID)
	}

	fans, err := f.activitySvc.ForUser(fan.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, fans, 1)
	assert.Equal(t, models.ActivityArticleLiked, fans[0].Type)
}
