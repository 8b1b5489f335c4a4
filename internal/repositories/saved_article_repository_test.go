package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/newsroom-social/backend/internal/testutil"
)

func TestSavedArticles(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	articles := NewSharedArticleRepository(db)
	saved := NewSavedArticleRepository(db)
	owner := testutil.CreateUser(t, db, "owner")
	reader := testutil.CreateUser(t, db, "reader")

	first := shareArticle(t, articles, owner.ID)
	second := shareArticle(t, articles, owner.ID)

	created, err := saved.Save(ctx, reader.ID, first)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = saved.Save(ctx, reader.ID, first)
	require.NoError(t, err)
	assert.False(t, created, "second save is a no-op")

	_, err = saved.Save(ctx, reader.ID, second)
	require.NoError(t, err)

	list, err := saved.ListSaved(ctx, reader.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)

	ok, err := saved.IsSaved(ctx, reader.ID, first)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := saved.Unsave(ctx, reader.ID, first)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = saved.Unsave(ctx, reader.ID, first)
	require.NoError(t, err)
	assert.False(t, removed)

	list, err = saved.ListSaved(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
