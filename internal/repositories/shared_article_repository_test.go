package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"github.com/anonto42/newsroom-social/backend/internal/testutil"
)

func shareArticle(t *testing.T, repo *GormSharedArticleRepository, owner uint) uint {
	t.Helper()
	id, err := repo.CreateSharedArticle(context.Background(), owner, models.CreateSharedArticleRequest{
		URL:   "https://news.example.com/a",
		Title: "Headline",
		Tags:  []string{"world", "politics"},
	})
	require.NoError(t, err)
	return id
}

func reload(t *testing.T, db *gorm.DB, id uint) models.SharedArticle {
	t.Helper()
	var a models.SharedArticle
	require.NoError(t, db.First(&a, id).Error)
	return a
}

func TestCreateSharedArticle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewSharedArticleRepository(db)
	owner := testutil.CreateUser(t, db, "owner")

	_, err := repo.CreateSharedArticle(ctx, owner.ID, models.CreateSharedArticleRequest{URL: "   "})
	assert.ErrorIs(t, err, ErrEmptyURL)

	id := shareArticle(t, repo, owner.ID)
	a := reload(t, db, id)
	assert.Equal(t, owner.ID, a.UserID)
	assert.Zero(t, a.LikeCount)
	assert.Zero(t, a.CommentCount)
	assert.Equal(t, []string{"world", "politics"}, a.Tags)

	var u models.User
	require.NoError(t, db.First(&u, owner.ID).Error)
	assert.Equal(t, 1, u.ActivityCount)
}

func TestToggleLike_TwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewSharedArticleRepository(db)
	owner := testutil.CreateUser(t, db, "owner")
	liker := testutil.CreateUser(t, db, "liker")
	id := shareArticle(t, repo, owner.ID)

	res, count, err := repo.ToggleLike(ctx, id, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Liked, res)
	assert.Equal(t, 1, count)

	liked, err := repo.HasLiked(ctx, id, liker.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	res, count, err = repo.ToggleLike(ctx, id, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Unliked, res)
	assert.Equal(t, 0, count)

	liked, err = repo.HasLiked(ctx, id, liker.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, reload(t, db, id).LikeCount)
}

func TestToggleLike_MissingArticle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSharedArticleRepository(db)
	liker := testutil.CreateUser(t, db, "liker")

	_, _, err := repo.ToggleLike(context.Background(), 999, liker.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLike_ConcurrentFirstLikes(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSharedArticleRepository(db)
	owner := testutil.CreateUser(t, db, "owner")
	a := testutil.CreateUser(t, db, "a")
	b := testutil.CreateUser(t, db, "b")
	id := shareArticle(t, repo, owner.ID)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, u := range []uint{a.ID, b.ID} {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, _, err := repo.ToggleLike(context.Background(), id, userID)
			errs <- err
		}(u)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, 2, reload(t, db, id).LikeCount)
	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Where("article_id = ?", id).Count(&likes).Error)
	assert.EqualValues(t, 2, likes)
}

func TestDeleteSharedArticle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewSharedArticleRepository(db)
	comments := NewCommentRepository(db)
	saved := NewSavedArticleRepository(db)
	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "other")
	admin := testutil.CreateAdmin(t, db, "admin")

	id := shareArticle(t, repo, owner.ID)
	_, _, err := repo.ToggleLike(ctx, id, other.ID)
	require.NoError(t, err)
	_, err = comments.AddComment(ctx, id, other.ID, "nice")
	require.NoError(t, err)
	_, err = saved.Save(ctx, other.ID, id)
	require.NoError(t, err)

	res, err := repo.DeleteSharedArticle(ctx, id, policy.Actor{ID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DeleteForbidden, res)

	res, err = repo.DeleteSharedArticle(ctx, id, policy.Actor{ID: admin.ID, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, models.Deleted, res)

	res, err = repo.DeleteSharedArticle(ctx, id, policy.Actor{ID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DeleteNotFound, res)

	for _, m := range []interface{}{&models.Like{}, &models.Comment{}, &models.SavedArticle{}} {
		var n int64
		require.NoError(t, db.Model(m).Where("article_id = ?", id).Count(&n).Error)
		assert.Zero(t, n)
	}
}

func TestListSharedArticles_NewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewSharedArticleRepository(db)
	owner := testutil.CreateUser(t, db, "owner")

	first := shareArticle(t, repo, owner.ID)
	second := shareArticle(t, repo, owner.ID)

	list, err := repo.ListSharedArticles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)
}
