package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/newsroom-social/backend/internal/models"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func article(id, owner uint, age time.Duration, likes, comments int) models.SharedArticle {
	return models.SharedArticle{
		ID:           id,
		UserID:       owner,
		CreatedAt:    base.Add(-age),
		LikeCount:    likes,
		CommentCount: comments,
	}
}

func ids(p Page) []uint {
	out := make([]uint, 0, len(p.Articles))
	for _, a := range p.Articles {
		out = append(out, a.ID)
	}
	return out
}

func TestCompose_BlockedOwnersHidden(t *testing.T) {
	articles := []models.SharedArticle{
		article(1, 10, time.Hour, 0, 0),
		article(2, 20, 2*time.Hour, 0, 0),
		article(3, 20, 3*time.Hour, 0, 0),
	}
	// blocked wins even when the owner is followed
	p := Compose(1, articles, IDSet([]uint{20}), IDSet([]uint{20}), Options{})
	assert.Equal(t, []uint{1}, ids(p))

	p = Compose(1, articles, IDSet([]uint{20}), IDSet([]uint{20}), Options{FollowingOnly: true})
	assert.Empty(t, p.Articles)
}

func TestCompose_FollowingOnly(t *testing.T) {
	articles := []models.SharedArticle{
		article(1, 10, time.Hour, 0, 0),
		article(2, 20, 2*time.Hour, 0, 0),
	}
	p := Compose(1, articles, nil, IDSet([]uint{20}), Options{FollowingOnly: true})
	assert.Equal(t, []uint{2}, ids(p))
}

func TestCompose_Sorting(t *testing.T) {
	articles := []models.SharedArticle{
		article(1, 10, 3*time.Hour, 5, 1),
		article(2, 10, time.Hour, 5, 7),
		article(3, 10, 2*time.Hour, 9, 0),
		article(4, 10, time.Hour, 0, 7),
	}

	tests := []struct {
		sort string
		want []uint
	}{
		{"", []uint{4, 2, 3, 1}},
		{SortNewest, []uint{4, 2, 3, 1}},
		{SortOldest, []uint{1, 3, 2, 4}},
		{SortMostLiked, []uint{3, 2, 1, 4}},
		{SortMostCommented, []uint{4, 2, 1, 3}},
		{"bogus", []uint{4, 2, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			p := Compose(1, articles, nil, nil, Options{Sort: tt.sort})
			assert.Equal(t, tt.want, ids(p))
		})
	}
}

func TestCompose_Pagination(t *testing.T) {
	articles := make([]models.SharedArticle, 0, 45)
	for i := 1; i <= 45; i++ {
		articles = append(articles, article(uint(i), 10, time.Duration(i)*time.Minute, 0, 0))
	}

	p := Compose(1, articles, nil, nil, Options{Page: 1})
	require.Len(t, p.Articles, PageSize)
	assert.Equal(t, uint(1), p.Articles[0].ID)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)

	p = Compose(1, articles, nil, nil, Options{Page: 3})
	assert.Equal(t, 5, p.Count)
	assert.False(t, p.HasNext)

	p = Compose(1, articles, nil, nil, Options{Page: 9})
	assert.Empty(t, p.Articles)
	assert.False(t, p.HasNext)

	p = Compose(1, articles, nil, nil, Options{Page: 0})
	assert.Equal(t, 1, p.Page)
}
