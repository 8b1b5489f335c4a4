package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/newsroom-social/backend/internal/models"
)

func TestClassify(t *testing.T) {
	tests := map[string]string{
		"This is hate speech":          CategoryOffensive,
		"Fake news, totally false":     CategoryFalseInfo,
		"SPAM link":                    CategorySpam,
		"they copied my article, DMCA": CategoryCopyright,
		"I just don't like it":         CategoryOther,
		"":                             CategoryOther,
	}
	for reason, want := range tests {
		assert.Equal(t, want, Classify(reason), reason)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Report{
		{ContentType: models.ContentComment, Reason: "abusive", IsResolved: true},
		{ContentType: models.ContentComment, Reason: "spam"},
		{ContentType: models.ContentNews, Reason: "misleading headline"},
	})
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Resolved)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 2, s.ByContentType[models.ContentComment])
	assert.Equal(t, 0, s.ByContentType[models.ContentSharedArticle])
	assert.Equal(t, 1, s.ByCategory[CategoryFalseInfo])
	assert.Equal(t, 0, s.ByCategory[CategoryCopyright])
}

type stubStore struct{}

var errMissing = errors.New("missing")

func (stubStore) GetSharedArticle(_ context.Context, id uint) (*models.SharedArticle, error) {
	if id != 1 {
		return nil, errMissing
	}
	return &models.SharedArticle{ID: 1, URL: "https://x.test/a"}, nil
}

func (stubStore) GetCommentByID(_ context.Context, id uint) (*models.Comment, error) {
	return &models.Comment{ID: id, Content: strings.Repeat("a", 200)}, nil
}

func (stubStore) GetNewsByID(_ context.Context, id int64) (*models.NewsItem, error) {
	return &models.NewsItem{NewsID: id, Headline: "Markets rally"}, nil
}

func (stubStore) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	return &models.User{ID: id, DisplayName: "reporter"}, nil
}

func TestEnrich(t *testing.T) {
	s := stubStore{}
	reports := []models.Report{
		{ID: 1, ReporterID: 5, ContentType: models.ContentSharedArticle, ContentID: 1},
		{ID: 2, ReporterID: 5, ContentType: models.ContentSharedArticle, ContentID: 2},
		{ID: 3, ReporterID: 5, ContentType: models.ContentComment, ContentID: 3},
		{ID: 4, ReporterID: 5, ContentType: models.ContentNews, ContentID: 4},
	}

	views := NewEnricher(s, s, s, s).Enrich(context.Background(), reports)
	require.Len(t, views, 4)
	assert.Equal(t, "reporter", views[0].ReporterName)
	assert.Equal(t, "https://x.test/a", views[0].Preview, "untitled articles fall back to the url")
	assert.Empty(t, views[1].Preview)
	assert.Equal(t, previewLen+1, len([]rune(views[2].Preview)))
	assert.Equal(t, "Markets rally", views[3].Preview)

	views = NewEnricher(s, s, nil, s).Enrich(context.Background(), reports[3:])
	assert.Empty(t, views[0].Preview)
}
