package moderation

import (
	"context"

	"go.uber.org/zap"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/pkg/logger"
)

const previewLen = 140

type articleSource interface {
	GetSharedArticle(ctx context.Context, id uint) (*models.SharedArticle, error)
}

type commentSource interface {
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
}

type newsSource interface {
	GetNewsByID(ctx context.Context, newsID int64) (*models.NewsItem, error)
}

type userSource interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// Enricher attaches reporter names and content previews to reports.
// A nil news source leaves news previews empty.
type Enricher struct {
	articles articleSource
	comments commentSource
	news     newsSource
	users    userSource
}

func NewEnricher(articles articleSource, comments commentSource, news newsSource, users userSource) *Enricher {
	return &Enricher{articles: articles, comments: comments, news: news, users: users}
}

// Enrich never fails; lookups that miss leave the field blank.
func (e *Enricher) Enrich(ctx context.Context, reports []models.Report) []models.ReportView {
	names := map[uint]string{}
	views := make([]models.ReportView, 0, len(reports))
	for _, r := range reports {
		v := models.ReportView{Report: r}

		if name, ok := names[r.ReporterID]; ok {
			v.ReporterName = name
		} else if u, err := e.users.GetUserByID(ctx, r.ReporterID); err == nil {
			names[r.ReporterID] = u.DisplayName
			v.ReporterName = u.DisplayName
		}

		v.Preview = e.preview(ctx, r)
		views = append(views, v)
	}
	return views
}

func (e *Enricher) preview(ctx context.Context, r models.Report) string {
	switch r.ContentType {
	case models.ContentSharedArticle:
		a, err := e.articles.GetSharedArticle(ctx, uint(r.ContentID))
		if err != nil {
			return ""
		}
		return truncate(a.DisplayTitle())
	case models.ContentComment:
		c, err := e.comments.GetCommentByID(ctx, uint(r.ContentID))
		if err != nil {
			return ""
		}
		return truncate(c.Content)
	case models.ContentNews:
		if e.news == nil {
			return ""
		}
		n, err := e.news.GetNewsByID(ctx, r.ContentID)
		if err != nil {
			logger.Debug("news preview unavailable", zap.Int64("news_id", r.ContentID), zap.Error(err))
			return ""
		}
		return truncate(n.Headline)
	}
	return ""
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLen {
		return s
	}
	return string(runes[:previewLen]) + "…"
}
