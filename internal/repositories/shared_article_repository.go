package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"gorm.io/gorm"
)

// SharedArticleRepository stores shared articles and their likes.
type SharedArticleRepository interface {
	CreateSharedArticle(ctx context.Context, ownerID uint, req models.CreateSharedArticleRequest) (uint, error)
	GetSharedArticle(ctx context.Context, id uint) (*models.SharedArticle, error)
	ListSharedArticles(ctx context.Context) ([]models.SharedArticle, error)
	DeleteSharedArticle(ctx context.Context, id uint, actor policy.Actor) (models.DeleteResult, error)
	ToggleLike(ctx context.Context, articleID, userID uint) (models.LikeResult, int, error)
	HasLiked(ctx context.Context, articleID, userID uint) (bool, error)
}

type GormSharedArticleRepository struct {
	db *gorm.DB
}

func NewSharedArticleRepository(db *gorm.DB) *GormSharedArticleRepository {
	return &GormSharedArticleRepository{db: db}
}

// CreateSharedArticle stores the caller-supplied snapshot with zeroed counters
// and bumps the owner's activity counter.
func (r *GormSharedArticleRepository) CreateSharedArticle(ctx context.Context, ownerID uint, req models.CreateSharedArticleRequest) (uint, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return 0, ErrEmptyURL
	}

	article := &models.SharedArticle{
		UserID:      ownerID,
		URL:         url,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Source:      req.Source,
		ImageURL:    req.ImageURL,
		Comment:     req.Comment,
		Tags:        req.Tags,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return bumpActivity(tx, ownerID)
	})
	if err != nil {
		return 0, fmt.Errorf("create shared article: %w", err)
	}
	return article.ID, nil
}

func (r *GormSharedArticleRepository) GetSharedArticle(ctx context.Context, id uint) (*models.SharedArticle, error) {
	var article models.SharedArticle
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

// ListSharedArticles returns every article, newest first.
func (r *GormSharedArticleRepository) ListSharedArticles(ctx context.Context) ([]models.SharedArticle, error) {
	articles := []models.SharedArticle{}
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&articles).Error
	return articles, err
}

// DeleteSharedArticle removes the article with its likes, comments and bookmarks.
func (r *GormSharedArticleRepository) DeleteSharedArticle(ctx context.Context, id uint, actor policy.Actor) (models.DeleteResult, error) {
	result := models.Deleted
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.SharedArticle
		if err := tx.First(&article, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = models.DeleteNotFound
				return nil
			}
			return err
		}
		if !policy.CanDelete(actor, &article) {
			result = models.DeleteForbidden
			return nil
		}

		if err := tx.Where("article_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.SavedArticle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SharedArticle{}, id).Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete shared article %d: %w", id, err)
	}
	return result, nil
}

// counterExpr adjusts an integer column in place.
func counterExpr(column string, delta int) interface{} {
	if delta < 0 {
		return gorm.Expr(column+" - ?", -delta)
	}
	return gorm.Expr(column+" + ?", delta)
}
