package repositories

import (
	"context"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedArticleRepository manages bookmarks
type SavedArticleRepository interface {
	Save(ctx context.Context, userID, articleID uint) (bool, error)
	Unsave(ctx context.Context, userID, articleID uint) (bool, error)
	IsSaved(ctx context.Context, userID, articleID uint) (bool, error)
	ListSaved(ctx context.Context, userID uint) ([]models.SharedArticle, error)
}

type GormSavedArticleRepository struct {
	db *gorm.DB
}

func NewSavedArticleRepository(db *gorm.DB) *GormSavedArticleRepository {
	return &GormSavedArticleRepository{db: db}
}

// Save bookmarks the article; false means it was already saved.
func (r *GormSavedArticleRepository) Save(ctx context.Context, userID, articleID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SavedArticle{UserID: userID, ArticleID: articleID})
	return res.RowsAffected > 0, res.Error
}

func (r *GormSavedArticleRepository) Unsave(ctx context.Context, userID, articleID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.SavedArticle{})
	return res.RowsAffected > 0, res.Error
}

func (r *GormSavedArticleRepository) IsSaved(ctx context.Context, userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SavedArticle{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// ListSaved returns bookmarked articles, most recently saved first.
func (r *GormSavedArticleRepository) ListSaved(ctx context.Context, userID uint) ([]models.SharedArticle, error) {
	articles := []models.SharedArticle{}
	err := r.db.WithContext(ctx).
		Joins("JOIN saved_articles ON saved_articles.article_id = shared_articles.id").
		Where("saved_articles.user_id = ?", userID).
		Order("saved_articles.created_at DESC, saved_articles.id DESC").
		Find(&articles).Error
	return articles, err
}
