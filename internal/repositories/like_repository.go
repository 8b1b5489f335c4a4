package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxToggleAttempts bounds the delete/insert loop when concurrent toggles
// by the same user keep flipping the row under us.
const maxToggleAttempts = 3

// ToggleLike flips the (article, user) like and returns the new state with the
// article's like count. Either branch is a single conditional write, so two
// users liking at once each add one.
func (r *GormSharedArticleRepository) ToggleLike(ctx context.Context, articleID, userID uint) (models.LikeResult, int, error) {
	var (
		result models.LikeResult
		count  int
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.SharedArticle
		if err := tx.Select("id").First(&article, articleID).Error; err != nil {
			return translate(err)
		}

		settled := false
		for attempt := 0; attempt < maxToggleAttempts && !settled; attempt++ {
			res := tx.Where("article_id = ? AND user_id = ?", articleID, userID).Delete(&models.Like{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				result, settled = models.Unliked, true
				if err := adjustLikes(tx, articleID, -1); err != nil {
					return err
				}
				break
			}

			res = tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{ArticleID: articleID, UserID: userID})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				result, settled = models.Liked, true
				if err := adjustLikes(tx, articleID, 1); err != nil {
					return err
				}
				if err := bumpActivity(tx, userID); err != nil {
					return err
				}
			}
		}
		if !settled {
			return ErrToggleContention
		}

		return tx.Model(&models.SharedArticle{}).Select("like_count").
			Where("id = ?", articleID).Scan(&count).Error
	})
	if err != nil {
		return 0, 0, fmt.Errorf("toggle like on article %d: %w", articleID, err)
	}
	return result, count, nil
}

func adjustLikes(tx *gorm.DB, articleID uint, delta int) error {
	return tx.Model(&models.SharedArticle{}).Where("id = ?", articleID).
		UpdateColumn("like_count", counterExpr("like_count", delta)).Error
}

func (r *GormSharedArticleRepository) HasLiked(ctx context.Context, articleID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&count).Error
	return count > 0, err
}
