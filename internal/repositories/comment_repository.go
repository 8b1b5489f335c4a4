package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	AddComment(ctx context.Context, articleID, authorID uint, content string) (uint, error)
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetComments(ctx context.Context, articleID uint, viewer policy.Actor) ([]models.CommentView, error)
	DeleteComment(ctx context.Context, commentID uint, actor policy.Actor) (models.DeleteResult, error)
}

type GormCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// AddComment stores the comment and bumps the article's comment count in the
// same transaction.
func (r *GormCommentRepository) AddComment(ctx context.Context, articleID, authorID uint, content string) (uint, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, ErrEmptyContent
	}

	comment := &models.Comment{ArticleID: articleID, UserID: authorID, Content: content}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.SharedArticle
		if err := tx.Select("id").First(&article, articleID).Error; err != nil {
			return translate(err)
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.SharedArticle{}).Where("id = ?", articleID).
			UpdateColumn("comment_count", counterExpr("comment_count", 1)).Error; err != nil {
			return err
		}
		return bumpActivity(tx, authorID)
	})
	if err != nil {
		return 0, fmt.Errorf("add comment to article %d: %w", articleID, err)
	}
	return comment.ID, nil
}

func (r *GormCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

type commentRow struct {
	ID          uint
	ArticleID   uint
	UserID      uint
	DisplayName string
	Content     string
	CreatedAt   time.Time
}

// GetComments returns the live comments of an article, oldest first, each
// flagged with whether viewer may delete it.
func (r *GormCommentRepository) GetComments(ctx context.Context, articleID uint, viewer policy.Actor) ([]models.CommentView, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).Table("comments").
		Select("comments.id, comments.article_id, comments.user_id, users.display_name, comments.content, comments.created_at").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.article_id = ? AND comments.is_deleted = ?", articleID, false).
		Order("comments.created_at ASC, comments.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of article %d: %w", articleID, err)
	}

	views := make([]models.CommentView, 0, len(rows))
	for _, row := range rows {
		c := models.Comment{ID: row.ID, UserID: row.UserID}
		views = append(views, models.CommentView{
			ID:          row.ID,
			ArticleID:   row.ArticleID,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Content:     row.Content,
			CreatedAt:   row.CreatedAt,
			CanDelete:   policy.CanDelete(viewer, &c),
		})
	}
	return views, nil
}

// DeleteComment soft-deletes the comment. The article's comment count drops
// only on the first deletion.
func (r *GormCommentRepository) DeleteComment(ctx context.Context, commentID uint, actor policy.Actor) (models.DeleteResult, error) {
	result := models.Deleted
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = models.DeleteNotFound
				return nil
			}
			return err
		}
		if !policy.CanDelete(actor, &comment) {
			result = models.DeleteForbidden
			return nil
		}

		res := tx.Model(&models.Comment{}).
			Where("id = ? AND is_deleted = ?", commentID, false).
			Update("is_deleted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.SharedArticle{}).Where("id = ?", comment.ArticleID).
			UpdateColumn("comment_count", counterExpr("comment_count", -1)).Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return result, nil
}
