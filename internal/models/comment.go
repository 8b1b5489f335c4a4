package models

import "time"

// Comment represents a comment on a shared article. Deletion is soft.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ArticleID uint      `json:"article_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content" gorm:"not null"`
	IsDeleted bool      `json:"is_deleted" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) OwnerID() uint { return c.UserID }

// CommentView is a comment as shown to a particular viewer.
type CommentView struct {
	ID          uint      `json:"id"`
	ArticleID   uint      `json:"articleId"`
	UserID      uint      `json:"userId"`
	DisplayName string    `json:"displayName"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	CanDelete   bool      `json:"canDelete"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}
