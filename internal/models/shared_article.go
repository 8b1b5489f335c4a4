package models

import "time"

// SharedArticle is a link a user posted, with a snapshot of the article metadata.
type SharedArticle struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"userId" gorm:"index"`
	URL          string    `json:"url" gorm:"not null"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	Source       string    `json:"source,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	Tags         []string  `json:"tags,omitempty" gorm:"serializer:json;type:text"`
	IsFlagged    bool      `json:"isFlagged"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a *SharedArticle) OwnerID() uint { return a.UserID }

// DisplayTitle falls back to the URL for untitled shares.
func (a *SharedArticle) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	return a.URL
}

// CreateSharedArticleRequest is the body of POST /shared.
type CreateSharedArticleRequest struct {
	URL         string   `json:"url" validate:"required,max=2048"`
	Title       string   `json:"title" validate:"max=500"`
	Description string   `json:"description" validate:"max=2000"`
	Source      string   `json:"source" validate:"max=200"`
	ImageURL    string   `json:"imageUrl" validate:"max=2048"`
	Comment     string   `json:"comment" validate:"max=1000"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
}

// SavedArticle is a bookmark.
type SavedArticle struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_article_save"`
	ArticleID uint      `json:"article_id" gorm:"index;uniqueIndex:idx_user_article_save"`
	CreatedAt time.Time `json:"created_at"`
}
