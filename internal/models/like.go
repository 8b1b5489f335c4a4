package models

import "time"

// Like has no state beyond its existence.
type Like struct {
	ArticleID uint      `json:"article_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
}
